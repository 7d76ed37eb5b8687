package sensors

import (
	"errors"
	"fmt"
	"time"

	"github.com/luxclock/luxclock/internal/bus"
	"github.com/luxclock/luxclock/internal/configuration"
	"github.com/luxclock/luxclock/internal/ui"
)

const (
	tsl2591CommandBit = 0xA0

	tsl2591RegEnable   = 0x00
	tsl2591RegControl  = 0x01
	tsl2591RegDeviceID = 0x12
	tsl2591RegChan0Low = 0x14
	tsl2591RegChan1Low = 0x16

	tsl2591EnablePowerOff = 0x00
	tsl2591EnablePowerOn  = 0x01
	tsl2591EnableAEN      = 0x02

	tsl2591GainMask = 0x30
	tsl2591TimeMask = 0x07

	tsl2591LowGain    = 0x00
	tsl2591MediumGain = 0x10
	tsl2591HighGain   = 0x20
	tsl2591MaxGain    = 0x30

	tsl2591IntegrationTime200ms = 0x01

	tsl2591LuxDF = 762.0
)

// TSL2591 is the AMS TSL2591 high dynamic range sensor. The ALS engine is
// only enabled while a measurement is taken.
type TSL2591 struct {
	bus   bus.ByteBus
	sleep func(time.Duration)
}

func (s *TSL2591) GetType() string {
	return configuration.SensorTypeTSL2591
}

func (s *TSL2591) Init(on bool) error {
	if !on {
		if err := s.writeReg(tsl2591RegEnable, tsl2591EnablePowerOff); err != nil {
			return fmt.Errorf("power off: %w", err)
		}
		return nil
	}

	var errs []error
	id, err := s.bus.ReadReg8(tsl2591CommandBit | tsl2591RegDeviceID)
	if err != nil {
		errs = append(errs, fmt.Errorf("read device id: %w", err))
	} else {
		ui.Debug("TSL2591 chip id: 0x%02x", id)
	}
	if err := s.writeReg(tsl2591RegEnable, tsl2591EnablePowerOn|tsl2591EnableAEN); err != nil {
		errs = append(errs, fmt.Errorf("enable: %w", err))
	}
	if err := s.writeReg(tsl2591RegControl, tsl2591MediumGain|tsl2591IntegrationTime200ms); err != nil {
		errs = append(errs, fmt.Errorf("set gain and integration time: %w", err))
	}
	// ALS stays off until the next measurement
	if err := s.writeReg(tsl2591RegEnable, tsl2591EnablePowerOn); err != nil {
		errs = append(errs, fmt.Errorf("disable ALS: %w", err))
	}
	return errors.Join(errs...)
}

func (s *TSL2591) Read() LightReading {
	control, err := s.bus.ReadReg8(tsl2591CommandBit | tsl2591RegControl)
	if err != nil {
		ui.Warning("Unable to read TSL2591 control register: %v", err)
		return InvalidReading()
	}
	atimeMs := integrationTimeMs(control)
	again := gainMultiplier(control)

	if err := s.writeReg(tsl2591RegEnable, tsl2591EnablePowerOn|tsl2591EnableAEN); err != nil {
		ui.Warning("Unable to enable TSL2591 ALS: %v", err)
	}
	s.sleep(time.Duration(atimeMs) * time.Millisecond)

	reading := InvalidReading()
	broadband, err := s.bus.ReadReg16(tsl2591CommandBit | tsl2591RegChan0Low)
	s.sleep(100 * time.Millisecond)
	ir, irErr := s.bus.ReadReg16(tsl2591CommandBit | tsl2591RegChan1Low)

	if err := s.writeReg(tsl2591RegEnable, tsl2591EnablePowerOn); err != nil {
		ui.Warning("Unable to disable TSL2591 ALS: %v", err)
	}

	if err != nil || irErr != nil {
		ui.Warning("Unable to read TSL2591 channels: %v", errors.Join(err, irErr))
		return reading
	}
	ui.Debug("TSL2591 ADC values: broadband=%d ir=%d", broadband, ir)

	reading.Broadband = int(broadband)
	reading.IR = int(ir)
	reading.Lux = CalculateLuxTSL2591(float64(broadband), float64(ir), float64(atimeMs), again)
	return reading
}

func (s *TSL2591) writeReg(reg byte, value byte) error {
	return s.bus.WriteReg8(tsl2591CommandBit|reg, value)
}

// CalculateLuxTSL2591 compensates the raw counts for gain and integration
// time. Nobody agrees on this formula, see
// https://github.com/adafruit/Adafruit_TSL2591_Library/issues/14
func CalculateLuxTSL2591(broadband, ir, atimeMs, again float64) float64 {
	cpl := (atimeMs * again) / tsl2591LuxDF
	if cpl <= 0 {
		return LuxFloor
	}
	return applyFloor((broadband - 2*ir) / cpl)
}

func integrationTimeMs(control byte) int {
	return 100*int(control&tsl2591TimeMask) + 100
}

func gainMultiplier(control byte) float64 {
	switch control & tsl2591GainMask {
	case tsl2591MediumGain:
		return 25.0
	case tsl2591HighGain:
		return 428.0
	case tsl2591MaxGain:
		return 9876.0
	}
	return 1.0
}

package sensors

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/luxclock/luxclock/internal/bus"
	"github.com/luxclock/luxclock/internal/configuration"
	"github.com/luxclock/luxclock/internal/ui"
)

const (
	tsl2561Command  = 0x80
	tsl2561ReadWord = 0x20

	tsl2561RegControl   = 0x00
	tsl2561RegInterrupt = 0x06
	tsl2561RegChan0Low  = 0x0C
	tsl2561RegChan1Low  = 0x0E

	tsl2561PowerOn  = 0x03
	tsl2561PowerOff = 0x00

	// the datasheet formulas assume gain 16x, the sensor runs at 1x
	tsl2561GainScale = 16.0
)

// TSL2561 is the CS package variant of the TAOS TSL2561.
type TSL2561 struct {
	bus   bus.ByteBus
	sleep func(time.Duration)
}

func (s *TSL2561) GetType() string {
	return configuration.SensorTypeTSL2561
}

func (s *TSL2561) Init(on bool) error {
	power := byte(tsl2561PowerOff)
	if on {
		power = tsl2561PowerOn
	}

	var errs []error
	if err := s.bus.WriteReg8(tsl2561Command|tsl2561RegControl, power); err != nil {
		errs = append(errs, fmt.Errorf("set power: %w", err))
	}
	if on {
		if err := s.bus.WriteReg8(tsl2561Command|tsl2561RegInterrupt, 0x00); err != nil {
			errs = append(errs, fmt.Errorf("disable interrupts: %w", err))
		}
	}
	ui.Debug("TSL2561 power register set to 0x%02x", power)
	return errors.Join(errs...)
}

func (s *TSL2561) Read() LightReading {
	s.sleep(100 * time.Millisecond)
	broadband, err := s.bus.ReadReg16(tsl2561Command | tsl2561ReadWord | tsl2561RegChan0Low)
	if err != nil {
		ui.Warning("Unable to read TSL2561 broadband channel: %v", err)
		return InvalidReading()
	}
	s.sleep(100 * time.Millisecond)
	ir, err := s.bus.ReadReg16(tsl2561Command | tsl2561ReadWord | tsl2561RegChan1Low)
	if err != nil {
		ui.Warning("Unable to read TSL2561 infrared channel: %v", err)
		return InvalidReading()
	}

	return LightReading{
		IR:        int(ir),
		Broadband: int(broadband),
		Lux:       CalculateLuxTSL2561(float64(broadband)*tsl2561GainScale, float64(ir)*tsl2561GainScale),
	}
}

// CalculateLuxTSL2561 converts the two channels of the CS package to lux,
// using the piecewise approximation of the datasheet.
func CalculateLuxTSL2561(broadband, ir float64) float64 {
	if broadband <= 0 {
		return LuxFloor
	}

	var lux float64
	ratio := ir / broadband
	switch {
	case ratio <= 0.50:
		lux = 0.0304*broadband - 0.062*broadband*math.Pow(ratio, 1.4)
	case ratio <= 0.61:
		lux = 0.0224*broadband - 0.031*ir
	case ratio <= 0.80:
		lux = 0.0128*broadband - 0.0153*ir
	case ratio <= 1.30:
		lux = 0.00146*broadband - 0.00112*ir
	default:
		lux = LuxFloor
	}
	return applyFloor(lux)
}

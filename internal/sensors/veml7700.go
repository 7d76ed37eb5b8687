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
	veml7700RegConfig      = 0x00
	veml7700RegPowerSaving = 0x03
	veml7700RegALS         = 0x04
	veml7700RegWhite       = 0x05

	veml7700PowerOn           = 0x0000
	veml7700PowerOff          = 0x0001
	veml7700IntegrationTime   = 0x0000 // 100 ms
	veml7700Gain2             = 0x0800
	veml7700PowerSavingMode4  = 0x0006
	veml7700PowerSavingEnable = 0x0001

	// lux per count at the configured gain and integration time
	veml7700Resolution = 0.0288
)

// VEML7700 is the Vishay ambient light sensor. The white channel is
// reported as the infrared count of the reading.
type VEML7700 struct {
	bus   bus.ByteBus
	sleep func(time.Duration)
}

func (s *VEML7700) GetType() string {
	return configuration.SensorTypeVEML7700
}

func (s *VEML7700) Init(on bool) error {
	power := uint16(veml7700PowerOff)
	psm := uint16(0)
	if on {
		power = veml7700PowerOn
		psm = veml7700PowerSavingEnable
	}

	var errs []error
	if err := s.bus.WriteReg16(veml7700RegConfig, power|veml7700IntegrationTime|veml7700Gain2); err != nil {
		errs = append(errs, fmt.Errorf("write configuration: %w", err))
	}
	if err := s.bus.WriteReg16(veml7700RegPowerSaving, veml7700PowerSavingMode4|psm); err != nil {
		errs = append(errs, fmt.Errorf("write power saving: %w", err))
	}
	return errors.Join(errs...)
}

func (s *VEML7700) Read() LightReading {
	als, err := s.bus.ReadReg16(veml7700RegALS)
	s.sleep(100 * time.Millisecond)
	white, whiteErr := s.bus.ReadReg16(veml7700RegWhite)
	s.sleep(100 * time.Millisecond)
	if err != nil || whiteErr != nil {
		ui.Warning("Unable to read VEML7700: %v", errors.Join(err, whiteErr))
		return InvalidReading()
	}
	ui.Debug("VEML7700 ADC values: als=%d white=%d", als, white)

	return LightReading{
		IR:        int(white),
		Broadband: int(als),
		Lux:       CalculateLuxVEML7700(float64(als)),
	}
}

// CalculateLuxVEML7700 converts ALS counts with a fixed resolution.
func CalculateLuxVEML7700(als float64) float64 {
	return applyFloor(als * veml7700Resolution)
}

package configuration

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

const (
	minAddress = 0x03
	maxAddress = 0x77
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if config.Bus.Adapter < 0 {
		return fmt.Errorf("bus: invalid adapter number %d", config.Bus.Adapter)
	}
	if err := validateAddress("display", config.Display.Address); err != nil {
		return err
	}
	if err := validateSensor(config.Sensor); err != nil {
		return err
	}
	if err := validateSchedule(config.Schedule); err != nil {
		return err
	}
	if err := validateTelemetry(config.Telemetry); err != nil {
		return err
	}
	if config.Statistics.Enabled {
		if err := validatePort("statistics", config.Statistics.Port); err != nil {
			return err
		}
	}
	if config.Api.Enabled {
		if err := validatePort("api", config.Api.Port); err != nil {
			return err
		}
		if config.Statistics.Enabled && config.Statistics.Port == config.Api.Port {
			return fmt.Errorf("api: port %d is already used by statistics", config.Api.Port)
		}
	}
	return nil
}

func validateSensor(config SensorConfig) error {
	if !slices.Contains(SensorTypes, config.Type) {
		return fmt.Errorf("sensor: unsupported type '%s', use one of: %s", config.Type, strings.Join(SensorTypes, " | "))
	}
	if !config.Enabled() {
		return nil
	}
	if err := validateAddress("sensor", config.Address); err != nil {
		return err
	}
	if config.Address == DefaultDisplayAddress {
		return fmt.Errorf("sensor: address %s collides with the display", config.Address)
	}
	if config.RestartDelay < 0 {
		return fmt.Errorf("sensor: restartDelay must not be negative")
	}
	return nil
}

func validateSchedule(config ScheduleConfig) error {
	if config.PollInterval <= 0 {
		return fmt.Errorf("schedule: pollInterval must be positive")
	}
	if config.SampleSecond < 1 || config.SampleSecond > 59 {
		return fmt.Errorf("schedule: sampleSecond must be within 1..59, was %d", config.SampleSecond)
	}
	if config.RecomputeHour < 0 || config.RecomputeHour > 23 {
		return fmt.Errorf("schedule: recomputeHour must be within 0..23, was %d", config.RecomputeHour)
	}
	return nil
}

func validateTelemetry(config TelemetryConfig) error {
	if !config.Enabled {
		return nil
	}
	if len(config.Broker) <= 0 {
		return fmt.Errorf("telemetry: broker is missing")
	}
	if len(config.Topic) <= 0 {
		return fmt.Errorf("telemetry: topic is missing")
	}
	if config.Qos < 0 || config.Qos > 2 {
		return fmt.Errorf("telemetry: qos must be within 0..2, was %d", config.Qos)
	}
	return nil
}

func validateAddress(component string, address Address) error {
	if address < minAddress || address > maxAddress {
		return fmt.Errorf("%s: address %s is outside of the valid range 0x03..0x77", component, address)
	}
	return nil
}

func validatePort(component string, port int) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s: invalid port %d", component, port)
	}
	return nil
}

package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	SensorTypeNone     = "none"
	SensorTypeTSL2561  = "tsl2561"
	SensorTypeTSL2591  = "tsl2591"
	SensorTypeVEML7700 = "veml7700"

	DefaultDisplayAddress Address = 0x70
)

var SensorTypes = []string{SensorTypeNone, SensorTypeTSL2561, SensorTypeTSL2591, SensorTypeVEML7700}

var sensorAddresses = map[string]Address{
	SensorTypeTSL2561:  0x39,
	SensorTypeTSL2591:  0x29,
	SensorTypeVEML7700: 0x10,
}

// Address is a 7 bit bus address. It may be given as a number or as a
// string like "0x70".
type Address uint16

func (a Address) String() string {
	return fmt.Sprintf("0x%02x", uint16(a))
}

type BusConfig struct {
	// Adapter is the number of the /dev/i2c-N device.
	Adapter int `json:"adapter"`
}

type DisplayConfig struct {
	Address Address `json:"address"`
}

type SensorConfig struct {
	Type         string        `json:"type"`
	Address      Address       `json:"address"`
	RestartDelay time.Duration `json:"restartDelay"`
}

// Enabled reports whether a light sensor is configured, which switches
// the clock from time based to lux based dimming.
func (c SensorConfig) Enabled() bool {
	return c.Type != "" && c.Type != SensorTypeNone
}

func (c *SensorConfig) applyDefaults() {
	if c.Type == "" {
		c.Type = SensorTypeNone
	}
	if c.Address == 0 {
		c.Address = sensorAddresses[c.Type]
	}
}

type LuxTableConfig struct {
	// Path of the lookup table, empty means next to the executable.
	Path string `json:"path"`
}

type ScheduleConfig struct {
	PollInterval  time.Duration `json:"pollInterval"`
	SampleSecond  int           `json:"sampleSecond"`
	RecomputeHour int           `json:"recomputeHour"`
}

type TelemetryConfig struct {
	Enabled   bool          `json:"enabled"`
	Broker    string        `json:"broker"`
	ClientId  string        `json:"clientId"`
	Username  string        `json:"username,omitempty"`
	Password  string        `json:"password,omitempty"`
	Topic     string        `json:"topic"`
	Qos       int           `json:"qos"`
	Timeout   time.Duration `json:"timeout"`
	KeepAlive time.Duration `json:"keepAlive"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		addressHookFunc(),
	)
}

// addressHookFunc accepts decimal, hex ("0x70") and octal notation for
// bus addresses.
func addressHookFunc() mapstructure.DecodeHookFuncType {
	addressType := reflect.TypeOf(Address(0))
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != addressType || f.Kind() != reflect.String {
			return data, nil
		}
		value, err := strconv.ParseUint(data.(string), 0, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", data, err)
		}
		return Address(value), nil
	}
}

package configuration

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/luxclock/luxclock/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	Bus        BusConfig        `json:"bus"`
	Display    DisplayConfig    `json:"display"`
	Sensor     SensorConfig     `json:"sensor"`
	LuxTable   LuxTableConfig   `json:"luxTable"`
	Schedule   ScheduleConfig   `json:"schedule"`
	Telemetry  TelemetryConfig  `json:"telemetry"`
	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("luxclock")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/luxclock/")
	}

	viper.SetEnvPrefix("luxclock")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbPath", "/etc/luxclock/luxclock.db")

	viper.SetDefault("bus.adapter", 1)
	viper.SetDefault("display.address", DefaultDisplayAddress)

	viper.SetDefault("sensor.type", SensorTypeNone)
	viper.SetDefault("sensor.address", 0)
	viper.SetDefault("sensor.restartDelay", 500*time.Millisecond)

	viper.SetDefault("luxTable.path", "")

	viper.SetDefault("schedule.pollInterval", 200*time.Millisecond)
	viper.SetDefault("schedule.sampleSecond", 58)
	viper.SetDefault("schedule.recomputeHour", 4)

	viper.SetDefault("telemetry.enabled", true)
	viper.SetDefault("telemetry.broker", "tcp://localhost:1883")
	viper.SetDefault("telemetry.clientId", "luxclock")
	viper.SetDefault("telemetry.topic", "clock/light")
	viper.SetDefault("telemetry.qos", 0)
	viper.SetDefault("telemetry.timeout", 5*time.Second)
	viper.SetDefault("telemetry.keepAlive", 70*time.Second)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 8080)
}

// DetectConfigFile reads the configuration file if one can be found.
// Running without a file is allowed, the defaults describe a clock without
// a light sensor.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			ui.Info("No configuration file found, using defaults")
			return ""
		}
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
	CurrentConfig.Sensor.applyDefaults()
}

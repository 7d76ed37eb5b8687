package sensor

import (
	"errors"
	"fmt"
	"time"

	"github.com/luxclock/luxclock/cmd/global"
	"github.com/luxclock/luxclock/internal/bus"
	"github.com/luxclock/luxclock/internal/configuration"
	"github.com/luxclock/luxclock/internal/sensors"
	"github.com/luxclock/luxclock/internal/ui"
	"github.com/spf13/cobra"
)

var (
	samples  int
	interval time.Duration
)

var Command = &cobra.Command{
	Use:   "sensor",
	Short: "Read the configured light sensor",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectConfigFile()
		if len(configPath) > 0 {
			ui.Info("Using configuration file at: %s", configPath)
		}
		configuration.LoadConfig()
		if err := configuration.Validate(); err != nil {
			ui.Fatal("%v", err)
		}

		config := configuration.CurrentConfig
		if !config.Sensor.Enabled() {
			return errors.New("no light sensor configured")
		}

		adapter, err := bus.Open(config.Bus.Adapter)
		if err != nil {
			ui.Fatal("Unable to open I2C bus: %v", err)
		}
		defer func() {
			_ = adapter.Close()
		}()

		sensor, err := sensors.NewSensor(config.Sensor, adapter.Device(uint16(config.Sensor.Address)))
		if err != nil {
			return err
		}
		if err := sensor.Init(true); err != nil {
			return fmt.Errorf("unable to power on %s: %w", sensor.GetType(), err)
		}
		defer func() {
			_ = sensor.Init(false)
		}()

		var rows [][]string
		for i := 0; i < samples; i++ {
			if i > 0 {
				time.Sleep(interval)
			}
			reading := sensor.Read()
			rows = append(rows, []string{
				time.Now().Format(time.TimeOnly),
				fmt.Sprintf("%d", reading.Broadband),
				fmt.Sprintf("%d", reading.IR),
				fmt.Sprintf("%.4f", reading.Lux),
				fmt.Sprintf("%t", reading.Valid()),
			})
		}

		ui.Printfln("%s at %s", sensor.GetType(), config.Sensor.Address)
		return global.PrintTable([]string{"Time", "Broadband", "IR", "Lux", "Valid"}, rows)
	},
}

func init() {
	Command.Flags().IntVarP(&samples, "samples", "n", 1, "Number of readings to take")
	Command.Flags().DurationVarP(&interval, "interval", "i", time.Second, "Pause between readings")
}

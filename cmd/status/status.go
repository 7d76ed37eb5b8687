package status

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/luxclock/luxclock/cmd/global"
	"github.com/luxclock/luxclock/internal/configuration"
	"github.com/luxclock/luxclock/internal/persistence"
	clockstatus "github.com/luxclock/luxclock/internal/status"
	"github.com/luxclock/luxclock/internal/ui"
	"github.com/spf13/cobra"
)

var showRestarts bool

var Command = &cobra.Command{
	Use:   "status",
	Short: "Print the state of the last minute tick",
	Long:  `Reads the status database written by the running daemon.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration.DetectConfigFile()
		configuration.LoadConfig()

		p := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		snapshot, err := p.LoadStatus()
		if errors.Is(err, os.ErrNotExist) {
			ui.Warning("No status recorded yet in %s", configuration.CurrentConfig.DbPath)
			return nil
		} else if err != nil {
			return err
		}

		rows := [][]string{
			{"Clock", snapshot.Id},
			{"Updated", snapshot.Time.Format(time.DateTime)},
			{"Shown", snapshot.Shown.String()},
			{"Mode", snapshot.Mode},
			{"Dimming", snapshot.Dimming.String()},
			{"Display", fmt.Sprintf("status %d, %d errors", snapshot.DisplayStatus, snapshot.DisplayErrors)},
			{"Telemetry", snapshot.Telemetry.String()},
			{"Sun", snapshot.Schedule.String()},
		}
		if snapshot.Mode == clockstatus.ModeLux {
			rows = append(rows,
				[]string{"Smoothed Lux", fmt.Sprintf("%.4f", snapshot.SmoothedLux)},
				[]string{"Last Reading", snapshot.Reading.String()},
				[]string{"Sensor", fmt.Sprintf("%d bad readings, %d restarts", snapshot.SensorFailures, snapshot.SensorRestarts)},
			)
		}
		if err := global.PrintTable([]string{"", ""}, rows); err != nil {
			return err
		}

		if !showRestarts {
			return nil
		}
		records, err := p.LoadRestarts()
		if err != nil {
			return err
		}
		var restartRows [][]string
		for _, record := range records {
			result := "ok"
			if !record.Success {
				result = "failed"
			}
			restartRows = append(restartRows, []string{record.Time.Local().Format(time.DateTime), result})
		}
		return global.PrintTable([]string{"Sensor Restart", "Result"}, restartRows)
	},
}

func init() {
	Command.Flags().BoolVarP(&showRestarts, "restarts", "r", false, "Also list the sensor power cycles")
}

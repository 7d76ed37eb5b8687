package sun

import (
	"fmt"
	"time"

	"github.com/luxclock/luxclock/cmd/global"
	"github.com/luxclock/luxclock/internal/sun"
	"github.com/spf13/cobra"
)

var date string

var Command = &cobra.Command{
	Use:   "sun",
	Short: "Print the sunrise and sunset times used for dimming",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now()
		if len(date) > 0 {
			parsed, err := time.ParseInLocation(time.DateOnly, date, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date, expected YYYY-MM-DD: %w", err)
			}
			day = parsed.Add(12 * time.Hour)
		}

		offset := sun.UTCOffset(day)
		schedule := sun.Compute(sun.Latitude, sun.LongitudeWest, day, offset)

		return global.PrintTable(
			[]string{"Date", "Julian Day", "UTC Offset", "Sunrise", "Sunset"},
			[][]string{{
				day.Format(time.DateOnly),
				fmt.Sprintf("%d", sun.JulianDay(day)),
				fmt.Sprintf("%+d h", offset),
				schedule.Sunrise().String(),
				schedule.Sunset().String(),
			}},
		)
	},
}

func init() {
	Command.Flags().StringVarP(&date, "date", "d", "", "Date to compute the schedule for (default today)")
}

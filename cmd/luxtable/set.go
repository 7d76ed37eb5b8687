package luxtable

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/luxclock/luxclock/internal/luxtable"
	"github.com/luxclock/luxclock/internal/ui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <lux> <level>",
	Short: "Set the minimum lux of a brightness level",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lux, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lux value: %s", args[0])
		}
		level, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid level: %s", args[1])
		}
		return update(resolvePath(), level, lux)
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear <level>",
	Short: "Remove a brightness level from the lux table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid level: %s", args[0])
		}
		return update(resolvePath(), level, 0)
	},
}

func init() {
	Command.AddCommand(setCmd)
	Command.AddCommand(clearCmd)
}

// update changes a single entry of the table file, a missing file is
// created.
func update(path string, level int, lux int) error {
	table, err := luxtable.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := table.Set(level, lux); err != nil {
		return err
	}
	if err := luxtable.Save(path, table); err != nil {
		return err
	}
	ui.Success("Lux table %s updated, the daemon picks it up at the next daily reload or restart", path)
	return nil
}

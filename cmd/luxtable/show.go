package luxtable

import (
	"errors"
	"fmt"
	"os"

	"github.com/guptarohit/asciigraph"
	"github.com/luxclock/luxclock/cmd/global"
	"github.com/luxclock/luxclock/internal/luxtable"
	"github.com/luxclock/luxclock/internal/ui"
	"github.com/luxclock/luxclock/internal/util"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the lux table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolvePath()
		table, err := luxtable.Load(path)
		if errors.Is(err, os.ErrNotExist) {
			ui.Warning("No lux table at %s", path)
			return nil
		} else if err != nil {
			return err
		}

		ui.Printfln("Lux table: %s", path)
		if table.IsEmpty() {
			ui.Warning("No level has a lux threshold, the display stays at level 0")
			return nil
		}
		entries := table.Entries()
		levels := util.SortedKeys(entries)

		var rows [][]string
		for _, level := range levels {
			rows = append(rows, []string{fmt.Sprintf("%d", level), fmt.Sprintf("%d", entries[level])})
		}
		if err := global.PrintTable([]string{"Level", "Min Lux"}, rows); err != nil {
			return err
		}

		if len(levels) < 2 {
			return nil
		}
		values := make([]float64, 0, len(levels))
		for _, level := range levels {
			values = append(values, float64(entries[level]))
		}
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(64), asciigraph.Caption("Lux / Level"))
		ui.Printfln("%s", graph)
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}

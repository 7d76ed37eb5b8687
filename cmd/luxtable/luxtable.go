package luxtable

import (
	"github.com/luxclock/luxclock/internal/configuration"
	"github.com/luxclock/luxclock/internal/luxtable"
	"github.com/luxclock/luxclock/internal/ui"
	"github.com/spf13/cobra"
)

var tablePath string

var Command = &cobra.Command{
	Use:              "luxtable",
	Short:            "Lux table related commands",
	Long:             `The lux table maps each brightness level (0-15) to the minimum ambient lux at which it is used.`,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
}

func init() {
	Command.PersistentFlags().StringVarP(&tablePath, "file", "f", "", "Lux table file (default from configuration)")
}

// resolvePath returns the table file given by flag, configuration or default.
func resolvePath() string {
	if len(tablePath) > 0 {
		return tablePath
	}
	configPath := configuration.DetectConfigFile()
	if len(configPath) > 0 {
		ui.Debug("Using configuration file at: %s", configPath)
	}
	configuration.LoadConfig()
	return luxtable.ResolvePath(configuration.CurrentConfig.LuxTable.Path)
}

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/luxclock/luxclock/cmd/config"
	"github.com/luxclock/luxclock/cmd/global"
	"github.com/luxclock/luxclock/cmd/luxtable"
	"github.com/luxclock/luxclock/cmd/sensor"
	"github.com/luxclock/luxclock/cmd/status"
	"github.com/luxclock/luxclock/cmd/sun"
	"github.com/luxclock/luxclock/internal"
	"github.com/luxclock/luxclock/internal/configuration"
	"github.com/luxclock/luxclock/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "luxclock [verbosity]",
	Short: "A daemon driving a dimmable 7-segment clock.",
	Long: `luxclock shows the time on an HT16K33 7-segment display and adjusts
its brightness to sunrise and sunset, or to the ambient light measured
by a TSL2561, TSL2591 or VEML7700 sensor.

The optional verbosity argument is equivalent to --verbosity:
0 silent, 1 standard log, 2 per minute details, 3 bus traffic.`,
	Args: cobra.MaximumNArgs(1),
	// this is the default command to run when no subcommand is specified
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			level, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("verbosity must be a number: %s", args[0])
			}
			global.Verbosity = level
		}
		setupUi()
		printHeader()

		configPath := configuration.DetectConfigFile()
		if len(configPath) > 0 {
			ui.Info("Using configuration file at: %s", configPath)
		}
		configuration.LoadConfig()
		if err := configuration.Validate(); err != nil {
			ui.Fatal("Config Validation Error: %v", err)
		}

		internal.RunDaemon()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/luxclock.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().IntVarP(&global.Verbosity, "verbosity", "v", ui.VerbosityNormal, "Log verbosity (0-3)")

	rootCmd.AddCommand(config.Command)
	rootCmd.AddCommand(sun.Command)
	rootCmd.AddCommand(sensor.Command)
	rootCmd.AddCommand(luxtable.Command)
	rootCmd.AddCommand(status.Command)
}

func setupUi() {
	ui.SetVerbosity(global.Verbosity)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	if !ui.IsVerbose(ui.VerbosityNormal) {
		return
	}
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("lux", pterm.NewStyle(pterm.FgLightYellow)),
		pterm.NewLettersFromStringWithStyle("clock", pterm.NewStyle(pterm.FgWhite)),
	).Render()
	if err != nil {
		fmt.Println("luxclock")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		setupUi()
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

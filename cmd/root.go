package cmd

import (
	"fmt"
	"os"

	"github.com/ramanasai/daytodo/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	outFormat string
	noColor   bool
	verbose   bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "daytodo",
	Short: "Todo lists kept per day",
	Long: `daytodo keeps one todo list per day on a todo server.

Run without a subcommand to open the terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.config/daytodo/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outFormat, "format", "f", "default", "Output format: default, table, json, csv, compact, quiet")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log HTTP requests to stderr")

	// other files define these vars
	rootCmd.AddCommand(tuiCmd, listCmd, addCmd, editCmd, toggleCmd, rmCmd, dupCmd, moveCmd,
		datesCmd, renameCmd, pinCmd, copyDateCmd, deleteDateCmd,
		searchCmd, exportCmd, versionCmd, devServerCmd)
}

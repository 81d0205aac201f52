package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/steveyegge/speclint/internal/config"
)

var (
	cfgFile   string
	noColor   bool
	logLevel  string
	logFormat string

	// cfg is loaded once before any subcommand runs
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "speclint",
	Short: "Check source code against project spec documents",
	Long: `speclint reads the rule headings of the project's spec documents, keeps the
rules marked enabled, and scans TypeScript, JavaScript, Python and .env files
for violations of those rules.

The exit status is 1 when at least one ERROR issue is found.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			c.Logging.Level = logLevel
		}
		if cmd.Flags().Changed("log-format") {
			c.Logging.Format = logFormat
		}
		if _, err := config.InitLogger(os.Stderr, c.Logging.Format, c.Logging.Level); err != nil {
			return err
		}
		if noColor {
			color.NoColor = true
		}
		cfg = c
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

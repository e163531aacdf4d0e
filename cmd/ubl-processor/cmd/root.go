package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-processor/internal/config"
	"github.com/rezonia/ubl-processor/internal/logging"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	logLevel     string
	logFormat    string

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "ubl-processor",
	Short: "Read UBL 2.1 invoices and credit notes",
	Long: `UBL Processor extracts structured data from UBL 2.1 Invoice and
CreditNote XML documents (Peppol BIS, EN 16931 and other UBL profiles).

Examples:
  # Extract a single document
  ubl-processor extract invoice.xml

  # Extract a directory of documents into one file
  ubl-processor extract invoices/ -o results.json

  # Reconcile the totals of a document
  ubl-processor validate invoice.xml --strict`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, csv, table)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (env: UBL_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format, json or text (env: UBL_LOG_FORMAT)")
}

// initConfig loads the environment and configures logging. Flags win over
// environment variables.
func initConfig(cmd *cobra.Command, args []string) error {
	cfg = config.Load()

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if verbose && logLevel == "" {
		cfg.LogLevel = "debug"
	}

	return logging.Init(cfg.LogLevel, cfg.LogFormat)
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

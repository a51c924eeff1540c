package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	debugCount int
	logLevel   string
	paramsFile string
	variant    string
	envFile    string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:               "srsprofile",
	Short:             "build POWDER srsLTE resource request rspecs from profile parameters",
	PersistentPreRunE: preRunFn,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().CountVarP(&debugCount, "debug", "d", "enable debug mode")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info",
		"logging level; one of [trace, debug, info, warning, error, fatal]")
	rootCmd.PersistentFlags().StringVarP(&paramsFile, "params", "p", "",
		"path to the profile parameter file")
	_ = rootCmd.MarkPersistentFlagFilename("params", "*.yaml", "*.yml")
	rootCmd.PersistentFlags().StringVarP(&variant, "variant", "", "deployment",
		"profile variant; one of [deployment, otalab]")
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "", ".env",
		"dotenv file with credentials referenced from the parameter file")
}

func preRunFn(_ *cobra.Command, _ []string) error {
	// setting log level
	switch {
	case debugCount > 0:
		log.SetLevel(log.DebugLevel)
	default:
		l, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(l)
	}

	// logs go to stderr so the rspec on stdout stays parseable
	log.SetOutput(os.Stderr)

	return nil
}

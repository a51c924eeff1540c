package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/powder-labs/srsprofile/profile"
)

var outputFile string

// emitCmd builds the request and writes the rspec XML.
var emitCmd = &cobra.Command{
	Use:     "emit",
	Aliases: []string{"gen", "generate"},
	Short:   "build and emit the request rspec for the selected profile variant",
	RunE: func(_ *cobra.Command, _ []string) error {
		p, err := profile.New(
			profile.WithEnvFile(envFile, true),
			profile.WithVariant(variant),
			profile.WithParamsFile(paramsFile),
		)
		if err != nil {
			return err
		}

		if _, err := p.Build(); err != nil {
			return err
		}

		out := os.Stdout
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		if err := p.Emit(out); err != nil {
			return err
		}

		if outputFile != "" {
			log.Infof("request rspec written to %s", outputFile)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(emitCmd)
	emitCmd.Flags().StringVarP(&outputFile, "output", "o", "",
		"write the rspec to a file instead of stdout")
}

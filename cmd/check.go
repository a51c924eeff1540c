package cmd

import (
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/powder-labs/srsprofile/profile"
)

// checkCmd binds and verifies the parameters without building a request,
// reporting every violation found.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "validate profile parameters without emitting a request",
	RunE: func(_ *cobra.Command, _ []string) error {
		p, err := profile.New(
			profile.WithEnvFile(envFile, true),
			profile.WithVariant(variant),
			profile.WithParamsFile(paramsFile),
		)
		if err != nil {
			return err
		}

		if err := p.BindAndVerify(); err != nil {
			// joined errors print one violation per line
			for _, line := range strings.Split(err.Error(), "\n") {
				log.Errorf("parameter error: %s", line)
			}
			return errors.New("parameter validation failed")
		}

		log.Infof("parameters are valid for the %s profile", p.Variant)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

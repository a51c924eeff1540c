package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/powder-labs/srsprofile/profile"
	"github.com/powder-labs/srsprofile/types"
)

// listCmd prints the selectable resource catalogs of a profile variant.
var listCmd = &cobra.Command{
	Use:       "list [radios|endpoints|nodetypes]",
	Short:     "list the selectable radios, fixed endpoints or compute node types",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"radios", "endpoints", "nodetypes"},
	RunE: func(_ *cobra.Command, args []string) error {
		v, err := profile.ParseVariant(variant)
		if err != nil {
			return err
		}

		opts, header, err := catalog(v, args[0])
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{header, "Description"})
		for _, o := range opts {
			table.Append([]string{o.Value, o.Label})
		}
		table.Render()

		return nil
	},
}

func catalog(v profile.Variant, what string) ([]types.Option, string, error) {
	s := v.Schema()

	switch what {
	case "radios":
		return s.Get("x310_radios").Members[0].Options, "Radio", nil
	case "endpoints":
		return s.Get("b210_nodes").Members[0].Options, "Endpoint", nil
	case "nodetypes":
		return s.Get("x310_pair_nodetype").Options, "Node Type", nil
	}
	return nil, "", fmt.Errorf("unknown catalog %q", what)
}

func init() {
	rootCmd.AddCommand(listCmd)
}

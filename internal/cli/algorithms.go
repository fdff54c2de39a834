package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-fx-mcp/internal/transform"
)

func (a *app) newAlgorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available algorithms and their parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFAMILY\tRESULT\tPARAMETERS")
			for _, d := range transform.Algorithms() {
				required := strings.Join(d.Required, ",")
				if required == "" {
					required = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, d.Family, d.Buffer, required)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			aliases := transform.Aliases()
			names := make([]string, 0, len(aliases))
			for alias := range aliases {
				names = append(names, alias)
			}
			sort.Strings(names)
			for _, alias := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s is an alias of %s\n", alias, aliases[alias])
			}
			return nil
		},
	}
}

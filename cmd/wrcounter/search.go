package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Lists roster champions whose name contains query.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roster, err := loadRoster(cmd.Context())
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		recs := roster.Directory.Search(query)
		if len(recs) == 0 {
			fmt.Printf("No champion matches %q.\n", query)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "NAME\tKEY\tICON\t")
		for _, r := range recs {
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", r.DisplayName, r.Key, roster.Icons.Resolve(r.DisplayName))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

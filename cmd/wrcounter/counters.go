package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// countersCmd groups counter sheet maintenance commands
var countersCmd = &cobra.Command{
	Use:   "counters",
	Short: "Counter sheet maintenance.",
}

// diagnosticsCmd represents the counters diagnostics command
var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics",
	Short: "Lists counter sheet entries that do not match the roster.",
	RunE: func(cmd *cobra.Command, args []string) error {
		roster, err := loadRoster(cmd.Context())
		if err != nil {
			return err
		}
		if roster.CountersErr != nil {
			return roster.CountersErr
		}

		if len(roster.Diagnostics) == 0 {
			fmt.Println("Counter sheet matches the roster.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tKEY\tROLE\tCOUNTER\tSUGGESTION\tDETAIL\t")
		for _, d := range roster.Diagnostics {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n", d.Kind, d.Key, d.Role, d.Counter, d.Suggestion, d.Detail)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			return fmt.Errorf("%d counter sheet problems", len(roster.Diagnostics))
		}
		return nil
	},
}

func init() {
	diagnosticsCmd.Flags().Bool("strict", false, "Exit non-zero when any problem is found")
	countersCmd.AddCommand(diagnosticsCmd)
	rootCmd.AddCommand(countersCmd)
}

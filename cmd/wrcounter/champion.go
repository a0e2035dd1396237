package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wrcounter/internal/champdata"
	"github.com/wrcounter/internal/embeds"
)

// championCmd represents the champion command
var championCmd = &cobra.Command{
	Use:   "champion <name>",
	Short: "Shows a champion and its curated counters.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var only champdata.Role
		if l, _ := cmd.Flags().GetString("lane"); l != "" {
			r, ok := champdata.ParseRole(l)
			if !ok {
				return fmt.Errorf("unknown lane %q", l)
			}
			only = r
		}

		roster, err := loadRoster(cmd.Context())
		if err != nil {
			return err
		}

		name := strings.Join(args, " ")
		rec, ok := roster.Directory.Get(name)
		if !ok {
			return fmt.Errorf("champion %q not found", name)
		}

		icon := string(roster.Icons.Resolve(rec.DisplayName))
		if icon == "" {
			icon = "?"
		}
		fmt.Printf("%s (%s)\n%s\n", rec.DisplayName, rec.Key, icon)
		if roster.CountersErr != nil {
			fmt.Println("Curated counters are temporarily unavailable.")
		}
		fmt.Println()

		counters := roster.Counters.Resolve(rec.DisplayName)
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ROLE\tCOUNTER\tSTRENGTH\tNOTES\t")
		for _, role := range champdata.Roles {
			if only != "" && role != only {
				continue
			}
			entries := counters.For(role)
			if len(entries) == 0 {
				fmt.Fprintf(w, "%s\t%s\t\t\t\n", role, embeds.ComingSoon)
				continue
			}
			for _, e := range entries {
				counter := e.Character
				if roster.Icons.Resolve(e.Character) == champdata.Unknown {
					counter += " (?)"
				}
				notes := e.Notes
				if len(e.Tags) > 0 {
					notes = strings.TrimSpace(strings.Join(e.Tags, " • ") + "  " + notes)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", role, counter, e.DisplayStrength(), notes)
			}
		}
		return w.Flush()
	},
}

func init() {
	championCmd.Flags().String("lane", "", "Only show one lane (top, jungle, mid, adc, support)")
	rootCmd.AddCommand(championCmd)
}

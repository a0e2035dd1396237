package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/wrcounter/internal/champdata"
	"github.com/wrcounter/internal/services/scraper"
	"github.com/wrcounter/internal/storage"
)

// winratesCmd represents the winrates command
var winratesCmd = &cobra.Command{
	Use:   "winrates <champion>",
	Short: "Fetches community win-rate counters from CounterStats.net.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var lane champdata.Role
		if l, _ := cmd.Flags().GetString("lane"); l != "" {
			r, ok := champdata.ParseRole(l)
			if !ok {
				return fmt.Errorf("unknown lane %q", l)
			}
			lane = r
		}

		redis := storage.NewRedisClient(cmd.Context(), cfg.RedisURL, cfg.RedisPrefix, log)
		defer redis.Close()

		client := scraper.NewClient(scraper.DefaultBaseURL, redis, cfg.ScraperCacheTTL, log)
		stats, err := client.GetCounters(cmd.Context(), strings.Join(args, " "), lane)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CHAMPION\tWIN RATE\tLANE\t")
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t%s\t%s\t\n", s.ChampionName, s.WinRate, s.Lane)
		}
		return w.Flush()
	},
}

func init() {
	winratesCmd.Flags().String("lane", "", "Restrict to one lane (top, jungle, mid, adc, support)")
	rootCmd.AddCommand(winratesCmd)
}

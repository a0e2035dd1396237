package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wrcounter/pkg/healthcheck"
)

// healthCmd checks a running bot or API server, for Docker HEALTHCHECK
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Exits non-zero unless the local health endpoint answers ok.",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		if url == "" {
			url = healthURL(cfg.HealthAddr)
		}
		return healthcheck.Probe(url)
	},
}

func healthURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/health"
}

func init() {
	healthCmd.Flags().String("url", "", "Health endpoint (default derived from health.addr)")
	rootCmd.AddCommand(healthCmd)
}

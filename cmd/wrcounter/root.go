package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/wrcounter/internal/api"
	"github.com/wrcounter/internal/champdata"
	"github.com/wrcounter/internal/config"
	"github.com/wrcounter/internal/services/scraper"
	"github.com/wrcounter/internal/storage"
)

var (
	cfgFile string
	cfg     *config.Config
	log     = logrus.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wrcounter",
	Short: "Counter picks for League of Legends: Wild Rift.",
	Long: `wrcounter joins the Wild Rift champion allowlist with the Data Dragon catalog
and a curated counter sheet, and serves the result from the command line, over
HTTP and as a Discord bot.`,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("loglevel") {
			c.LogLevel, _ = cmd.Flags().GetString("loglevel")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		setLogLevel(c.LogLevel)
		cfg = c
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Commands run under a context cancelled by SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.wrcounter.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error")

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warning", "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	}
}

// errUnavailable is the one error a front-end shows for a failed roster load.
var errUnavailable = errors.New(api.UnavailableMessage)

// loadRoster builds the roster from the configured sources. A failed
// allowlist or catalog load is logged at debug level and reported as
// errUnavailable.
func loadRoster(ctx context.Context) (*champdata.Roster, error) {
	client := champdata.NewHTTPClient(cfg.HTTPTimeout)

	src := champdata.Sources{
		Allowlist:   champdata.ResourceAllowlist{Location: cfg.AllowlistLocation(), HTTPClient: client},
		Catalog:     champdata.NewDDragon(cfg.DDragonBaseURL, cfg.DDragonLocale, client),
		Counters:    champdata.ResourceCounterSheet{Location: cfg.CountersLocation(), HTTPClient: client},
		IconBaseURL: cfg.DDragonBaseURL,
	}

	opts := []champdata.Option{champdata.WithLogger(log)}
	if cfg.DDragonVersion != "" {
		opts = append(opts, champdata.WithVersion(champdata.VersionToken(cfg.DDragonVersion)))
	}
	roster, err := champdata.Load(ctx, src, opts...)
	if err != nil {
		var buildErr *champdata.DirectoryBuildError
		if errors.As(err, &buildErr) {
			log.WithError(err).Debug("champion data load failed")
			return nil, errUnavailable
		}
		return nil, err
	}
	return roster, nil
}

// services holds the Redis-backed helpers shared by the long-running
// front-ends.
type services struct {
	redis   *storage.RedisClient
	stats   *storage.LookupStats
	scraper *scraper.Client
}

func newServices(ctx context.Context) *services {
	redis := storage.NewRedisClient(ctx, cfg.RedisURL, cfg.RedisPrefix, log)
	return &services{
		redis:   redis,
		stats:   storage.NewLookupStats(redis, "lookups"),
		scraper: scraper.NewClient(scraper.DefaultBaseURL, redis, cfg.ScraperCacheTTL, log),
	}
}

func (s *services) Close() {
	if err := s.redis.Close(); err != nil {
		log.WithError(err).Warn("failed to close Redis")
	}
}

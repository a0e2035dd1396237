// Package config provides configuration management for WR Counterpick.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds all configuration values for the application.
type Config struct {
	// Static resources
	DataDir   string
	Allowlist string // path or URL, defaults to <DataDir>/wr_champions.json
	Counters  string // path or URL, defaults to <DataDir>/counters.json

	// Data Dragon
	DDragonBaseURL string
	DDragonLocale  string
	DDragonVersion string // empty means discover the latest release

	HTTPTimeout time.Duration

	// Front-ends
	HTTPAddr       string
	HealthAddr     string
	DiscordToken   string
	DiscordGuildID string

	// Redis
	RedisURL    string
	RedisPrefix string

	ScraperCacheTTL time.Duration

	LogLevel string
}

// Load reads configuration from .env, the optional YAML config file and the
// environment. An empty cfgFile means $HOME/.wrcounter.yaml, which may be
// absent.
func Load(cfgFile string) (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("WRCOUNTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names shared with other League tooling.
	_ = v.BindEnv("discord.token", "WRCOUNTER_DISCORD_TOKEN", "DISCORD_TOKEN")
	_ = v.BindEnv("redis.url", "WRCOUNTER_REDIS_URL", "REDIS_URL")
	_ = v.BindEnv("ddragon.version", "WRCOUNTER_DDRAGON_VERSION", "DDRAGON_VERSION")
	_ = v.BindEnv("data_dir", "WRCOUNTER_DATA_DIR", "DATA_DIR")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".wrcounter")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{
		DataDir:   v.GetString("data_dir"),
		Allowlist: v.GetString("allowlist"),
		Counters:  v.GetString("counters"),

		DDragonBaseURL: v.GetString("ddragon.base_url"),
		DDragonLocale:  v.GetString("ddragon.locale"),
		DDragonVersion: v.GetString("ddragon.version"),

		HTTPTimeout: v.GetDuration("http.timeout"),

		HTTPAddr:       v.GetString("http.addr"),
		HealthAddr:     v.GetString("health.addr"),
		DiscordToken:   v.GetString("discord.token"),
		DiscordGuildID: v.GetString("discord.guild_id"),

		RedisURL:    v.GetString("redis.url"),
		RedisPrefix: v.GetString("redis.prefix"),

		ScraperCacheTTL: v.GetDuration("scraper.cache_ttl"),

		LogLevel: v.GetString("loglevel"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("allowlist", "")
	v.SetDefault("counters", "")
	v.SetDefault("ddragon.base_url", "https://ddragon.leagueoflegends.com")
	v.SetDefault("ddragon.locale", "en_US")
	v.SetDefault("ddragon.version", "")
	v.SetDefault("http.timeout", 15*time.Second)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("health.addr", ":8081")
	v.SetDefault("discord.token", "")
	v.SetDefault("discord.guild_id", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.prefix", "wrcounter")
	v.SetDefault("scraper.cache_ttl", 6*time.Hour)
	v.SetDefault("loglevel", "info")
}

// Validate checks the settings every command needs.
func (c *Config) Validate() error {
	var errs []string

	if c.AllowlistLocation() == "" {
		errs = append(errs, "allowlist location is missing")
	}

	if c.DDragonBaseURL == "" {
		errs = append(errs, "ddragon.base_url is missing")
	}

	if c.HTTPTimeout <= 0 {
		errs = append(errs, "http.timeout must be positive")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown loglevel %q", c.LogLevel))
	}

	return joinErrs(errs)
}

// ValidateBot additionally checks what the Discord front-end needs.
func (c *Config) ValidateBot() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DiscordToken == "" {
		return joinErrs([]string{"DISCORD_TOKEN is missing"})
	}
	return nil
}

// AllowlistLocation returns the path or URL of wr_champions.json.
func (c *Config) AllowlistLocation() string {
	if c.Allowlist != "" {
		return c.Allowlist
	}
	return filepath.Join(c.DataDir, "wr_champions.json")
}

// CountersLocation returns the path or URL of counters.json.
func (c *Config) CountersLocation() string {
	if c.Counters != "" {
		return c.Counters
	}
	return filepath.Join(c.DataDir, "counters.json")
}

func joinErrs(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.New("configuration validation failed: " + strings.Join(errs, "; "))
}

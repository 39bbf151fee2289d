// Package console parses configuration for the console command and starts
// the console server.
package console

import (
	"context"
	"flag"
	"fmt"
	"time"

	platformcmd "github.com/indie-hain/console/internal/platform/cmd"
	"github.com/indie-hain/console/internal/services/console"
)

const (
	defaultHTTPAddr        = ":8090"
	defaultAPIBaseURL      = "http://localhost:8080"
	defaultRefreshInterval = 5 * time.Minute
)

// Config holds the console command configuration. Environment variables
// provide defaults; flags override them.
type Config struct {
	HTTPAddr        string        `env:"INDIE_HAIN_CONSOLE_ADDR" envDefault:":8090"`
	APIBaseURL      string        `env:"INDIE_HAIN_API_URL" envDefault:"http://localhost:8080"`
	DBPath          string        `env:"INDIE_HAIN_CONSOLE_DB_PATH"`
	RefreshInterval time.Duration `env:"INDIE_HAIN_CONSOLE_REFRESH_INTERVAL" envDefault:"5m"`
}

// ParseConfig loads environment defaults into a Config and then parses
// flags over them.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse console env: %w", err)
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-url", cfg.APIBaseURL, "distribution API base URL")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "session database path")
	fs.DurationVar(&cfg.RefreshInterval, "refresh-interval", cfg.RefreshInterval, "background reload interval, 0 disables")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the console server.
func Run(ctx context.Context, cfg Config) error {
	server, err := console.NewServer(console.Config{
		HTTPAddr:        cfg.HTTPAddr,
		APIBaseURL:      cfg.APIBaseURL,
		DBPath:          cfg.DBPath,
		RefreshInterval: cfg.RefreshInterval,
	})
	if err != nil {
		return fmt.Errorf("init console server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve console: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/finfeed/pkg/auth"
	"github.com/umputun/finfeed/pkg/config"
	"github.com/umputun/finfeed/pkg/domain"
	"github.com/umputun/finfeed/pkg/news"
	"github.com/umputun/finfeed/pkg/provider"
	"github.com/umputun/finfeed/pkg/repository"
	"github.com/umputun/finfeed/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"finfeed.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	APIKey string `long:"api-key" env:"ALPHA_VANTAGE_API_KEY" description:"news provider api key, overrides config"`
	DSN    string `long:"dsn" env:"DATABASE_URL" description:"database connection string, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug, opts.APIKey)

	log.Printf("[INFO] starting finfeed version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads config, wires storage, services and http server, and blocks until ctx is done
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyOverrides(cfg, opts)
	if cfg.Provider.APIKey != "" {
		setupLog(opts.Debug, cfg.Provider.APIKey)
	} else {
		log.Printf("[WARN] provider api key is not set, mock feed will be served")
	}

	dbCfg := cfg.GetDatabaseConfig()
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             dbCfg.DSN,
		MaxOpenConns:    dbCfg.MaxOpenConns,
		MaxIdleConns:    dbCfg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(dbCfg.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	go cleanupTokens(ctx, repos.Token, time.Hour)

	srv := server.New(server.Params{
		Config:  cfg,
		Auth:    makeAuthService(cfg, repos),
		News:    makeNewsService(cfg),
		Saved:   repos.Saved,
		Health:  repos,
		Version: revision,
		Debug:   opts.Debug,

		RateLimit:  cfg.Server.RateLimit,
		RateWindow: cfg.Server.RateWindow,
	})

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// applyOverrides sets config values passed on command line or environment
func applyOverrides(cfg *config.Config, opts Opts) {
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.APIKey != "" {
		cfg.Provider.APIKey = opts.APIKey
	}
	if opts.DSN != "" {
		cfg.Database.DSN = opts.DSN
	}
}

func makeNewsService(cfg *config.Config) *news.Service {
	pc, cc := cfg.GetProviderConfig(), cfg.GetCacheConfig()
	client := provider.New(provider.Params{Endpoint: pc.Endpoint, APIKey: pc.APIKey, Timeout: pc.Timeout})
	return news.NewService(news.Params{
		Provider: client,
		Cache:    news.NewCache(cc.TTL),
		Retry:    news.NewRetryPolicy(pc.MaxAttempts, pc.RetryDelay, pc.MaxRetryDelay, news.TerminalErrors()...),
		Cooldown: cc.Cooldown,
		Defaults: domain.Query{Topics: pc.DefaultTopics, Sort: pc.DefaultSort, Limit: pc.DefaultLimit},
	})
}

func makeAuthService(cfg *config.Config, repos *repository.Repositories) *auth.Service {
	ac := cfg.GetAuthConfig()
	return auth.NewService(auth.Params{Users: repos.User, Tokens: repos.Token, TokenTTL: ac.TokenTTL, BcryptCost: ac.BcryptCost})
}

// cleanupTokens removes expired tokens every interval until ctx is done
func cleanupTokens(ctx context.Context, tokens *repository.TokenRepository, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := tokens.DeleteExpired(ctx, time.Now())
			if err != nil {
				log.Printf("[WARN] failed to delete expired tokens: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[DEBUG] deleted %d expired tokens", n)
			}
		}
	}
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(io.Discard), lgr.Err(io.Discard)}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

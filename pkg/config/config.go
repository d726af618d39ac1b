package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database DatabaseConfig `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Provider ProviderConfig `yaml:"provider" json:"provider" jsonschema:"description=News provider configuration"`
	Cache    CacheConfig    `yaml:"cache" json:"cache" jsonschema:"description=News cache configuration"`
	Auth     AuthConfig     `yaml:"auth" json:"auth" jsonschema:"description=Authentication configuration"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen     string        `yaml:"listen" json:"listen" jsonschema:"required,default=:8080,description=HTTP server listen address"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=HTTP server timeout larger than provider retry budget"`
	RateLimit  int           `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=100,minimum=1,description=Requests per client ip allowed within rate_window on /api"`
	RateWindow time.Duration `yaml:"rate_window" json:"rate_window" jsonschema:"default=15m,description=Window of the per ip rate limit"`
}

// DatabaseConfig holds database settings, dsn starting with postgres:// selects postgres
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:finfeed.db?cache=shared&mode=rwc&_txlock=immediate,description=Database connection string (sqlite file or postgres:// url)"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,minimum=1,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,minimum=0,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,minimum=0,description=Connection maximum lifetime in seconds"`
}

// ProviderConfig holds news provider settings
type ProviderConfig struct {
	Endpoint      string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,default=https://www.alphavantage.co/query,description=NEWS_SENTIMENT api endpoint"`
	APIKey        string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable) and mock feed is served without it"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Provider request timeout"`
	MaxAttempts   int           `yaml:"max_attempts" json:"max_attempts" jsonschema:"default=3,minimum=1,maximum=10,description=Maximum provider call attempts"`
	RetryDelay    time.Duration `yaml:"retry_delay" json:"retry_delay" jsonschema:"default=2s,description=Initial delay between attempts doubled on every retry"`
	MaxRetryDelay time.Duration `yaml:"max_retry_delay" json:"max_retry_delay" jsonschema:"default=30s,description=Maximum delay between attempts"`
	DefaultTopics []string      `yaml:"default_topics" json:"default_topics" jsonschema:"description=Topics requested when query has neither tickers nor topics"`
	DefaultSort   string        `yaml:"default_sort" json:"default_sort" jsonschema:"default=LATEST,enum=LATEST,enum=EARLIEST,enum=RELEVANCE,description=Default sort order"`
	DefaultLimit  int           `yaml:"default_limit" json:"default_limit" jsonschema:"default=50,minimum=1,maximum=1000,description=Default number of articles"`
}

// CacheConfig holds news cache settings
type CacheConfig struct {
	TTL      time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=5m,description=How long a fetched feed is served from cache"`
	Cooldown time.Duration `yaml:"cooldown" json:"cooldown" jsonschema:"default=60s,description=How long provider is left alone after a rate limit"`
}

// AuthConfig holds authentication settings
type AuthConfig struct {
	TokenTTL   time.Duration `yaml:"token_ttl" json:"token_ttl" jsonschema:"default=24h,description=Bearer token lifetime"`
	BcryptCost int           `yaml:"bcrypt_cost" json:"bcrypt_cost" jsonschema:"default=12,minimum=4,maximum=31,description=Password hashing cost"`
}

// sort orders accepted by the provider
var sortOrders = []string{"LATEST", "EARLIEST", "RELEVANCE"}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema validation is supplementary, log and go on
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values
func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 60 * time.Second
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 100
	}
	if c.Server.RateWindow == 0 {
		c.Server.RateWindow = 15 * time.Minute
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:finfeed.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Provider.Endpoint == "" {
		c.Provider.Endpoint = "https://www.alphavantage.co/query"
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = 15 * time.Second
	}
	if c.Provider.MaxAttempts == 0 {
		c.Provider.MaxAttempts = 3
	}
	if c.Provider.RetryDelay == 0 {
		c.Provider.RetryDelay = 2 * time.Second
	}
	if c.Provider.MaxRetryDelay == 0 {
		c.Provider.MaxRetryDelay = 30 * time.Second
	}
	if len(c.Provider.DefaultTopics) == 0 {
		c.Provider.DefaultTopics = []string{"financial_markets"}
	}
	if c.Provider.DefaultSort == "" {
		c.Provider.DefaultSort = "LATEST"
	}
	c.Provider.DefaultSort = strings.ToUpper(c.Provider.DefaultSort)
	if c.Provider.DefaultLimit == 0 {
		c.Provider.DefaultLimit = 50
	}

	if c.Cache.TTL == 0 {
		c.Cache.TTL = 5 * time.Minute
	}
	if c.Cache.Cooldown == 0 {
		c.Cache.Cooldown = 60 * time.Second
	}

	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 12
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if cfg.Server.RateLimit < 1 || cfg.Server.RateWindow < time.Second {
		return fmt.Errorf("server.rate_limit must be positive and server.rate_window at least 1 second")
	}

	// validate provider config
	if !strings.HasPrefix(cfg.Provider.Endpoint, "http://") && !strings.HasPrefix(cfg.Provider.Endpoint, "https://") {
		return fmt.Errorf("provider.endpoint must be http(s) url, got %q", cfg.Provider.Endpoint)
	}
	if cfg.Provider.MaxAttempts < 1 || cfg.Provider.MaxAttempts > 10 {
		return fmt.Errorf("provider.max_attempts must be between 1 and 10")
	}
	if cfg.Provider.RetryDelay < 0 || cfg.Provider.MaxRetryDelay < cfg.Provider.RetryDelay {
		return fmt.Errorf("provider.max_retry_delay must not be less than provider.retry_delay")
	}
	if cfg.Provider.DefaultLimit < 1 || cfg.Provider.DefaultLimit > 1000 {
		return fmt.Errorf("provider.default_limit must be between 1 and 1000")
	}
	if !validSort(cfg.Provider.DefaultSort) {
		return fmt.Errorf("provider.default_sort must be one of %s", strings.Join(sortOrders, ", "))
	}
	// news handler falls back to mock feed before write deadline, a slower refresh never makes it
	if budget := cfg.Provider.RetryBudget(); cfg.Server.Timeout <= budget {
		return fmt.Errorf("server.timeout %v must be larger than provider retry budget %v (max_attempts * timeout + retry delays)",
			cfg.Server.Timeout, budget)
	}

	// validate cache config
	if cfg.Cache.TTL < 0 || cfg.Cache.Cooldown < 0 {
		return fmt.Errorf("cache ttl and cooldown must be non-negative")
	}

	// validate auth config
	if cfg.Auth.TokenTTL < time.Minute {
		return fmt.Errorf("auth.token_ttl must be at least 1 minute")
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 4 and 31")
	}

	return nil
}

func validSort(s string) bool {
	for _, v := range sortOrders {
		if s == v {
			return true
		}
	}
	return false
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// RetryBudget returns the worst-case duration of one provider refresh, every attempt timing out
// and every backoff delay taken in full
func (p ProviderConfig) RetryBudget() time.Duration {
	budget := time.Duration(p.MaxAttempts) * p.Timeout
	delay := p.RetryDelay
	for i := 1; i < p.MaxAttempts; i++ {
		budget += min(delay, p.MaxRetryDelay)
		delay *= 2
	}
	return budget
}

// GetDatabaseConfig returns database configuration
func (c *Config) GetDatabaseConfig() DatabaseConfig {
	return c.Database
}

// GetProviderConfig returns news provider configuration
func (c *Config) GetProviderConfig() ProviderConfig {
	return c.Provider
}

// GetCacheConfig returns news cache configuration
func (c *Config) GetCacheConfig() CacheConfig {
	return c.Cache
}

// GetAuthConfig returns authentication configuration
func (c *Config) GetAuthConfig() AuthConfig {
	return c.Auth
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/keo/pkg/keo/internalerr"
)

// Config holds every tunable of the engine and its surroundings.
type Config struct {
	Strategy   string     `yaml:"strategy"`
	Similarity Similarity `yaml:"similarity"`
	Trends     Trends     `yaml:"trends"`
	Sentiment  Sentiment  `yaml:"sentiment"`
	Cache      Cache      `yaml:"cache"`
	Corpus     Corpus     `yaml:"corpus"`
	Lexicon    Lexicon    `yaml:"lexicon"`
	Store      Store      `yaml:"store"`
	Redis      Redis      `yaml:"redis"`
	Remote     Remote     `yaml:"remote"`
	Log        Log        `yaml:"log"`
}

// Similarity tunes related-entry retrieval.
type Similarity struct {
	PoolSize  int     `yaml:"pool_size"`
	Limit     int     `yaml:"limit"`
	Threshold float64 `yaml:"threshold"`
}

// Trends tunes trend aggregation.
type Trends struct {
	Delta        float64 `yaml:"delta"`
	RecentWindow int     `yaml:"recent_window"`
	MinDocuments int     `yaml:"min_documents"`
	Workers      int     `yaml:"workers"`
}

// Sentiment scales raw lexicon counts before clamping.
type Sentiment struct {
	Scale float64 `yaml:"scale"`
}

// Cache selects and sizes the insight cache backing.
type Cache struct {
	TTL     time.Duration `yaml:"ttl"`
	Backend string        `yaml:"backend"`
	LRUSize int           `yaml:"lru_size"`
	Prefix  string        `yaml:"prefix"`
}

// Corpus bounds related-entry fetches.
type Corpus struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Lexicon points at an optional YAML override of the built-in tables.
type Lexicon struct {
	Path string `yaml:"path"`
}

// Store selects the journal store driver.
type Store struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Redis is the connection used by the redis cache backend.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Remote configures the model-backed strategy.
type Remote struct {
	Model         string        `yaml:"model"`
	APIKeyEnv     string        `yaml:"api_key_env"`
	BaseURL       string        `yaml:"base_url"`
	RatePerMinute int           `yaml:"rate_per_minute"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxRetries    int           `yaml:"max_retries"`
}

// Log configures the structured logger.
type Log struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
	Salt  string `yaml:"salt"`
}

// Strategy names.
const (
	StrategyLexical = "lexical"
	StrategyRemote  = "remote"
)

// Cache backends.
const (
	BackendMemory = "memory"
	BackendLRU    = "lru"
	BackendRedis  = "redis"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Strategy:   StrategyLexical,
		Similarity: Similarity{PoolSize: 100, Limit: 5, Threshold: 0.1},
		Trends:     Trends{Delta: 0.05, RecentWindow: 5, MinDocuments: 3, Workers: 8},
		Sentiment:  Sentiment{Scale: 5},
		Cache:      Cache{TTL: time.Hour, Backend: BackendMemory, LRUSize: 4096, Prefix: "keo:insight:"},
		Corpus:     Corpus{Timeout: 2 * time.Second},
		Store:      Store{Driver: DriverSQLite, DSN: "keo.db"},
		Redis:      Redis{Addr: "localhost:6379"},
		Remote: Remote{
			Model:         "gpt-4o-mini",
			APIKeyEnv:     "OPENAI_API_KEY",
			RatePerMinute: 30,
			Timeout:       30 * time.Second,
			MaxRetries:    2,
		},
		Log: Log{Mode: "dev", Level: "info"},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides selected keys from the environment. Unparseable values
// are ignored. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	for _, name := range []string{"INSIGHTS_CACHE_TTL_SECONDS", "KEO_CACHE_TTL_SECONDS"} {
		if secs, err := strconv.Atoi(strings.TrimSpace(getenv(name))); err == nil && secs > 0 {
			c.Cache.TTL = time.Duration(secs) * time.Second
		}
	}
	if dsn := strings.TrimSpace(getenv("KEO_DATABASE_URL")); dsn != "" {
		c.Store.DSN = dsn
		if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
			c.Store.Driver = DriverPostgres
		}
	}
	if addr := strings.TrimSpace(getenv("KEO_REDIS_ADDR")); addr != "" {
		c.Redis.Addr = addr
	}
}

// Validate reports the first invalid setting, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case c.Similarity.PoolSize <= 0:
		return fail("similarity.pool_size must be positive, got %d", c.Similarity.PoolSize)
	case c.Similarity.Limit <= 0:
		return fail("similarity.limit must be positive, got %d", c.Similarity.Limit)
	case c.Similarity.Threshold < 0 || c.Similarity.Threshold > 1:
		return fail("similarity.threshold must be in [0,1], got %g", c.Similarity.Threshold)
	case c.Trends.Delta < 0:
		return fail("trends.delta must not be negative, got %g", c.Trends.Delta)
	case c.Trends.RecentWindow <= 0:
		return fail("trends.recent_window must be positive, got %d", c.Trends.RecentWindow)
	case c.Trends.MinDocuments <= 0:
		return fail("trends.min_documents must be positive, got %d", c.Trends.MinDocuments)
	case c.Sentiment.Scale <= 0:
		return fail("sentiment.scale must be positive, got %g", c.Sentiment.Scale)
	case c.Cache.TTL <= 0:
		return fail("cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	switch c.Cache.Backend {
	case BackendMemory, BackendRedis:
	case BackendLRU:
		if c.Cache.LRUSize <= 0 {
			return fail("cache.lru_size must be positive, got %d", c.Cache.LRUSize)
		}
	default:
		return fail("unknown cache.backend %q", c.Cache.Backend)
	}
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return fail("unknown store.driver %q", c.Store.Driver)
	}
	switch c.Strategy {
	case StrategyLexical:
	case StrategyRemote:
		if c.Remote.Model == "" {
			return fail("remote.model is required for the remote strategy")
		}
	default:
		return fail("unknown strategy %q", c.Strategy)
	}
	return nil
}

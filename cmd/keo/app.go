package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/cognicore/keo/internal/llm"
	"github.com/cognicore/keo/internal/logger"
	"github.com/cognicore/keo/pkg/keo"
	"github.com/cognicore/keo/pkg/keo/analytics"
	"github.com/cognicore/keo/pkg/keo/cache"
	"github.com/cognicore/keo/pkg/keo/config"
	"github.com/cognicore/keo/pkg/keo/internalerr"
	"github.com/cognicore/keo/pkg/keo/rank"
	"github.com/cognicore/keo/pkg/keo/remote"
	"github.com/cognicore/keo/pkg/keo/store"
	"github.com/cognicore/keo/pkg/keo/store/memstore"
	"github.com/cognicore/keo/pkg/keo/store/postgres"
	"github.com/cognicore/keo/pkg/keo/store/sqlite"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath  string
	lexiconPath string
	logMode     string
	driver      string
	dsn         string
	strategy    string
}

// runtime is everything a command needs.
type runtime struct {
	cfg    config.Config
	log    *logger.Logger
	store  store.Store
	engine *keo.Engine
}

// buildRuntime loads configuration and opens the store, cache and strategy.
// The returned cleanup closes whatever was opened.
func buildRuntime(ctx context.Context, flags globalFlags, getenv func(string) string) (*runtime, func(), error) {
	loader := config.Loader{
		ConfigPath:  flags.configPath,
		LexiconPath: flags.lexiconPath,
		Getenv:      getenv,
	}
	comp, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	cfg := comp.Config
	if flags.logMode != "" {
		cfg.Log.Mode = flags.logMode
	}
	if flags.driver != "" {
		cfg.Store.Driver = flags.driver
	}
	if flags.dsn != "" {
		cfg.Store.DSN = flags.dsn
	}
	if flags.strategy != "" {
		cfg.Strategy = flags.strategy
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.Options{Mode: cfg.Log.Mode, Level: cfg.Log.Level, Salt: cfg.Log.Salt})
	if err != nil {
		return nil, nil, err
	}

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		log.Sync()
	}

	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, func() { st.Close() })

	backing, closeBacking, err := openBacking(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if closeBacking != nil {
		closers = append(closers, closeBacking)
	}

	var strategy keo.Strategy
	if cfg.Strategy == config.StrategyRemote {
		strategy, err = openRemote(cfg, log, getenv)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	engine := keo.New(keo.Options{
		Tables:        comp.Lexicon,
		Corpus:        st,
		CorpusTimeout: cfg.Corpus.Timeout,
		Ranking: rank.Options{
			Limit:     cfg.Similarity.Limit,
			PoolSize:  cfg.Similarity.PoolSize,
			Threshold: cfg.Similarity.Threshold,
		},
		Strategy: strategy,
		Lexical: keo.LexicalOptions{
			SentimentScale: cfg.Sentiment.Scale,
			Trends: analytics.Options{
				Delta:        cfg.Trends.Delta,
				RecentWindow: cfg.Trends.RecentWindow,
				MinDocuments: cfg.Trends.MinDocuments,
				Workers:      cfg.Trends.Workers,
			},
		},
		Cache:  cache.New(backing, cache.WithTTL(cfg.Cache.TTL), cache.WithLogger(log)),
		Logger: log,
	})

	log.Debug("runtime ready", "store", cfg.Store.Driver, "cache", cfg.Cache.Backend, "strategy", cfg.Strategy)
	return &runtime{cfg: cfg, log: log, store: st, engine: engine}, cleanup, nil
}

func openStore(ctx context.Context, cfg config.Store) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memstore.New(), nil
	case config.DriverSQLite:
		return sqlite.OpenSQLite(ctx, cfg.DSN)
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: store driver %q", internalerr.ErrInvalidConfig, cfg.Driver)
	}
}

func openBacking(cfg config.Config) (cache.Backing, func(), error) {
	switch cfg.Cache.Backend {
	case config.BackendMemory, "":
		return nil, nil, nil
	case config.BackendLRU:
		lru, err := cache.NewLRU(cfg.Cache.LRUSize)
		return lru, nil, err
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return cache.NewRedis(client, cfg.Cache.Prefix, cfg.Cache.TTL), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: cache backend %q", internalerr.ErrInvalidConfig, cfg.Cache.Backend)
	}
}

func openRemote(cfg config.Config, log *logger.Logger, getenv func(string) string) (keo.Strategy, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	apiKey := getenv(cfg.Remote.APIKeyEnv)
	if apiKey == "" && cfg.Remote.BaseURL == "" {
		return nil, fmt.Errorf("%w: remote strategy needs %s", internalerr.ErrInvalidConfig, cfg.Remote.APIKeyEnv)
	}
	backoff := llm.DefaultBackoff().Limit(cfg.Remote.MaxRetries)
	client, err := llm.New(llm.Config{
		APIKey:  apiKey,
		BaseURL: cfg.Remote.BaseURL,
		Model:   cfg.Remote.Model,
		Timeout: cfg.Remote.Timeout,
		Backoff: &backoff,
	})
	if err != nil {
		return nil, err
	}
	return remote.New(client,
		remote.WithRatePerMinute(cfg.Remote.RatePerMinute),
		remote.WithMinDocuments(cfg.Trends.MinDocuments),
		remote.WithLogger(log),
	)
}

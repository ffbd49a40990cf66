package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/cv-generator/internal/cache"
	"github.com/jonathan/cv-generator/internal/config"
	"github.com/jonathan/cv-generator/internal/db"
	"github.com/jonathan/cv-generator/internal/logging"
	"github.com/jonathan/cv-generator/internal/observability"
	"github.com/jonathan/cv-generator/internal/pdf"
	"github.com/jonathan/cv-generator/internal/pipeline"
)

// runtime holds the collaborators a command wires into the generator.
// Optional ones are nil when not configured.
type runtime struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *observability.Metrics
	pool    *pdf.Pool
	cache   *cache.Cache
	db      *db.DB
	gen     *pipeline.Generator
}

// loadConfig reads the config and builds the logger. Command line flags win
// over the config file.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Log.JSON || jsonLogs, cfg.Log.Debug || debugLogs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, nil
}

// newRuntime connects the configured backends. withMetrics is set by serve,
// which exposes them.
func newRuntime(ctx context.Context, withMetrics bool) (*runtime, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, logger: logger}
	if withMetrics {
		rt.metrics = observability.NewMetrics()
	}

	chromePath := cfg.PDF.ChromePath
	if chromePath == "" {
		chromePath = pdf.FindChrome()
	}
	rt.pool = pdf.NewPool(pdf.Options{
		PoolSize:   cfg.PDF.PoolSize,
		Timeout:    cfg.PDF.Timeout,
		ChromePath: chromePath,
		Breaker: pdf.BreakerSettings{
			Enabled:          cfg.PDF.Breaker.Enabled,
			MaxRequests:      cfg.PDF.Breaker.MaxRequests,
			Interval:         cfg.PDF.Breaker.Interval,
			Timeout:          cfg.PDF.Breaker.Timeout,
			MinRequests:      cfg.PDF.Breaker.MinRequests,
			FailureThreshold: cfg.PDF.Breaker.FailureThreshold,
		},
		Logger: logger,
		InUse:  rt.metrics.SetBrowsersInUse,
	})

	opts := pipeline.Options{
		PDF:                    rt.pool,
		Metrics:                rt.metrics,
		Logger:                 logger,
		Concurrency:            cfg.Batch.Concurrency,
		PlaceholderOnDOCXError: cfg.DOCX.PlaceholderOnError,
	}

	if cfg.Cache.RedisAddr != "" {
		rt.cache = cache.New(cache.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			Prefix:   cfg.Cache.Prefix,
			TTL:      cfg.Cache.TTL,
		})
		opts.Cache = rt.cache
		logger.Info("result cache enabled", zap.String("addr", cfg.Cache.RedisAddr))
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			rt.Close()
			return nil, err
		}
		if err := database.InitSchema(ctx); err != nil {
			database.Close()
			rt.Close()
			return nil, err
		}
		rt.db = database
		opts.Log = database
	}

	gen, err := pipeline.New(opts)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.gen = gen
	return rt, nil
}

// Close releases every backend the runtime opened
func (rt *runtime) Close() {
	if rt.pool != nil {
		if err := rt.pool.Close(); err != nil {
			rt.logger.Warn("failed to close pdf pool", zap.Error(err))
		}
	}
	if rt.cache != nil {
		if err := rt.cache.Close(); err != nil {
			rt.logger.Warn("failed to close cache", zap.Error(err))
		}
	}
	if rt.db != nil {
		rt.db.Close()
	}
	_ = rt.logger.Sync()
}

// readInput reads a request payload from path, or stdin for "-"
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return data, nil
}

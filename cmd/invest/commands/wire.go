package commands

import (
	"fmt"

	"github.com/tumkwe/invest/internal/collect"
	"github.com/tumkwe/invest/internal/external/edgar"
	"github.com/tumkwe/invest/internal/external/newsapi"
	"github.com/tumkwe/invest/internal/external/yahoo"
	"github.com/tumkwe/invest/internal/store"
	"github.com/tumkwe/invest/internal/validate"
	"github.com/tumkwe/invest/pkg/config"
	"github.com/tumkwe/invest/pkg/database"
	"github.com/tumkwe/invest/pkg/httputil"
	"github.com/tumkwe/invest/pkg/logger"
	"github.com/tumkwe/invest/pkg/metrics"
	"github.com/tumkwe/invest/pkg/redis"
)

// app bundles everything a command needs after wiring.
type app struct {
	cfg     *config.Config
	logger  *logger.Logger
	db      *database.DB
	redis   *redis.Client
	manager *collect.Manager
}

// close releases the app's connections.
func (a *app) close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

// wire builds the full collection stack: config, logger, database,
// optional Redis, provider clients, dispatcher, and manager.
func wire() (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// 4. Connect to Redis (optional)
	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "invest")

	// 5. Create metrics recorder
	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.New()
	}

	// 6. Create HTTP clients. EDGAR gets its own client because the
	// User-Agent header is attached at client level.
	httpClient := httputil.New(log)
	edgarHTTPClient := httputil.New(log)

	// 7. Create external API clients
	yahooClient := yahoo.NewClient(cfg.Yahoo, httpClient, log)
	newsClient := newsapi.NewClient(cfg.NewsAPI, httpClient, log)
	edgarClient := edgar.NewClient(cfg.EDGAR, edgarHTTPClient, log)

	providers := collect.Providers{
		Market:     yahooClient,
		Financials: yahooClient,
		News:       newsClient,
		Filings:    edgarClient,
	}

	// 8. Create validator
	validator := validate.New(validate.Thresholds{
		MaxPriceChangePercent: cfg.Validation.MaxPriceChangePercent,
		MinDataCompleteness:   cfg.Validation.MinDataCompleteness,
		MaxPERatio:            cfg.Validation.MaxPERatio,
		MaxOutlierStd:         cfg.Validation.MaxOutlierStd,
	})

	// 9. Create repository and dispatcher
	repo := store.NewRepository(db.Pool)
	dispatcher := collect.NewDispatcher(providers, validator, repo, cache, recorder, log)

	// 10. Create task store and manager
	taskStore := collect.NewTaskStore(cfg.Collection.DataDir, log)
	manager := collect.NewManager(dispatcher, taskStore, cfg.Collection, recorder, log)

	return &app{
		cfg:     cfg,
		logger:  log,
		db:      db,
		redis:   redisClient,
		manager: manager,
	}, nil
}

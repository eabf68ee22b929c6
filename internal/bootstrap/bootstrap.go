package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/canvasstudy/internal/app/controllers"
	appMigrations "github.com/yigit/canvasstudy/internal/app/migrations"
	appRepos "github.com/yigit/canvasstudy/internal/app/repositories"
	appRoutes "github.com/yigit/canvasstudy/internal/app/routes"
	appServices "github.com/yigit/canvasstudy/internal/app/services"
	"github.com/yigit/canvasstudy/internal/config"
	"github.com/yigit/canvasstudy/internal/db"
	appMiddleware "github.com/yigit/canvasstudy/internal/middleware"
	"github.com/yigit/canvasstudy/internal/pkg/cache"
	"github.com/yigit/canvasstudy/internal/pkg/canvas"
	"github.com/yigit/canvasstudy/internal/pkg/extractor"
	"github.com/yigit/canvasstudy/internal/pkg/filestorage"
	"github.com/yigit/canvasstudy/internal/pkg/helpers"
	"github.com/yigit/canvasstudy/internal/pkg/llm"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
	"github.com/yigit/canvasstudy/internal/pkg/metrics"
)

// ConfigPathEnv overrides the default configs/config.yaml location.
const ConfigPathEnv = "CONFIG_PATH"

const (
	defaultNetworkTimeout = 30 * time.Second
	defaultWorkerTimeout  = 60 * time.Second
	defaultCacheTTL       = 24 * time.Hour
	startupPingTimeout    = 5 * time.Second
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Database          *db.PostgresDB // nil when the archive lives in memory
	Cache             cache.ExtractionCache
	CacheEnabled      bool
	LLM               *llm.Client
	Metrics           *metrics.Registry // nil when metrics are disabled
	FileStorage       *filestorage.LocalStorage
	Repos             *appRepos.Repositories
	CanvasService     appServices.CanvasService
	ExtractionService appServices.ExtractionService
	NoteService       appServices.NoteService
	StudyService      appServices.StudyService
	Controllers       appRoutes.Controllers
	Logger            zerolog.Logger
}

// Close releases the database pool and the cache client.
func (d *Dependencies) Close() {
	if d == nil {
		return
	}
	if d.Cache != nil {
		if err := d.Cache.Close(); err != nil {
			d.Logger.Warn().Err(err).Msg("Failed to close extraction cache")
		}
	}
	d.Database.Close()
}

// ConfigPath returns the configuration file to load.
func ConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(ConfigPathEnv)); p != "" {
		return p
	}
	return filepath.Join("configs", "config.yaml")
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	appMiddleware.SetErrorDetails(cfg.IsDevelopment())

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects the note archive and applies migrations. It returns
// nil when the database is disabled.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	if !cfg.Database.Enabled {
		lgr.Info().Msg("Database disabled, notes are kept in memory")
		return nil, nil
	}

	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// SetupCache connects the Redis extraction cache. Without an address the
// returned cache never hits and enabled is false.
func SetupCache(cfg *config.Config, lgr zerolog.Logger) (extractionCache cache.ExtractionCache, enabled bool, err error) {
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		lgr.Info().Msg("Redis address not set, extraction cache disabled")
		return cache.Noop{}, false, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupPingTimeout)
	defer cancel()

	extractionCache, err = cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TTL:      helpers.ParseDuration(cfg.Redis.TTL, defaultCacheTTL),
	})
	if err != nil {
		lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to redis")
		return nil, false, err
	}
	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Extraction cache connected")
	return extractionCache, true, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, extractionCache cache.ExtractionCache, cacheEnabled bool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Database:     database,
		Cache:        extractionCache,
		CacheEnabled: cacheEnabled,
		Logger:       lgr,
	}

	var pool *pgxpool.Pool
	if database != nil {
		pool = database.Pool
	}
	deps.Repos = appRepos.NewRepositories(pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.DownloadRoots)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	networkTimeout := helpers.ParseDuration(cfg.Network.Timeout, defaultNetworkTimeout)

	var worker *extractor.Worker
	if cmd := strings.TrimSpace(cfg.Extraction.WorkerCommand); cmd != "" {
		worker = extractor.NewWorker(cmd, cfg.Extraction.WorkerArgs,
			helpers.ParseDuration(cfg.Extraction.WorkerTimeout, defaultWorkerTimeout))
		lgr.Info().Str("command", cmd).Msg("Extraction worker enabled for legacy Office files and YouTube transcripts")
	}
	var textExtractor appServices.TextExtractor = extractor.New(extractor.Options{Worker: worker})

	deps.LLM = llm.NewClient(llm.Config{
		APIKey:          cfg.LLM.APIKey,
		BaseURL:         cfg.LLM.BaseURL,
		Model:           cfg.LLM.Model,
		Timeout:         networkTimeout,
		NotesMaxTokens:  cfg.LLM.NotesMaxTokens,
		AnswerMaxTokens: cfg.LLM.AnswerMaxTokens,
		MaxInputChars:   cfg.LLM.MaxInputChars,
	})
	if !deps.LLM.Configured() {
		lgr.Warn().Msg("LLM API key not set, note generation and answers will fail until it is configured")
	}
	var model appServices.LanguageModel = deps.LLM

	if cfg.Metrics.Enabled {
		deps.Metrics = metrics.New()
		if err := deps.Metrics.TrackNotes(deps.Repos.NoteRepository.Count); err != nil {
			return nil, fmt.Errorf("failed to register note metrics: %w", err)
		}
		textExtractor = appServices.ObserveExtractor(textExtractor, deps.Metrics)
		model = appServices.ObserveModel(model, deps.Metrics)
	}

	clientFactory := appServices.NewCanvasClientFactory(canvas.Options{
		Timeout:          networkTimeout,
		PerPage:          cfg.Canvas.PerPage,
		MaxPages:         cfg.Canvas.MaxPages,
		MaxDownloadBytes: cfg.Extraction.MaxBytes,
	})

	// Initialize services
	deps.CanvasService = appServices.NewCanvasService(clientFactory)
	deps.ExtractionService = appServices.NewExtractionService(
		clientFactory,
		textExtractor,
		deps.FileStorage,
		extractionCache,
		cfg.Extraction.BatchLimit,
	)
	deps.NoteService = appServices.NewNoteService(deps.Repos.NoteRepository)
	deps.StudyService = appServices.NewStudyService(model, deps.NoteService)

	deps.Controllers = appRoutes.Controllers{
		Canvas:     appControllers.NewCanvasController(deps.CanvasService),
		Extraction: appControllers.NewExtractionController(deps.ExtractionService),
		Study:      appControllers.NewStudyController(deps.StudyService),
		Notes:      appControllers.NewNoteController(deps.NoteService),
		Health:     appControllers.NewHealthController(deps.healthChecks()),
	}

	return deps, nil
}

func (d *Dependencies) healthChecks() map[string]appControllers.HealthCheck {
	checks := map[string]appControllers.HealthCheck{
		"llm": func(context.Context) error {
			if !d.LLM.Configured() {
				return fmt.Errorf("api key not set")
			}
			return nil
		},
		"database": nil,
		"cache":    nil,
	}
	if d.Database != nil {
		checks["database"] = d.Database.Ping
	}
	if d.CacheEnabled && d.Cache != nil {
		checks["cache"] = d.Cache.Ping
	}
	return checks
}

// CORSConfig builds the gin-contrib/cors settings. A "*" origin allows every
// origin without credentials.
func CORSConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", appMiddleware.BaseURLHeader, appMiddleware.TraceHeader},
		ExposeHeaders: []string{"Content-Length", appMiddleware.TraceHeader},
		MaxAge:        12 * time.Hour,
	}

	origins := make([]string, 0, len(cfg.CORS.AllowedOrigins))
	for _, o := range cfg.CORS.AllowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" {
			corsCfg.AllowAllOrigins = true
			return corsCfg
		}
		if o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	corsCfg.AllowOrigins = origins
	corsCfg.AllowCredentials = true
	return corsCfg
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	switch {
	case gin.Mode() == gin.TestMode:
	case strings.ToLower(cfg.Server.Mode) == "production":
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.TraceMiddleware(),
		appMiddleware.RequestLogger(),
	)
	if deps.Metrics != nil {
		router.Use(appMiddleware.Metrics(deps.Metrics))
		appRoutes.SetupMetrics(router, deps.Metrics.Handler())
	}
	router.Use(
		cors.New(CORSConfig(cfg)),
		appMiddleware.CanvasCredentials(),
	)
	router.NoRoute(appMiddleware.NotFound())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers)

	return router, nil
}

package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"jobportal/internal/accounts"
	"jobportal/internal/applications"
	googleauth "jobportal/internal/auth"
	"jobportal/internal/jobs"
	"jobportal/internal/profiles"
	"jobportal/internal/queue"
	"jobportal/internal/savedjobs"
	"jobportal/internal/shared/config"
	"jobportal/internal/shared/server"
	"jobportal/internal/shared/server/middleware"
	"jobportal/internal/shared/storage/db"
	"jobportal/internal/shared/storage/object"
	localstore "jobportal/internal/shared/storage/object/local"
	s3store "jobportal/internal/shared/storage/object/s3"
	"jobportal/internal/shared/telemetry"
	"jobportal/internal/translate"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store
	Queue  queue.Client
	Redis  *redis.Client

	Accounts     *accounts.Service
	Profiles     *profiles.Service
	SavedJobs    *savedjobs.Service
	Applications *applications.Service
	Aggregator   *jobs.Aggregator
	Translate    *translate.Service
	GoogleAuth   *googleauth.GoogleService
	Janitor      *profiles.Janitor
	Limiter      *middleware.RateLimiter
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:  cfg,
		DB:      sqlDB,
		Store:   store,
		Queue:   queueClient,
		Redis:   buildRedis(ctx, cfg),
		Limiter: middleware.NewRateLimiter(nil),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       app.Config,
		Accounts:     accounts.NewHandler(app.Accounts),
		GoogleAuth:   app.GoogleAuth,
		Profiles:     profiles.NewHandler(app.Profiles),
		Jobs:         jobs.NewHandler(app.Aggregator, app.Profiles, cfg.JobsDefaultLocation),
		SavedJobs:    savedjobs.NewHandler(app.SavedJobs),
		Translate:    translate.NewHandler(app.Translate),
		Applications: applications.NewHandler(app.Applications),
		Limiter:      app.Limiter,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		opts := db.OptionsFromEnv(db.DefaultLambdaOptions())
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{
				"reason": "database connect failed",
				"error":  err.Error(),
			})
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, s3store.Config{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			KMSKeyID:        cfg.SSEKMSKeyID,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretKey,
		})
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.ApplicationsQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.ApplicationsQueueURL)
}

// buildRedis returns nil when no cache is configured or reachable; translation
// then runs uncached.
func buildRedis(ctx context.Context, cfg config.Config) *redis.Client {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil
	}
	client, err := translate.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		telemetry.Warn("bootstrap.redis_unavailable", map[string]any{"error": err.Error()})
		return nil
	}
	return client
}

func buildServices(app *App) error {
	cfg := app.Config

	var (
		accountRepo     accounts.Repo
		profileRepo     profiles.Repo
		savedRepo       savedjobs.Repo
		applicationRepo applications.Repo
	)
	if app.DB != nil {
		accountRepo = &accounts.PGRepo{DB: app.DB}
		profileRepo = &profiles.PGRepo{DB: app.DB}
		savedRepo = &savedjobs.PGRepo{DB: app.DB}
		applicationRepo = &applications.PGRepo{DB: app.DB}
	} else {
		accountRepo = accounts.NewMemoryRepo()
		profileRepo = profiles.NewMemoryRepo()
		savedRepo = savedjobs.NewMemoryRepo()
		applicationRepo = applications.NewMemoryRepo()
	}

	app.Accounts = accounts.NewService(accountRepo)
	app.Profiles = profiles.NewService(app.Store, profileRepo)
	app.SavedJobs = savedjobs.NewService(savedRepo)
	app.Applications = applications.NewService(app.Store, applicationRepo, app.Queue)

	app.Aggregator = jobs.NewAggregator(
		jobs.NewAdzuna(cfg.AdzunaAppID, cfg.AdzunaAppKey, cfg.AdzunaCountry),
		jobs.NewJSearch(cfg.RapidAPIKey),
		jobs.NewRemoteOK(),
	)

	var provider translate.Provider
	if strings.TrimSpace(cfg.TranslateAPIKey) != "" {
		provider = translate.NewGoogle(cfg.TranslateAPIKey, cfg.TranslateBaseURL)
	}
	var cache translate.Cache
	if app.Redis != nil {
		cache = translate.NewRedisCache(app.Redis, cfg.TranslateCacheTTL)
	}
	app.Translate = translate.NewService(provider, cache)

	googleCfg := googleauth.GoogleConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		UIRedirect:   cfg.UIRedirectURL,
	}
	if app.Redis != nil {
		googleCfg.States = googleauth.NewRedisStates(app.Redis)
	}
	app.GoogleAuth = googleauth.NewGoogleService(googleCfg, app.Accounts)

	janitor, err := profiles.NewJanitor(app.Profiles, cfg.GuestRetention, cfg.JanitorSchedule)
	if err != nil {
		return fmt.Errorf("guest janitor: %w", err)
	}
	app.Janitor = janitor

	return nil
}

// Close releases connections held by the app.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil && !db.IsLambdaRuntime() {
		_ = a.DB.Close()
	}
}

package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	googleauth "resume-profile/internal/auth"
	"resume-profile/internal/extract"
	"resume-profile/internal/llm"
	openai "resume-profile/internal/llm/openai"
	"resume-profile/internal/preview"
	"resume-profile/internal/profile"
	"resume-profile/internal/resumes"
	"resume-profile/internal/services/health"
	"resume-profile/internal/shared/config"
	"resume-profile/internal/shared/server"
	"resume-profile/internal/shared/storage/db"
	"resume-profile/internal/shared/storage/kv"
	"resume-profile/internal/shared/storage/object"
	localstore "resume-profile/internal/shared/storage/object/local"
	s3store "resume-profile/internal/shared/storage/object/s3"
	"resume-profile/internal/shared/telemetry"
	"resume-profile/internal/uploads"
	"resume-profile/internal/usernames"
	"resume-profile/internal/users"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Redis  *redis.Client
	Store  object.ObjectStore

	ResumesRepo   resumes.Repo
	UsernamesRepo usernames.Repo
	UsersRepo     users.Repo

	UsersService   *users.Service
	UploadsService *uploads.Service
	Sequencer      *preview.Sequencer
	GoogleAuth     *googleauth.GoogleService
	Health         *health.Service
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.StorageBackend) == "" {
		cfg.StorageBackend = config.StorageMemory
	}
	if strings.TrimSpace(cfg.LLMProvider) == "" {
		cfg.LLMProvider = "none"
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	if err := buildBackend(ctx, app); err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	if err := buildServices(app); err != nil {
		app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config: app.Config,
		Health: app.Health,
		PreviewHandler: &preview.Handler{
			Sequencer:     app.Sequencer,
			PublicBaseURL: cfg.PublicBaseURL,
		},
		ProfileHandler: &profile.Handler{
			Resumes:       app.ResumesRepo,
			Usernames:     app.UsernamesRepo,
			PDF:           profile.NewChromePDF(cfg.ChromePath),
			PublicBaseURL: cfg.PublicBaseURL,
		},
		UploadHandler: uploads.NewHandler(app.UploadsService),
		UserHandler:   users.NewHandler(app.UsersService),
		GoogleAuth:    app.GoogleAuth,
	})

	return app, nil
}

// Close releases database and Redis connections.
func (a *App) Close() error {
	var errs []error
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	return errors.Join(errs...)
}

// buildBackend connects the configured record store. Dev-like environments
// fall back to memory when the store is unreachable.
func buildBackend(ctx context.Context, app *App) error {
	cfg := app.Config
	switch cfg.StorageBackend {
	case config.StorageRedis:
		client, err := kv.Connect(ctx, kv.Options{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			return fallbackToMemory(app, "redis", err)
		}
		app.Redis = client
		app.ResumesRepo = &resumes.RedisRepo{Client: client}
		app.UsernamesRepo = &usernames.RedisRepo{Client: client}
		app.UsersRepo = &users.RedisRepo{Client: client}
		return nil

	case config.StoragePostgres:
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return fallbackToMemory(app, "postgres", err)
		}
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return fallbackToMemory(app, "postgres", fmt.Errorf("migrate: %w", err))
		}
		app.DB = sqlDB
		app.ResumesRepo = &resumes.PGRepo{DB: sqlDB}
		app.UsernamesRepo = &usernames.PGRepo{DB: sqlDB}
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
		return nil
	}

	useMemory(app)
	return nil
}

func fallbackToMemory(app *App, backend string, cause error) error {
	if !app.Config.IsDevLike() {
		return fmt.Errorf("%s backend: %w", backend, cause)
	}
	telemetry.Warn("bootstrap.backend_unavailable", map[string]any{
		"backend": backend,
		"error":   cause.Error(),
	})
	useMemory(app)
	return nil
}

func useMemory(app *App) {
	app.ResumesRepo = resumes.NewMemoryRepo()
	app.UsernamesRepo = usernames.NewMemoryRepo()
	app.UsersRepo = users.NewMemoryRepo()
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "openai" {
		return llm.PlaceholderClient{}, nil
	}
	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.llm_unavailable", map[string]any{"error": err.Error()})
			return llm.PlaceholderClient{}, nil
		}
		return nil, err
	}
	return client, nil
}

func buildServices(app *App) error {
	llmClient, err := buildLLM(app.Config)
	if err != nil {
		return err
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.UploadsService = &uploads.Service{
		Store:     app.Store,
		Resumes:   app.ResumesRepo,
		Usernames: app.UsernamesRepo,
	}
	app.Sequencer = &preview.Sequencer{
		Resumes:   app.ResumesRepo,
		Usernames: app.UsernamesRepo,
		Extractor: extract.NewScraper(app.Store),
		Generator: llm.NewResumeGenerator(llmClient),
	}
	app.GoogleAuth = googleauth.NewGoogleService(googleauth.GoogleConfig{
		ClientID:      app.Config.GoogleClientID,
		ClientSecret:  app.Config.GoogleClientSecret,
		RedirectURL:   app.Config.GoogleRedirectURL,
		UIRedirectURL: app.Config.UIRedirectURL,
		SecureCookie:  app.Config.Env == "production",
	}, app.UsersService)

	var rdb redis.UniversalClient
	if app.Redis != nil {
		rdb = app.Redis
	}
	app.Health = health.NewService(app.DB, rdb)
	return nil
}

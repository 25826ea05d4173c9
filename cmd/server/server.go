package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"decksnap/slides-api/internal/config"
	"decksnap/slides-api/internal/domain/apikey"
	"decksnap/slides-api/internal/domain/deck"
	"decksnap/slides-api/internal/domain/llm"
	"decksnap/slides-api/internal/domain/sales"
	"decksnap/slides-api/internal/domain/template"
	"decksnap/slides-api/internal/infrastructure/auth"
	"decksnap/slides-api/internal/infrastructure/database"
	"decksnap/slides-api/internal/infrastructure/llmprovider"
	"decksnap/slides-api/internal/infrastructure/logger"
	"decksnap/slides-api/internal/infrastructure/observability"
	apikeyrepo "decksnap/slides-api/internal/infrastructure/repository/apikey"
	presentationrepo "decksnap/slides-api/internal/infrastructure/repository/presentation"
	templaterepo "decksnap/slides-api/internal/infrastructure/repository/template"
	"decksnap/slides-api/internal/infrastructure/unsplash"
	"decksnap/slides-api/internal/interfaces/httpserver"
)

// Application bundles the long-running pieces of the service.
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	presentationRepository := presentationrepo.NewPostgresRepository(db)
	templateRepository := templaterepo.NewPostgresRepository(db)
	keyRepository := apikeyrepo.NewPostgresRepository(db)

	provider := llmprovider.NewClient(llmprovider.Options{
		BaseURL: cfg.OpenRouterBaseURL,
		APIKey:  cfg.OpenRouterAPIKey,
		Referer: cfg.OpenRouterReferer,
		Title:   cfg.OpenRouterTitle,
		Timeout: cfg.LLMTimeout,
	})
	gateway := llm.NewGateway(provider, cfg.OpenRouterModel, llm.GatewayPolicy(), log)
	images := unsplash.NewClient(unsplash.Options{
		AccessKey: cfg.UnsplashAccessKey,
		Timeout:   cfg.UnsplashTimeout,
	}, log)

	engine := deck.NewEngine(gateway, images, log).
		WithMaxIterations(cfg.MaxIterations).
		WithDefaultSlideCount(cfg.DefaultSlideCount)
	deckService := deck.NewService(presentationRepository, engine, log)
	salesGenerator := sales.NewGenerator(gateway, log)
	templateService := template.NewService(templateRepository, log)
	keyService := apikey.NewService(keyRepository, log)
	authValidator := auth.NewValidator(cfg, keyService, log)

	httpServer := httpserver.New(cfg, log, deckService, salesGenerator, templateService, keyService, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}

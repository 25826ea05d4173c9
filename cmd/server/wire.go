//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
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
	apikeyrepo "decksnap/slides-api/internal/infrastructure/repository/apikey"
	presentationrepo "decksnap/slides-api/internal/infrastructure/repository/presentation"
	templaterepo "decksnap/slides-api/internal/infrastructure/repository/template"
	"decksnap/slides-api/internal/infrastructure/unsplash"
	"decksnap/slides-api/internal/interfaces/httpserver"
)

var slidesSet = wire.NewSet(
	presentationrepo.NewPostgresRepository,
	wire.Bind(new(deck.Repository), new(*presentationrepo.PostgresRepository)),
	templaterepo.NewPostgresRepository,
	wire.Bind(new(template.Repository), new(*templaterepo.PostgresRepository)),
	apikeyrepo.NewPostgresRepository,
	wire.Bind(new(apikey.Repository), new(*apikeyrepo.PostgresRepository)),
	newLLMProvider,
	wire.Bind(new(llm.Provider), new(*llmprovider.Client)),
	newGateway,
	newImageResolver,
	wire.Bind(new(deck.ImageResolver), new(*unsplash.Client)),
	newEngine,
	deck.NewService,
	newSalesGenerator,
	template.NewService,
	apikey.NewService,
	auth.NewValidator,
)

// BuildApplication assembles the slides service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		slidesSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newLLMProvider(cfg *config.Config) *llmprovider.Client {
	return llmprovider.NewClient(llmprovider.Options{
		BaseURL: cfg.OpenRouterBaseURL,
		APIKey:  cfg.OpenRouterAPIKey,
		Referer: cfg.OpenRouterReferer,
		Title:   cfg.OpenRouterTitle,
		Timeout: cfg.LLMTimeout,
	})
}

func newGateway(cfg *config.Config, provider llm.Provider, log zerolog.Logger) *llm.Gateway {
	return llm.NewGateway(provider, cfg.OpenRouterModel, llm.GatewayPolicy(), log)
}

func newImageResolver(cfg *config.Config, log zerolog.Logger) *unsplash.Client {
	return unsplash.NewClient(unsplash.Options{
		AccessKey: cfg.UnsplashAccessKey,
		Timeout:   cfg.UnsplashTimeout,
	}, log)
}

func newEngine(cfg *config.Config, gateway *llm.Gateway, images deck.ImageResolver, log zerolog.Logger) *deck.Engine {
	return deck.NewEngine(gateway, images, log).
		WithMaxIterations(cfg.MaxIterations).
		WithDefaultSlideCount(cfg.DefaultSlideCount)
}

func newSalesGenerator(gateway *llm.Gateway, log zerolog.Logger) *sales.Generator {
	return sales.NewGenerator(gateway, log)
}

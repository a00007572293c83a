package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MSMikl/aviata-test/internal/app/config"
	"github.com/MSMikl/aviata-test/internal/app/dto"
	"github.com/MSMikl/aviata-test/internal/app/endpoints"
	"github.com/MSMikl/aviata-test/internal/app/repository"
	"github.com/MSMikl/aviata-test/internal/app/service"
	"github.com/MSMikl/aviata-test/internal/app/transport"
	"github.com/MSMikl/aviata-test/internal/pkg/logger"
	"github.com/MSMikl/aviata-test/internal/pkg/offerprovider"
	"github.com/MSMikl/aviata-test/internal/pkg/offerprovider/sabre"
	"github.com/MSMikl/aviata-test/internal/pkg/offerprovider/sitecity"
	"github.com/MSMikl/aviata-test/internal/pkg/search"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to mongo", slog.String("error", err.Error()))
		panic(err)
	}

	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("failed to disconnect from mongo", slog.String("error", err.Error()))
		}
	}()

	db := mongoClient.Database(cfg.Mongo.Database)
	ratesRepository := repository.NewRatesRepository(db)

	ratesService := service.NewRatesService(ratesRepository, cfg.Rates.FeedURL, cfg.Rates.RefreshInterval)

	var waitGroup sync.WaitGroup

	// Exchange rates refresher: once at start, then on the daily cadence.
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		ratesService.Run(ctx)
	}()

	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg, db)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config, db *mongo.Database) {
	endpts := makeEndpoints(ctx, &cfg, db)
	router := transport.MakeHTTPRouter(&cfg, endpts)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	if err := server.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func makeEndpoints(ctx context.Context, cfg *config.Config, db *mongo.Database) endpoints.Endpoints {
	// init redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// init validator
	if err := dto.InitValidator(); err != nil {
		slog.ErrorContext(ctx, "failed to init validator", slog.String("error", err.Error()))
		panic(err)
	}

	// init factory
	providerFactory := initProviderFactory(cfg, redisClient)

	// init service endpoint
	return endpoints.Endpoints{
		AggregatorEndpoint: makeAggregatorEndpoint(providerFactory, redisClient, db, cfg),
	}
}

// register offer providers
func initProviderFactory(cfg *config.Config, redisClient *redis.Client) *offerprovider.Factory {
	limiter := redis_rate.NewLimiter(redisClient)

	factory := offerprovider.NewFactory()
	factory.AddProvider(sitecity.ProviderName, sitecity.NewProvider(offerprovider.Config{
		SearchAPIURL: cfg.Providers.SiteCityProvider.SearchAPIURL,
		Timeout:      cfg.Providers.SiteCityProvider.Timeout,
		RateLimitRPS: cfg.Providers.SiteCityProvider.RateLimitRPS,
		Limiter:      limiter,
	}))
	factory.AddProvider(sabre.ProviderName, sabre.NewProvider(offerprovider.Config{
		SearchAPIURL: cfg.Providers.SabreProvider.SearchAPIURL,
		Timeout:      cfg.Providers.SabreProvider.Timeout,
		RateLimitRPS: cfg.Providers.SabreProvider.RateLimitRPS,
		Limiter:      limiter,
	}))

	return factory
}

func makeAggregatorEndpoint(factory *offerprovider.Factory,
	redisClient *redis.Client, db *mongo.Database, cfg *config.Config) endpoints.AggregatorEndpoint {

	// store + cache
	searchRepository := repository.NewSearchRepository(db)
	ratesRepository := repository.NewRatesRepository(db)
	resultCache := search.NewResultCache(redisClient)

	// service
	aggregatorService := service.NewAggregatorService(searchRepository, ratesRepository,
		resultCache, factory, cfg.Providers.ResultCacheTTL)

	// endpoint
	return endpoints.MakeAggregatorEndpoint(aggregatorService)
}

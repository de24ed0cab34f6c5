package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fjod/storefront/internal/cache"
	"github.com/fjod/storefront/internal/config"
	"github.com/fjod/storefront/internal/consumer"
	storefrontgrpc "github.com/fjod/storefront/internal/grpc"
	h "github.com/fjod/storefront/internal/http"
	"github.com/fjod/storefront/internal/logger"
	"github.com/fjod/storefront/internal/publisher"
	"github.com/fjod/storefront/internal/repository"
	"github.com/fjod/storefront/internal/service"
	"github.com/fjod/storefront/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const healthInterval = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	// otelhttp extracts incoming traceparent headers; records logged with the
	// request context then carry trace_id
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if err := run(cfg, log); err != nil {
		log.Error("storefront stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	grpcServer := storefrontgrpc.NewServer(log)

	catalog, closeCatalog, err := openCatalog(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeCatalog()

	sessionsOpts := []service.SessionsOption{
		service.WithSessionOptions(
			service.WithPricing(service.Pricing{
				ShippingFee:           cfg.ShippingFee,
				FreeShippingThreshold: cfg.FreeShippingThreshold,
			}),
			service.WithPaymentDelay(cfg.PaymentDelay),
		),
	}

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		log.Info("redis ping succeeded", "addr", cfg.RedisAddr)

		sessionsOpts = append(sessionsOpts, service.WithCache(cache.NewRedisCache(redisClient, cfg.SessionTTL)))
		wg.Add(1)
		go func() {
			defer wg.Done()
			grpcServer.Monitor(ctx, "storefront.redis", healthInterval, func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			})
		}()
	}

	if len(cfg.KafkaBrokers) > 0 {
		pub := publisher.NewKafkaPublisher(
			publisher.NewKafkaWriter(cfg.OrdersTopic, cfg.KafkaBrokers...),
			publisher.DefaultBreakerSettings,
			log)
		defer pub.Close()
		sessionsOpts = append(sessionsOpts, service.WithPublisher(pub))
		log.Info("publishing order events", "brokers", cfg.KafkaBrokers, "topic", cfg.OrdersTopic)

		wg.Add(1)
		go func() {
			defer wg.Done()
			grpcServer.Monitor(ctx, "storefront.kafka", healthInterval, func(ctx context.Context) error {
				conn, err := kafka.DialContext(ctx, "tcp", cfg.KafkaBrokers[0])
				if err != nil {
					return err
				}
				return conn.Close()
			})
		}()
	}

	var archive h.OrderArchive
	if cfg.DB.Enabled() {
		pgArchive, err := repository.NewPostgresOrderArchive(repository.Credentials{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			DBName:   cfg.DB.Name,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to order archive: %w", err)
		}
		defer pgArchive.Close()
		if err := pgArchive.RunMigrations(); err != nil {
			return fmt.Errorf("failed to run archive migrations: %w", err)
		}
		archive = pgArchive
		log.Info("order archive enabled", "host", cfg.DB.Host, "db", cfg.DB.Name)

		wg.Add(1)
		go func() {
			defer wg.Done()
			grpcServer.Monitor(ctx, "storefront.archive", healthInterval, pgArchive.Ping)
		}()

		if len(cfg.KafkaBrokers) > 0 {
			archiver := consumer.NewOrderArchiver(pgArchive,
				consumer.NewKafkaReader(cfg.OrdersTopic, cfg.ConsumerGroup, cfg.KafkaBrokers...),
				log)
			defer archiver.Close()
			wg.Add(1)
			go func() {
				defer wg.Done()
				archiver.Run(ctx)
			}()
		}
	}

	sessionsOpts = append(sessionsOpts, service.WithIdleTimeout(cfg.SessionIdle))
	sessions := service.NewSessions(catalog, log, sessionsOpts...)
	wg.Add(1)
	go func() {
		defer wg.Done()
		sessions.Cleanup(ctx, time.Minute)
	}()

	var limiter *h.RateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = h.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter.Cleanup(ctx, time.Minute)
		}()
	}

	router := h.NewRouter(h.RouterConfig{
		Sessions:       sessions,
		Catalog:        catalog,
		Archive:        archive,
		Logger:         log,
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimiter:    limiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(router, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on grpc port: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		log.Info("storefront starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Graceful shutdown
	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}
	stop()

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	grpcServer.Shutdown()
	wg.Wait()

	log.Info("server exited")
	return runErr
}

// openCatalog serves the catalog from SQLite when a path is configured,
// seeding it on first start, and from memory otherwise.
func openCatalog(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Catalog, func(), error) {
	if cfg.CatalogDBPath == "" {
		log.Info("serving built-in catalog")
		return store.NewSeedCatalog(), func() {}, nil
	}

	c, err := repository.NewSQLiteCatalog(cfg.CatalogDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	if err := c.RunMigrations(); err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("failed to run catalog migrations: %w", err)
	}
	if err := c.Seed(ctx, store.SeedProducts(), store.SeedCategories(), store.SeedCollections()); err != nil {
		c.Close()
		return nil, nil, fmt.Errorf("failed to seed catalog: %w", err)
	}
	log.Info("serving catalog from sqlite", "path", cfg.CatalogDBPath)
	return c, func() { c.Close() }, nil
}

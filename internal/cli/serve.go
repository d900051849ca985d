package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/Eursukkul/airline-ops/config"
	"github.com/Eursukkul/airline-ops/internal/consumer"
	"github.com/Eursukkul/airline-ops/internal/server"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/Eursukkul/airline-ops/pkg/cache"
	"github.com/Eursukkul/airline-ops/pkg/database"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/Eursukkul/airline-ops/pkg/metrics"
	"github.com/Eursukkul/airline-ops/pkg/rabbitmq"
	"github.com/spf13/cobra"
)

// ServeCmd runs the HTTP server and, when RabbitMQ is configured, the
// ground-ops consumer.
func ServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port != "" {
				cfg.ServerPort = port
			}
			log := logger.New(cfg.LogLevel)
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides SERVER_PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *logger.ZapLogger) error {
	db, err := openDB(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	m := metrics.New()
	if cfg.AdminKey == "" {
		log.Warn("ADMIN_KEY is not set, operator endpoints are closed")
	}

	// Interfaces stay nil when a backend is not configured.
	var searchCache service.SearchCache
	if cfg.RedisURL != "" {
		rdb, err := cache.New(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		defer rdb.Close()
		searchCache = rdb
		log.Info("search cache enabled", "ttl", cfg.SearchCacheTTL.String())
	}

	var publisher service.EventPublisher
	var mqConsumer *rabbitmq.Consumer
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, log)
		if err != nil {
			return fmt.Errorf("connect publisher: %w", err)
		}
		defer pub.Close()
		publisher = pub

		mqConsumer, err = rabbitmq.NewConsumer(cfg.RabbitURL, log)
		if err != nil {
			return fmt.Errorf("connect consumer: %w", err)
		}
		defer mqConsumer.Close()
	}

	svc := server.NewServices(db, cfg, publisher, searchCache, m, log)

	if mqConsumer != nil {
		msgs, err := mqConsumer.Consume()
		if err != nil {
			return err
		}
		consumerCtx, cancel := context.WithCancel(ctx)
		done := consumer.NewGroundConsumer(svc.Baggage, svc.Catalog, m, log.With("component", "ground-ops")).Start(consumerCtx, msgs)
		defer func() {
			cancel()
			<-done
		}()
	}

	e, err := server.New(svc, server.Options{
		Brand:         cfg.BrandName,
		AdminKey:      cfg.AdminKey,
		MaxPassengers: cfg.MaxPassengersPerBooking,
		Metrics:       m,
		Log:           log.With("component", "http"),
	})
	if err != nil {
		return err
	}

	return server.Run(ctx, e, ":"+cfg.ServerPort, log)
}

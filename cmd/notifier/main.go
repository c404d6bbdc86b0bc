package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/tair/littleones/kafka"
	"github.com/tair/littleones/pkg/config"
	"github.com/tair/littleones/pkg/logger"
	"github.com/tair/littleones/pkg/tracing"
)

func main() {
	cfg := config.Load()
	cfg.ServiceName = "storefront-notifier"

	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Fatal().Msg("KAFKA_BROKERS is required")
	}

	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(cfg.ServiceName, cfg.JaegerEndpoint)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tracing.Shutdown(ctx, tp); err != nil {
					logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
				}
			}()
		}
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, kafka.Topics)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka consumer")
	}
	defer consumer.Close()

	registerHandlers(consumer)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start Kafka consumer")
	}

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down notifier...")
}

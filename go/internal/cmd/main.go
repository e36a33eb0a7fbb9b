package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/teamroll/go/internal/gateway"
	"github.com/mcdev12/teamroll/go/internal/outbox"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	database, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup database")
	}
	defer database.Close()

	services := setupServices(database)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Outbox relay: run_outbox -> JetStream.
	publisherCfg := outbox.DefaultJetStreamConfig()
	if cfg.Nats.URL != "" {
		publisherCfg.URL = cfg.Nats.URL
	}
	if cfg.Nats.StreamName != "" {
		publisherCfg.StreamName = cfg.Nats.StreamName
	}
	publisher, err := outbox.NewJetStreamPublisher(publisherCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create JetStream publisher")
	}
	defer publisher.Close()

	relayCfg := outbox.DefaultConfig()
	if cfg.Outbox.PollIntervalSeconds > 0 {
		relayCfg.PollInterval = time.Duration(cfg.Outbox.PollIntervalSeconds) * time.Second
	}
	if cfg.Outbox.BatchSize > 0 {
		relayCfg.BatchSize = cfg.Outbox.BatchSize
	}
	relay := outbox.NewWorker(services.OutboxRepo, publisher, relayCfg, clockwork.NewRealClock())
	if err := relay.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start outbox relay")
	}
	defer relay.Stop()

	// Gateway: JetStream -> WebSocket clients.
	go services.ConnectionManager.Start(ctx)

	consumerCfg := gateway.DefaultConsumerConfig()
	if cfg.Nats.URL != "" {
		consumerCfg.URL = cfg.Nats.URL
	}
	if cfg.Nats.StreamName != "" {
		consumerCfg.StreamName = cfg.Nats.StreamName
	}
	consumer, err := gateway.NewEventConsumer(services.ConnectionManager, consumerCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event consumer")
	}
	defer consumer.Stop()
	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("event consumer stopped")
		}
	}()

	server := setupServer(cfg, services)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	cancel()
}

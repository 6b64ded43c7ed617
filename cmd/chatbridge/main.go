package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/storeops/chatbridge"
	"github.com/storeops/chatbridge/adapters"
	"github.com/storeops/chatbridge/bot"
	"github.com/storeops/chatbridge/cache"
	"github.com/storeops/chatbridge/commerce"
	"github.com/storeops/chatbridge/format"
	"github.com/storeops/chatbridge/internal/appconfig"
	"github.com/storeops/chatbridge/summary"
	"github.com/storeops/chatbridge/tracking"
	"github.com/storeops/chatbridge/webhook"
	"github.com/storeops/chatbridge/whatsapp"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}
	if cfg.Debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	store := cache.NewRedisStore(rdb)
	if err := store.Ping(ctx); err != nil {
		// Cache failures are non-fatal by design; the clients fall back to
		// direct fetches until Redis comes back.
		log.Warn().Err(err).Msg("redis unreachable at startup")
	}

	bridge := chatbridge.NewBridge(log)
	bridge.RegisterProvider(commerce.ProviderName,
		adapters.NewCommerceAdapter(cfg.Commerce.BaseURL, cfg.Commerce.StoreID, cfg.Commerce.AccessToken, cfg.Commerce.UserAgent, cfg.Commerce.Timeout),
		&chatbridge.ProviderConfig{
			MaxAttempts:       4,
			BaseBackoff:       time.Second,
			MaxBackoff:        30 * time.Second,
			RequestsPerSecond: 2,
			Burst:             10,
			Timeout:           cfg.Commerce.Timeout,
		})
	bridge.RegisterProvider(tracking.ProviderName,
		adapters.NewTrackingAdapter(cfg.Tracking.BaseURL, cfg.Tracking.APIKey, cfg.Tracking.Timeout),
		&chatbridge.ProviderConfig{
			MaxAttempts:       3,
			BaseBackoff:       time.Second,
			MaxBackoff:        30 * time.Second,
			RequestsPerSecond: 3,
			Burst:             3,
			Timeout:           cfg.Tracking.Timeout,
		})
	bridge.RegisterProvider(whatsapp.ProviderName,
		adapters.NewWhatsAppAdapter(cfg.WhatsApp.BaseURL, cfg.WhatsApp.Token, cfg.WhatsApp.ConnectionKey, cfg.WhatsApp.Timeout),
		&chatbridge.ProviderConfig{
			MaxAttempts:       3,
			BaseBackoff:       2 * time.Second,
			MaxBackoff:        30 * time.Second,
			RequestsPerSecond: 1,
			Burst:             3,
			Timeout:           cfg.WhatsApp.Timeout,
		})

	orders := commerce.NewClient(bridge, store, commerce.Config{}, log)
	tracks := tracking.NewClient(bridge, store, tracking.Config{}, log)
	messenger := whatsapp.NewClient(bridge, whatsapp.Config{MessageDelay: cfg.WhatsApp.MessageDelay}, log)

	assistant := bot.New(orders, tracks, format.New(log), log)
	dispatcher := webhook.NewDispatcher(messenger, log)
	dispatcher.On(webhook.KindText, webhook.HandlerFunc(assistant.HandleText))
	dispatcher.On(webhook.KindImage, bot.Acknowledge("Recebemos sua imagem! Um atendente vai analisá-la em breve. 🖼️"))
	dispatcher.On(webhook.KindAudio, bot.Acknowledge("Recebemos seu áudio! Um atendente vai ouvi-lo em breve. 🎧"))
	dispatcher.On(webhook.KindDocument, bot.Acknowledge("Recebemos seu documento! Um atendente vai conferi-lo em breve. 📄"))

	digest := summary.NewService(tracks, messenger, cfg.Summary.Recipient, log)
	cronRunner, err := summary.Schedule(digest, cfg.Summary.CronSpec, cfg.Summary.Timezone, log)
	if err != nil {
		log.Fatal().Err(err).Msg("scheduler setup failed")
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	router := webhook.NewRouter(dispatcher, log, map[string]webhook.HealthChecker{
		"redis": store.Ping,
	})
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close failed")
	}
}

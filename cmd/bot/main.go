package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/portal_bot/internal/apiclient"
	"github.com/Freeeeeet/portal_bot/internal/app"
	"github.com/Freeeeeet/portal_bot/internal/config"
	"github.com/Freeeeeet/portal_bot/internal/controller"
	"github.com/Freeeeeet/portal_bot/internal/model"
	"github.com/Freeeeeet/portal_bot/internal/service"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting portal bot",
		zap.String("environment", cfg.Environment),
		zap.String("portal_api", cfg.PortalAPIURL))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	api := apiclient.New(cfg.PortalAPIURL, cfg.HTTPTimeout, logger)
	scheduleService := service.NewScheduleService(api, logger)
	bookingService := service.NewBookingService(api, logger, nil)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Гейт создаётся до контроллера, а уведомляет через него:
	// замыкание разрывает циклическую зависимость
	var botController *controller.BotController
	gate := app.NewGateWatcher(func(ctx context.Context, chatID int64, sess model.Session) {
		botController.NotifySessionLive(ctx, chatID, sess)
	}, logger)

	botController = controller.NewBotController(b, scheduleService, bookingService, gate, logger)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	gate.Start(ctx)
	defer gate.Stop()

	logger.Info("✅ Bot is running")
	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot shut down gracefully")
}

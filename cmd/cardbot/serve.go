package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardbot/internal/handler"
	"cardbot/internal/middleware"
	"cardbot/internal/repository/postgres"
	"cardbot/internal/service"
	"cardbot/internal/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const cleanupInterval = time.Hour

func newServeCommand(getLogger func() *zap.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot with long polling",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), getLogger())
		},
	}
}

func serve(ctx context.Context, logger *zap.Logger) error {
	logger.Info("Starting cardbot")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, db, err := openDatabase(ctx, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := cfg.RequireBotToken(); err != nil {
		return err
	}

	userRepo := postgres.NewUserRepo(db)
	wordRepo := postgres.NewWordRepo(db)

	sessions := session.NewStore()

	userService := service.NewUserService(userRepo)
	wordService := service.NewWordService(wordRepo, logger)
	quizService := service.NewQuizService(wordService, sessions, logger)
	cleanupService := service.NewCleanupService(sessions, cfg.SessionTTL, logger)
	router := service.NewRouter(wordService, quizService, sessions, logger)

	bot, err := tele.NewBot(tele.Settings{
		Token:       cfg.BotToken,
		Poller:      &tele.LongPoller{Timeout: cfg.PollTimeout},
		Synchronous: true,
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			logger.Error("Handler error", fields...)
		},
	})
	if err != nil {
		return err
	}

	logger.Info("Telegram bot initialized")

	bot.Use(middleware.EnsureUser(userService, logger))

	h := handler.NewHandler(bot, router, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	go runCleanupJob(ctx, cleanupService, logger)

	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	<-ctx.Done()

	logger.Info("Shutdown signal received, stopping bot...")
	bot.Stop()
	logger.Info("Bot stopped gracefully")

	return nil
}

// runCleanupJob evicts idle sessions until ctx is done
func runCleanupJob(ctx context.Context, cleanup *service.CleanupService, logger *zap.Logger) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			cleanup.CleanupIdleSessions()
		}
	}
}

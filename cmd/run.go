package cmd

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/dialog"
	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/health"
	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/logger"
	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/records"
	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/secrets"
	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/telegram"
	"github.com/maltsev-d/Telegram-HR-bot-ru/internal/vacancy"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot: long-poll Telegram and serve the liveness endpoint",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func run() {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hr-bot", zap.String("version", version))

	token, err := secrets.Load(secrets.Source{
		Name:  "bot token",
		Value: config.Token,
		File:  config.TokenFile,
		Env:   "BOT_TOKEN",
	})
	if err != nil {
		logger.Fatal(
			"loading bot token",
			zap.Error(err),
			zap.String("hint", "set the BOT_TOKEN environment variable or the 'token-file' key in the configuration file"),
		)
	}

	store := records.New(config.DataFile)
	if err := store.EnsureInitialized(); err != nil {
		logger.Fatal("initializing the records store", zap.Error(err))
	}

	catalog, err := vacancy.Load(config.VacanciesFile)
	if err != nil {
		logger.Fatal("loading the vacancy catalog", zap.Error(err))
	}

	logger.Info("vacancy catalog loaded", zap.Int("count", catalog.Len()))

	transport, err := telegram.New(token, logger)
	if err != nil {
		logger.Fatal("connecting to telegram", zap.Error(err))
	}

	engine := dialog.New(store, catalog, transport, logger)

	go func() {
		if err := health.Serve(config.Listen, logger); err != nil {
			logger.Error("liveness responder stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := transport.Run(ctx, engine); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("polling telegram", zap.Error(err))
	}

	logger.Info("exiting", zap.String("reason", "shutdown signal received"))
}

package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/imanshadilshan/work-ora/internal/config"
	"github.com/imanshadilshan/work-ora/internal/mail"
	"github.com/imanshadilshan/work-ora/internal/relay"
)

func main() {
	cfg, err := config.LoadMailer()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	var logger *zap.Logger
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	relay.EnsureMailTopic(ctx, cfg, logger)

	reader := relay.NewMailReader(cfg)
	defer reader.Close()

	consumer := mail.NewConsumer(reader, mail.NewSMTPSender(cfg), logger)

	logger.Info("mail consumer started",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.MailTopic),
		zap.String("group", cfg.MailGroupID),
	)

	if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal("consumer stopped", zap.Error(err))
	}
	logger.Info("mail consumer stopped")
}

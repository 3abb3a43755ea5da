package relay

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/imanshadilshan/work-ora/internal/config"
)

// NewMailWriter builds the producer for the send-mail topic.
func NewMailWriter(cfg config.Config) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.MailTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
}

// EnsureMailTopic creates the send-mail topic when missing. Broker
// unavailability is logged, not fatal; publishing stays best-effort.
func EnsureMailTopic(ctx context.Context, cfg config.Config, logger *zap.Logger) {
	if err := ensureTopic(ctx, cfg); err != nil {
		logger.Warn("ensure mail topic failed", zap.String("topic", cfg.MailTopic), zap.Error(err))
		return
	}
	logger.Info("mail topic ready", zap.String("topic", cfg.MailTopic))
}

func ensureTopic(ctx context.Context, cfg config.Config) error {
	if len(cfg.KafkaBrokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}

	conn, err := kafka.DialContext(ctx, "tcp", cfg.KafkaBrokers[0])
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("find controller: %w", err)
	}

	controllerConn, err := kafka.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.MailTopic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		return fmt.Errorf("create topic: %w", err)
	}
	return nil
}

// NewMailReader builds the consumer used by the mailer binary.
func NewMailReader(cfg config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.KafkaBrokers,
		GroupID: cfg.MailGroupID,
		Topic:   cfg.MailTopic,
	})
}

package mail

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/imanshadilshan/work-ora/internal/relay"
)

// Consumer reads mail envelopes from the send-mail topic and hands
// them to a Sender. Failures are logged, never retried.
type Consumer struct {
	reader *kafka.Reader
	sender Sender
	logger *zap.Logger
}

// NewConsumer wires the consumer.
func NewConsumer(reader *kafka.Reader, sender Sender, logger *zap.Logger) *Consumer {
	return &Consumer{reader: reader, sender: sender, logger: logger}
}

// Run consumes until ctx is done.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("mail consumer started", zap.String("topic", c.reader.Config().Topic))

	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		c.handle(m)

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Warn("commit mail offset failed", zap.Error(err))
		}
	}
}

func (c *Consumer) handle(m kafka.Message) {
	var msg relay.Envelope
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		c.logger.Warn("drop malformed mail envelope", zap.Error(err))
		return
	}
	if msg.To == "" {
		c.logger.Warn("drop mail envelope without recipient")
		return
	}

	if err := c.sender.Send(msg); err != nil {
		c.logger.Error("failed to send email", zap.String("to", msg.To), zap.Error(err))
		return
	}
	c.logger.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
}

package relay

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// mailPublisher is the slice of kafka.Writer the dispatcher needs.
type mailPublisher interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Outbox is a bounded, best-effort mail queue. Requests push envelopes
// onto a Redis list and return immediately; a dispatcher goroutine
// drains the list into Kafka. Overflow and publish failures drop the
// envelope with a log line; delivery is at-most-once end to end.
type Outbox struct {
	client   redis.UniversalClient
	writer   mailPublisher
	key      string
	capacity int64
	logger   *zap.Logger
}

var _ Notifier = (*Outbox)(nil)

// NewOutbox constructs the outbox on the given Redis list key.
func NewOutbox(client redis.UniversalClient, writer mailPublisher, key string, capacity int, logger *zap.Logger) *Outbox {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Outbox{
		client:   client,
		writer:   writer,
		key:      key,
		capacity: int64(capacity),
		logger:   logger,
	}
}

// Enqueue pushes the envelope onto the outbox list. Failures never
// reach the caller.
func (o *Outbox) Enqueue(ctx context.Context, msg Envelope) {
	payload, err := json.Marshal(msg)
	if err != nil {
		o.logger.Error("encode mail envelope", zap.Error(err))
		return
	}

	size, err := o.client.LLen(ctx, o.key).Result()
	if err != nil {
		o.logger.Warn("outbox unavailable, dropping mail", zap.String("to", msg.To), zap.Error(err))
		return
	}
	if size >= o.capacity {
		o.logger.Warn("outbox full, dropping mail", zap.String("to", msg.To), zap.Int64("size", size))
		return
	}

	if err := o.client.LPush(ctx, o.key, payload).Err(); err != nil {
		o.logger.Warn("outbox push failed, dropping mail", zap.String("to", msg.To), zap.Error(err))
	}
}

// Run drains the outbox into Kafka until ctx is done.
func (o *Outbox) Run(ctx context.Context) {
	for {
		values, err := o.client.BRPop(ctx, time.Second, o.key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			o.logger.Warn("outbox pop failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}
		if len(values) != 2 {
			continue
		}

		if err := o.writer.WriteMessages(ctx, kafka.Message{Value: []byte(values[1])}); err != nil {
			// At-most-once: the envelope is gone.
			o.logger.Warn("publish mail envelope failed", zap.Error(err))
		}
	}
}

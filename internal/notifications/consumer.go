package notifications

import (
	"context"
	"fmt"
	"time"

	"cinereserve/pkg/logger"

	"github.com/IBM/sarama"
)

// Consumer reads reservation events from Kafka and hands them to a handler.
type Consumer interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one reservation event. Returning an error causes
// the message to be logged and skipped; offsets are committed regardless.
type EventHandler func(ctx context.Context, event *ReservationEvent) error

// AuditLogHandler records each reservation event to the application log.
func AuditLogHandler(log *logger.Logger) EventHandler {
	return func(_ context.Context, event *ReservationEvent) error {
		log.Info("reservation event",
			"event_id", event.ID.String(),
			"type", string(event.Type),
			"reservation_id", event.ReservationID.String(),
			"showtime_id", event.ShowtimeID.String(),
			"user_email", event.UserEmail,
			"seat_count", event.SeatCount,
			"amount_cents", event.AmountCents,
		)
		return nil
	}
}

type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeoutMs int
	HeartbeatMs      int
	OffsetOldest     bool
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "cinereserve-reservation-workers",
		Topics:           []string{"reservation-events"},
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		OffsetOldest:     false,
	}
}

type kafkaConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	handler       EventHandler
	log           *logger.Logger
	cancel        context.CancelFunc
}

func NewKafkaConsumer(config *ConsumerConfig, handler EventHandler, log *logger.Logger) (Consumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &kafkaConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		handler:       handler,
		log:           log,
	}, nil
}

func (kc *kafkaConsumer) Start(ctx context.Context) error {
	ctx, kc.cancel = context.WithCancel(ctx)

	go func() {
		for err := range kc.consumerGroup.Errors() {
			kc.log.Error("consumer group error", "error", err.Error())
		}
	}()

	go func() {
		handler := &consumerGroupHandler{handler: kc.handler, log: kc.log}
		for {
			if err := kc.consumerGroup.Consume(ctx, kc.config.Topics, handler); err != nil {
				kc.log.Error("consumer session ended", "error", err.Error())
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	kc.log.Info("reservation event consumer started", "topics", kc.config.Topics, "group", kc.config.GroupID)
	return nil
}

func (kc *kafkaConsumer) Stop() error {
	if kc.cancel != nil {
		kc.cancel()
	}
	return kc.consumerGroup.Close()
}

type consumerGroupHandler struct {
	handler EventHandler
	log     *logger.Logger
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		event, err := FromJSON(message.Value)
		if err != nil {
			h.log.Error("failed to decode reservation event",
				"topic", message.Topic,
				"partition", message.Partition,
				"offset", message.Offset,
				"error", err.Error(),
			)
			session.MarkMessage(message, "")
			continue
		}

		if err := h.handler(session.Context(), event); err != nil {
			h.log.Error("failed to process reservation event",
				"event_id", event.ID.String(),
				"type", string(event.Type),
				"error", err.Error(),
			)
		}

		session.MarkMessage(message, "")
	}
	return nil
}

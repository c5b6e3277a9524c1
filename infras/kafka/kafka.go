package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fixmycondo/config"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// Message is a domain event keyed by the aggregate id so events of one aggregate stay ordered.
type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(m.Key),
		Value: jsonValue,
	}, nil
}

// Decode unmarshals the JSON payload of msg into T.
func Decode[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	return value, nil
}

// Handler processes one message. A returned error leaves the offset uncommitted.
type Handler func(ctx context.Context, msg kafkaGo.Message) error

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Consume(ctx context.Context, consumerGroup, topic string, handler Handler) error
	Close() error
}

type kafkaClientImpl struct {
	config    *config.Config
	dialer    *kafkaGo.Dialer
	transport *kafkaGo.Transport

	mu      sync.Mutex
	writers map[string]*kafkaGo.Writer
}

func New(config *config.Config) Client {
	var mechanism sasl.Mechanism
	if config.Kafka.SASL.Username != "" {
		mechanism = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Bool("enabled", config.Kafka.Enable).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config: config,
		dialer: &kafkaGo.Dialer{
			DualStack:     true,
			Timeout:       10 * time.Second,
			SASLMechanism: mechanism,
		},
		transport: &kafkaGo.Transport{SASL: mechanism},
		writers:   map[string]*kafkaGo.Writer{},
	}
}

// writer returns the shared writer of topic, creating it on first use.
func (k *kafkaClientImpl) writer(topic string) *kafkaGo.Writer {
	k.mu.Lock()
	defer k.mu.Unlock()

	if w, ok := k.writers[topic]; ok {
		return w
	}

	w := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(k.config.Kafka.Brokers...),
		Topic:                  topic,
		Transport:              k.transport,
		Balancer:               &kafkaGo.Hash{},
		RequiredAcks:           kafkaGo.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	k.writers[topic] = w

	return w
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	if topic == "" {
		return errors.New("kafka topic is empty")
	}

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", topic).Str("key", message.Key).Msg("Failed to encode Kafka message")

			return err
		}

		msgs = append(msgs, msg)
	}

	if err = k.writer(topic).WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", topic).Int("count", len(msgs)).Msg("Sent messages to Kafka")

	return nil
}

// Consume reads topic until ctx is cancelled. Offsets are committed only after handler succeeds,
// so a message whose handler fails is redelivered after a rebalance or restart.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler Handler) error {
	if topic == "" {
		return errors.New("kafka topic is empty")
	}

	groupID := k.config.Kafka.ConsumerGroup
	if consumerGroup != "" {
		groupID = consumerGroup
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     groupID,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close Kafka reader")
		}
	}()

	log.Info().Str("topic", topic).Str("group", groupID).Msg("Kafka consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("topic", topic).Msg("Kafka consumer stopped")

				return nil
			}

			log.Error().Err(err).Str("topic", topic).Msg("Failed to fetch message from Kafka")

			continue
		}

		if err := handler(ctx, msg); err != nil {
			log.Error().Err(err).Str("topic", topic).Str("key", string(msg.Key)).Int64("offset", msg.Offset).Msg("Failed to handle Kafka message")

			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("Failed to commit Kafka offset")
		}
	}
}

func (k *kafkaClientImpl) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	var errs []error

	for topic, w := range k.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close writer %s: %w", topic, err))
		}

		delete(k.writers, topic)
	}

	return errors.Join(errs...)
}

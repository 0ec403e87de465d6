package kafkaout

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"drinkstand/internal/core/domain"

	"github.com/segmentio/kafka-go"
)

type PublisherConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
}

// Publisher writes one message per saved order, keyed by order number.
type Publisher struct {
	writer  *kafka.Writer
	timeout time.Duration
}

func NewPublisher(cfg PublisherConfig) *Publisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Publisher{writer: w, timeout: timeout}
}

func (p *Publisher) Publish(ctx context.Context, order domain.Order) error {
	value, err := EncodeOrder(order)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(order.Number)),
		Value: value,
		Time:  order.Date,
	})
	if err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Vinayyy19/Furnista/config"
	"github.com/Vinayyy19/Furnista/models"
	awspkg "github.com/Vinayyy19/Furnista/pkg/aws"
	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/segmentio/kafka-go"
)

// Publisher emits domain events. Callers treat failures as best effort.
type Publisher interface {
	Publish(ctx context.Context, event models.Event) error
	Close() error
}

func attributes(event models.Event) map[string]string {
	return map[string]string{"event_type": event.Type}
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.Event) error { return nil }
func (NoopPublisher) Close() error                                { return nil }

type SNSPublisher struct {
	client   awspkg.SNSPublisher
	topicArn string
}

func NewSNSPublisher(client awspkg.SNSPublisher, topicArn string) *SNSPublisher {
	return &SNSPublisher{client: client, topicArn: topicArn}
}

func (p *SNSPublisher) Publish(ctx context.Context, event models.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}
	return p.client.Publish(ctx, p.topicArn, data, attributes(event))
}

func (p *SNSPublisher) Close() error { return nil }

// MessageSender is satisfied by the shared SQS sender.
type MessageSender interface {
	SendMessage(ctx context.Context, body string, attributes map[string]string) error
}

type SQSPublisher struct {
	sender MessageSender
}

func NewSQSPublisher(sender MessageSender) *SQSPublisher {
	return &SQSPublisher{sender: sender}
}

func (p *SQSPublisher) Publish(ctx context.Context, event models.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}
	return p.sender.SendMessage(ctx, string(data), attributes(event))
}

func (p *SQSPublisher) Close() error { return nil }

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish keys the message by the entity id so all events of one order land
// on the same partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event models.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send Kafka message: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// New selects the publisher for backend. awsCfg is only read by the sns and
// sqs backends.
func New(backend string, cfg *config.Config, awsCfg *sdkaws.Config) (Publisher, error) {
	switch backend {
	case "", config.EventsNone:
		return NoopPublisher{}, nil
	case config.EventsSNS:
		if awsCfg == nil {
			return nil, fmt.Errorf("sns events need AWS config")
		}
		return NewSNSPublisher(awspkg.NewSNSClient(*awsCfg), cfg.SNSTopicArn), nil
	case config.EventsSQS:
		if awsCfg == nil {
			return nil, fmt.Errorf("sqs events need AWS config")
		}
		return NewSQSPublisher(awspkg.NewSQSSender(*awsCfg, cfg.SQSQueueURL)), nil
	case config.EventsKafka:
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", backend)
	}
}

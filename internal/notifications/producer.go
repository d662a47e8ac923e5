package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

// TicketProducer interface defines the contract for publishing ticket events
type TicketProducer interface {
	PublishTicketEvent(ctx context.Context, event *TicketEvent) error
	Close() error
}

// KafkaProducerConfig contains configuration for the Kafka ticket producer
type KafkaProducerConfig struct {
	Brokers          []string
	TicketTopic      string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig() *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          []string{"localhost:9092"},
		TicketTopic:      "ticket-events",
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaTicketProducer handles publishing ticket events to Kafka
type KafkaTicketProducer struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaTicketProducer creates a new Kafka ticket producer
func NewKafkaTicketProducer(config *KafkaProducerConfig) (TicketProducer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one user's events on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaTicketProducer{
		producer: producer,
		config:   config,
	}, nil
}

// PublishTicketEvent publishes a single ticket event to Kafka
func (ktp *KafkaTicketProducer) PublishTicketEvent(ctx context.Context, event *TicketEvent) error {
	event.Status = TicketStatusQueued
	event.UpdatedAt = time.Now()

	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal ticket event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     ktp.config.TicketTopic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: event.CreatedAt,
	}

	partition, offset, err := ktp.producer.SendMessage(message)
	if err != nil {
		event.MarkFailed(err)
		return fmt.Errorf("failed to send ticket event to Kafka: %w", err)
	}

	log.Printf("Ticket event published - Topic: %s, Partition: %d, Offset: %d, Booking: %s",
		ktp.config.TicketTopic, partition, offset, event.BookingRef)

	return nil
}

// Close shuts down the producer
func (ktp *KafkaTicketProducer) Close() error {
	return ktp.producer.Close()
}

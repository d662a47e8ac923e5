package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/IBM/sarama"
)

// TicketSender delivers a committed ticket to the user. The default
// implementation just logs; a real deployment plugs in email or SMS here.
type TicketSender interface {
	SendTicket(ctx context.Context, event *TicketEvent) error
}

type TicketConsumer interface {
	StartConsumers(ctx context.Context, numWorkers int) error
	Stop() error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeoutMs     int
	HeartbeatMs          int
	RetryBackoffMs       int
	MaxProcessingTime    time.Duration
	AutoCommit           bool
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "cinebook-ticket-workers",
		Topics:               []string{"ticket-events"},
		SessionTimeoutMs:     30000,
		HeartbeatMs:          3000,
		RetryBackoffMs:       100,
		MaxProcessingTime:    5 * time.Minute,
		AutoCommit:           true,
		OffsetOldest:         false,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

type KafkaTicketConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	sender        TicketSender
	topics        []string
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewKafkaTicketConsumer(config *ConsumerConfig, sender TicketSender) (TicketConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Retry.Backoff = time.Duration(config.RetryBackoffMs) * time.Millisecond
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	if config.AutoCommit {
		saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
		saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &KafkaTicketConsumer{
		consumerGroup: consumerGroup,
		config:        config,
		sender:        sender,
		topics:        config.Topics,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func (ktc *KafkaTicketConsumer) StartConsumers(ctx context.Context, numWorkers int) error {
	log.Printf("Starting %d ticket consumer workers for topics: %v", numWorkers, ktc.topics)

	go ktc.handleErrors()

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			ktc.runWorker(ctx, workerID)
		}(i)
	}

	return nil
}

func (ktc *KafkaTicketConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &ticketGroupHandler{
		consumer: ktc,
		workerID: workerID,
		sender:   ktc.sender,
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("Ticket worker %d shutting down", workerID)
			return
		default:
			err := ktc.consumerGroup.Consume(ctx, ktc.topics, handler)
			if err != nil {
				log.Printf("Ticket worker %d error consuming messages: %v", workerID, err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (ktc *KafkaTicketConsumer) handleErrors() {
	for err := range ktc.consumerGroup.Errors() {
		log.Printf("Ticket consumer group error: %v", err)
	}
}

func (ktc *KafkaTicketConsumer) Stop() error {
	ktc.cancel()

	if err := ktc.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}

	return nil
}

type ticketGroupHandler struct {
	consumer *KafkaTicketConsumer
	workerID int
	sender   TicketSender
}

func (h *ticketGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *ticketGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *ticketGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			err := h.processMessage(session.Context(), message)
			if err != nil {
				log.Printf("Ticket worker %d: error processing message: %v", h.workerID, err)
			} else {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *ticketGroupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event TicketEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal ticket event: %w", err)
	}

	event.Status = TicketStatusSending

	if err := h.executeWithRetry(ctx, &event); err != nil {
		event.MarkFailed(err)
		return err
	}

	event.MarkSent()
	return nil
}

func (h *ticketGroupHandler) executeWithRetry(ctx context.Context, event *TicketEvent) error {
	maxRetries := h.consumer.config.MaxRetries
	backoff := h.consumer.config.RetryBackoffDuration

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := h.sender.SendTicket(ctx, event)
		if err == nil {
			return nil
		}

		if attempt == maxRetries {
			return err
		}

		// Exponential backoff
		delay := backoff * time.Duration(1<<attempt)

		select {
		case <-time.After(delay):
			continue
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

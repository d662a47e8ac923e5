package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cinebook/internal/bookings"
	"cinebook/internal/shared/config"
	"cinebook/pkg/logger"
)

// Service ties the producer and consumer together and adapts booking
// events onto the ticket topic. It satisfies bookings.TicketNotifier.
type Service struct {
	producer TicketProducer
	consumer TicketConsumer
	log      *logger.Logger
}

func NewService(cfg *config.Config, log *logger.Logger) (*Service, error) {
	producerCfg := DefaultKafkaProducerConfig()
	producerCfg.Brokers = cfg.Kafka.Brokers
	producerCfg.TicketTopic = cfg.Kafka.TicketTopic

	producer, err := NewKafkaTicketProducer(producerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket producer: %w", err)
	}

	consumerCfg := DefaultConsumerConfig()
	consumerCfg.Brokers = cfg.Kafka.Brokers
	consumerCfg.GroupID = cfg.Kafka.ConsumerGroup
	consumerCfg.Topics = []string{cfg.Kafka.TicketTopic}

	consumer, err := NewKafkaTicketConsumer(consumerCfg, NewLogTicketSender(log))
	if err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to create ticket consumer: %w", err)
	}

	return &Service{
		producer: producer,
		consumer: consumer,
		log:      log,
	}, nil
}

// Start launches the consumer workers.
func (s *Service) Start(ctx context.Context, numWorkers int) error {
	return s.consumer.StartConsumers(ctx, numWorkers)
}

// Stop shuts down the producer and consumer.
func (s *Service) Stop() error {
	if err := s.consumer.Stop(); err != nil {
		s.log.WithError(err).Error("failed to stop ticket consumer")
	}
	return s.producer.Close()
}

// NotifyTicketBooked publishes a ticket event for a committed booking.
func (s *Service) NotifyTicketBooked(ctx context.Context, booking *bookings.Booking) error {
	event := &TicketEvent{
		ID:          uuid.New(),
		BookingID:   booking.ID,
		BookingRef:  booking.BookingRef,
		UserID:      booking.UserID,
		ShowtimeID:  booking.ShowtimeID,
		Seats:       booking.SeatLabels(),
		TicketCount: booking.TicketCount,
		Status:      TicketStatusQueued,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	return s.producer.PublishTicketEvent(ctx, event)
}

// logTicketSender writes tickets to the log. Stands in for a real email or
// SMS gateway.
type logTicketSender struct {
	log *logger.Logger
}

func NewLogTicketSender(log *logger.Logger) TicketSender {
	return &logTicketSender{log: log}
}

func (l *logTicketSender) SendTicket(ctx context.Context, event *TicketEvent) error {
	l.log.InfoWithContext(ctx, "Ticket Delivered", map[string]interface{}{
		"booking_ref":  event.BookingRef,
		"user_id":      event.UserID.String(),
		"showtime_id":  event.ShowtimeID.String(),
		"seats":        event.Seats,
		"ticket_count": event.TicketCount,
	})
	return nil
}

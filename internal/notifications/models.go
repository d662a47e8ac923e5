package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TicketEventStatus tracks the lifecycle of a ticket event.
type TicketEventStatus string

const (
	TicketStatusQueued  TicketEventStatus = "QUEUED"
	TicketStatusSending TicketEventStatus = "SENDING"
	TicketStatusSent    TicketEventStatus = "SENT"
	TicketStatusFailed  TicketEventStatus = "FAILED"
)

// TicketEvent is the message published after a booking commits. Consumers
// turn it into a ticket delivery (email, SMS, push).
type TicketEvent struct {
	ID          uuid.UUID         `json:"id"`
	BookingID   uuid.UUID         `json:"booking_id"`
	BookingRef  string            `json:"booking_ref"`
	UserID      uuid.UUID         `json:"user_id"`
	ShowtimeID  uuid.UUID         `json:"showtime_id"`
	Seats       []string          `json:"seats"`
	TicketCount int               `json:"ticket_count"`
	Status      TicketEventStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	LastError   *string           `json:"last_error,omitempty"`
}

// ToJSON serializes the event for the wire.
func (e *TicketEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey routes all events of one user to the same partition so
// their tickets arrive in booking order.
func (e *TicketEvent) GetPartitionKey() string {
	return e.UserID.String()
}

// MarkFailed records a delivery failure on the event.
func (e *TicketEvent) MarkFailed(err error) {
	e.Status = TicketStatusFailed
	msg := err.Error()
	e.LastError = &msg
	e.UpdatedAt = time.Now()
}

// MarkSent records successful delivery.
func (e *TicketEvent) MarkSent() {
	e.Status = TicketStatusSent
	e.UpdatedAt = time.Now()
}

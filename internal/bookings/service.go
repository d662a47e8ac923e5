package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"cinebook/internal/seatmap"
	"cinebook/internal/showtimes"
	"cinebook/pkg/cache"
	"cinebook/pkg/logger"
)

// TicketNotifier publishes a ticket event after a booking commits. Delivery
// is best effort; a publish failure never fails the booking.
type TicketNotifier interface {
	NotifyTicketBooked(ctx context.Context, booking *Booking) error
}

type Service interface {
	CommitBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingConfirmation, error)
	GetSeatMap(ctx context.Context, showtimeID uuid.UUID) (*SeatMapResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]UserBookingItem, error)
	GetBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) (*Booking, error)
	SetCacheService(cacheService cache.Service, seatMapTTL time.Duration)
	SetNotifier(notifier TicketNotifier)
}

type service struct {
	repo         Repository
	showtimeRepo showtimes.Repository
	cacheService cache.Service
	seatMapTTL   time.Duration
	notifier     TicketNotifier
	log          *logger.Logger
}

func NewService(repo Repository, showtimeRepo showtimes.Repository, log *logger.Logger) Service {
	return &service{repo: repo, showtimeRepo: showtimeRepo, log: log}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service, seatMapTTL time.Duration) {
	s.cacheService = cacheService
	s.seatMapTTL = seatMapTTL
}

// SetNotifier injects the ticket event publisher
func (s *service) SetNotifier(notifier TicketNotifier) {
	s.notifier = notifier
}

// CommitBooking validates and normalizes the seat selection, then hands the
// claim to the repository transaction. Validation failures never touch the
// database.
func (s *service) CommitBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingConfirmation, error) {
	showtimeID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID: %w", err)
	}

	labels, err := normalizeSelection(req.Seats)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		UserID:     userID,
		ShowtimeID: showtimeID,
		BookingRef: generateBookingRef(),
	}

	if err := s.repo.CreateBookingWithSeats(ctx, booking, labels); err != nil {
		if errors.Is(err, ErrSeatConflict) {
			s.log.LogSeatConflict(ctx, showtimeID.String(), userID.String())
		}
		return nil, err
	}

	showtime, err := s.showtimeRepo.GetByID(ctx, showtimeID)
	if err != nil {
		// Booking is committed; report it even if the availability re-read fails.
		showtime = &showtimes.Showtime{}
	}

	s.log.LogBookingCommitted(ctx, booking.ID.String(), showtimeID.String(), userID.String(), len(labels))
	s.invalidateSeatMapCache(ctx, showtimeID)
	s.notify(ctx, booking)

	return &BookingConfirmation{
		BookingID:      booking.ID,
		BookingRef:     booking.BookingRef,
		ShowtimeID:     showtimeID,
		Seats:          labels,
		TicketCount:    booking.TicketCount,
		AvailableSeats: showtime.AvailableSeats,
		BookedAt:       booking.CreatedAt,
	}, nil
}

// GetSeatMap returns the grid layout plus the occupied labels for a
// showtime. Results are cached briefly; stale maps only cost the client a
// rejected booking attempt, never a double-sold seat.
func (s *service) GetSeatMap(ctx context.Context, showtimeID uuid.UUID) (*SeatMapResponse, error) {
	if s.cacheService != nil {
		key := cache.BuildSeatMapKey(showtimeID.String())
		var cached SeatMapResponse
		err := s.cacheService.GetOrSet(ctx, key, s.seatMapTTL,
			func() (interface{}, error) {
				return s.buildSeatMap(ctx, showtimeID)
			}, &cached)
		if err == nil {
			return &cached, nil
		}
		if errors.Is(err, showtimes.ErrShowtimeNotFound) {
			return nil, err
		}
	}
	return s.buildSeatMap(ctx, showtimeID)
}

func (s *service) buildSeatMap(ctx context.Context, showtimeID uuid.UUID) (*SeatMapResponse, error) {
	showtime, err := s.showtimeRepo.GetByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	occupied, err := s.repo.OccupiedSeats(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	return &SeatMapResponse{
		ShowtimeID:     showtimeID,
		Rows:           seatmap.RowLabels(),
		SeatsPerRow:    seatmap.SeatsPerRow,
		TotalSeats:     showtime.TotalSeats,
		AvailableSeats: showtime.AvailableSeats,
		Occupied:       occupied,
	}, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]UserBookingItem, error) {
	return s.repo.GetUserBookings(ctx, userID, limit, offset)
}

func (s *service) GetBooking(ctx context.Context, bookingID, userID uuid.UUID, isAdmin bool) (*Booking, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID && !isAdmin {
		return nil, ErrNotBookingOwner
	}
	return booking, nil
}

func (s *service) invalidateSeatMapCache(ctx context.Context, showtimeID uuid.UUID) {
	if s.cacheService != nil {
		_ = s.cacheService.Delete(ctx, cache.BuildSeatMapKey(showtimeID.String()))
	}
}

func (s *service) notify(ctx context.Context, booking *Booking) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyTicketBooked(ctx, booking); err != nil {
		s.log.WithError(err).Warn("failed to publish ticket event", "booking_id", booking.ID.String())
	}
}

// normalizeSelection uppercases, validates and dedupe-checks the requested
// labels, returning them in row-major order.
func normalizeSelection(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySeatSelection
	}

	seen := make(map[string]struct{}, len(raw))
	labels := make([]string, 0, len(raw))
	for _, entry := range raw {
		label, err := seatmap.Normalize(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSeatLabel, entry)
		}
		if _, dup := seen[label]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSeatLabel, label)
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}

	seatmap.SortLabels(labels)
	return labels, nil
}

const refCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateBookingRef builds a human-readable reference like CBK-20260901-K7KQ2M.
// Uniqueness is enforced by the database; collisions are astronomically rare.
func generateBookingRef() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(refCharset))))
		if err != nil {
			suffix[i] = refCharset[time.Now().UnixNano()%int64(len(refCharset))]
			continue
		}
		suffix[i] = refCharset[n.Int64()]
	}
	return fmt.Sprintf("CBK-%s-%s", time.Now().UTC().Format("20060102"), string(suffix))
}

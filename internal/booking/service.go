package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hallbook/internal/events"
	"hallbook/internal/notifications"
	"hallbook/internal/seats"
	"hallbook/internal/tickets"
	"hallbook/pkg/cache"
	"hallbook/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error)
	GetPayment(ctx context.Context, paymentID string) (*PaymentResponse, error)
	ConfirmPayment(ctx context.Context, paymentID string) (*BookingConfirmation, error)
	BookDirect(ctx context.Context, req DirectBookingRequest) (*BookingConfirmation, error)
	SweepExpired(ctx context.Context) (int64, error)
	StartSweeper(ctx context.Context, interval time.Duration)

	SetCacheService(cacheService cache.Service)
	SetPaymentURL(url string)
}

type service struct {
	repo         Repository
	seatRepo     seats.Repository
	eventRepo    events.Repository
	producer     notifications.Producer
	cacheService cache.Service
	holdTTL      time.Duration
	paymentURL   string
	log          *logger.Logger
}

func NewService(repo Repository, seatRepo seats.Repository, eventRepo events.Repository, producer notifications.Producer, holdTTL time.Duration) Service {
	if producer == nil {
		producer = notifications.NopProducer{}
	}
	return &service{
		repo:      repo,
		seatRepo:  seatRepo,
		eventRepo: eventRepo,
		producer:  producer,
		holdTTL:   holdTTL,
		log:       logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// SetPaymentURL injects the external payment page customers are sent to
func (s *service) SetPaymentURL(url string) {
	s.paymentURL = url
}

func (s *service) paymentPageURL(paymentID string) string {
	if s.paymentURL == "" {
		return ""
	}
	return s.paymentURL + "?payment_id=" + paymentID
}

// CreatePayment validates the selection, prices it from the current seat rows
// and opens a payment session holding the seats until ExpiresAt. The total is
// always computed here; whatever the client thinks the price is never enters
// the reservation.
func (s *service) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	eventID, selection, total, err := s.validateSelection(ctx, req.EventID, req.Seats)
	if err != nil {
		return nil, err
	}

	ref, err := newBookingRef()
	if err != nil {
		return nil, err
	}

	reservation := &PendingReservation{
		PaymentID:     newPaymentID(),
		BookingRef:    ref,
		EventID:       eventID,
		SeatLabels:    strings.Join(selection, ","),
		CustomerName:  req.Customer.Name,
		CustomerEmail: req.Customer.Email,
		CustomerPhone: req.Customer.Phone,
		TotalAmount:   total,
		ExpiresAt:     time.Now().Add(s.holdTTL),
	}

	if err := s.repo.CreateReservation(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	// Mirror the reservation in Redis with the same TTL so the payment page
	// can poll session state without hitting Postgres. The database row stays
	// authoritative.
	if s.cacheService != nil {
		if err := s.cacheService.Set(ctx, reservationCacheKey(reservation.PaymentID), reservation, s.holdTTL); err != nil {
			s.log.WarnContext(ctx, "failed to cache reservation",
				"payment_id", reservation.PaymentID, "error", err)
		}
	}

	return &PaymentResponse{
		PaymentID:  reservation.PaymentID,
		BookingRef: reservation.BookingRef,
		Amount:     reservation.TotalAmount,
		ExpiresAt:  reservation.ExpiresAt,
		PaymentURL: s.paymentPageURL(reservation.PaymentID),
	}, nil
}

// GetPayment returns the state of an open payment session. The Redis mirror
// answers most polls; Postgres is the fallback and the authority.
func (s *service) GetPayment(ctx context.Context, paymentID string) (*PaymentResponse, error) {
	if s.cacheService != nil {
		var cached PendingReservation
		if err := s.cacheService.Get(ctx, reservationCacheKey(paymentID), &cached); err == nil {
			if cached.ExpiresAt.After(time.Now()) {
				return &PaymentResponse{
					PaymentID:  cached.PaymentID,
					BookingRef: cached.BookingRef,
					Amount:     cached.TotalAmount,
					ExpiresAt:  cached.ExpiresAt,
					PaymentURL: s.paymentPageURL(cached.PaymentID),
				}, nil
			}
		}
	}

	reservation, err := s.repo.GetActiveReservation(ctx, paymentID, time.Now())
	if err != nil {
		return nil, err
	}
	return &PaymentResponse{
		PaymentID:  reservation.PaymentID,
		BookingRef: reservation.BookingRef,
		Amount:     reservation.TotalAmount,
		ExpiresAt:  reservation.ExpiresAt,
		PaymentURL: s.paymentPageURL(reservation.PaymentID),
	}, nil
}

// ConfirmPayment promotes the payment session into a ticket. Expiry and seat
// availability are both re-checked inside the confirmation transaction, so a
// session that timed out or lost its seats to a faster customer cannot produce
// a ticket.
func (s *service) ConfirmPayment(ctx context.Context, paymentID string) (*BookingConfirmation, error) {
	ticket, err := s.repo.ConfirmReservation(ctx, paymentID, time.Now())
	if err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, ticket.EventID.String(), paymentID)
	s.log.LogBookingConfirmed(ctx, ticket.ID, ticket.EventID.String(), ticket.TotalAmount)
	s.publishConfirmed(ctx, ticket.ID, ticket.EventID.String(), ticket.SeatList(), ticket.CustomerEmail, ticket.TotalAmount)

	return confirmationOf(ticket.ID, ticket.EventID.String(), ticket.SeatList(), ticket.TotalAmount, ticket.BookingTime), nil
}

// BookDirect books seats in one step, for walk-up sales where no payment
// session is needed.
func (s *service) BookDirect(ctx context.Context, req DirectBookingRequest) (*BookingConfirmation, error) {
	eventID, selection, total, err := s.validateSelection(ctx, req.EventID, req.Seats)
	if err != nil {
		return nil, err
	}

	ref, err := newBookingRef()
	if err != nil {
		return nil, err
	}

	ticket := newTicket(ref, eventID, selection, req.Customer, total)
	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx, eventID.String(), "")
	s.log.LogBookingConfirmed(ctx, ticket.ID, eventID.String(), total)
	s.publishConfirmed(ctx, ticket.ID, eventID.String(), selection, req.Customer.Email, total)

	return confirmationOf(ticket.ID, eventID.String(), selection, total, ticket.BookingTime), nil
}

// SweepExpired deletes reservations past their expiry. Confirmation already
// rejects expired sessions on its own, so the sweeper only keeps the table
// from accumulating dead rows.
func (s *service) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired reservations: %w", err)
	}
	if n > 0 {
		s.log.InfoContext(ctx, "swept expired reservations", "count", n)
	}
	return n, nil
}

// StartSweeper runs SweepExpired on a fixed interval until ctx is cancelled
func (s *service) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.SweepExpired(ctx); err != nil {
					s.log.WarnContext(ctx, "reservation sweep failed", "error", err)
				}
			}
		}
	}()
}

// validateSelection checks the event exists, the seats exist and are free, and
// returns the normalized labels with the server-side total.
func (s *service) validateSelection(ctx context.Context, rawEventID string, rawSeats []string) (uuid.UUID, []string, int64, error) {
	selection := normalizeLabels(rawSeats)
	if len(selection) == 0 {
		return uuid.Nil, nil, 0, ErrEmptySelection
	}

	eventID, err := uuid.Parse(rawEventID)
	if err != nil {
		return uuid.Nil, nil, 0, fmt.Errorf("invalid event id: %w", err)
	}

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return uuid.Nil, nil, 0, err
	}

	rows, err := s.seatRepo.GetByLabels(ctx, eventID, selection)
	if err != nil {
		return uuid.Nil, nil, 0, fmt.Errorf("failed to load seats: %w", err)
	}
	if len(rows) != len(selection) {
		return uuid.Nil, nil, 0, ErrSeatNotFound
	}

	var total int64
	var taken []string
	for i := range rows {
		if rows[i].Status != seats.StatusFree {
			taken = append(taken, rows[i].SeatLabel)
			continue
		}
		total += rows[i].Price
	}
	if len(taken) > 0 {
		return uuid.Nil, nil, 0, &ConflictError{Labels: taken}
	}

	return eventID, selection, total, nil
}

// normalizeLabels trims and uppercases the labels and drops duplicates while
// preserving order, so "a1, A1" cannot double-charge a seat.
func normalizeLabels(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))
	for _, label := range raw {
		label = strings.ToUpper(strings.TrimSpace(label))
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		result = append(result, label)
	}
	return result
}

func (s *service) invalidateCaches(ctx context.Context, eventID, paymentID string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, seats.CacheKeyForEvent(eventID)); err != nil {
		s.log.WarnContext(ctx, "failed to invalidate seat cache", "event_id", eventID, "error", err)
	}
	if paymentID != "" {
		if err := s.cacheService.Delete(ctx, reservationCacheKey(paymentID)); err != nil {
			s.log.WarnContext(ctx, "failed to drop reservation cache", "payment_id", paymentID, "error", err)
		}
	}
}

func (s *service) publishConfirmed(ctx context.Context, ticketID, eventID string, labels []string, email string, total int64) {
	event := notifications.BookingEvent{
		Type:          notifications.EventBookingConfirmed,
		BookingID:     ticketID,
		EventID:       eventID,
		SeatLabels:    labels,
		CustomerEmail: email,
		TotalAmount:   total,
		OccurredAt:    time.Now(),
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.WarnContext(ctx, "failed to publish booking confirmation",
			"booking_id", ticketID, "error", err)
	}
}

func reservationCacheKey(paymentID string) string {
	return "booking:pending:" + paymentID
}

func newTicket(ref string, eventID uuid.UUID, labels []string, customer Customer, total int64) *tickets.Ticket {
	return &tickets.Ticket{
		ID:            ref,
		EventID:       eventID,
		SeatLabels:    strings.Join(labels, ","),
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		TotalAmount:   total,
		BookingTime:   time.Now(),
		Status:        tickets.StatusActive,
	}
}

func confirmationOf(ticketID, eventID string, labels []string, total int64, bookingTime time.Time) *BookingConfirmation {
	return &BookingConfirmation{
		TicketID:    ticketID,
		EventID:     eventID,
		Seats:       labels,
		TotalAmount: total,
		BookingTime: bookingTime,
		Status:      string(tickets.StatusActive),
	}
}

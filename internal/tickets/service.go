package tickets

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"hallbook/internal/notifications"
	"hallbook/pkg/logger"

	"github.com/yeqown/go-qrcode"
)

type Service interface {
	Lookup(ctx context.Context, id string) (*VerificationResponse, error)
	MarkUsed(ctx context.Context, id string) (*TicketProjection, error)
	Cancel(ctx context.Context, id string) (*TicketProjection, error)
	QRImage(ctx context.Context, id string) ([]byte, error)
	ListBookings(ctx context.Context) ([]TicketProjection, error)
}

type service struct {
	repo     Repository
	producer notifications.Producer
	log      *logger.Logger
}

func NewService(repo Repository, producer notifications.Producer) Service {
	if producer == nil {
		producer = notifications.NopProducer{}
	}
	return &service{
		repo:     repo,
		producer: producer,
		log:      logger.GetDefault(),
	}
}

func (s *service) Lookup(ctx context.Context, id string) (*VerificationResponse, error) {
	row, err := s.repo.GetByIDWithEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	projection := row.ToProjection()
	return &VerificationResponse{Valid: true, Ticket: &projection}, nil
}

// MarkUsed flips an active ticket to used. Re-marking a used ticket is
// idempotent; a cancelled ticket cannot be used.
func (s *service) MarkUsed(ctx context.Context, id string) (*TicketProjection, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch ticket.Status {
	case StatusUsed:
		// Already scanned; report success with the current state.
		return s.projection(ctx, id)
	case StatusCancelled:
		return nil, fmt.Errorf("%w: cancelled ticket cannot be used", ErrInvalidState)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, StatusActive, StatusUsed)
	if err != nil {
		return nil, fmt.Errorf("failed to mark ticket used: %w", err)
	}
	if !updated {
		// Lost a race with another scanner; re-read and decide.
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current.Status != StatusUsed {
			return nil, fmt.Errorf("%w: ticket is %s", ErrInvalidState, current.Status)
		}
	}

	s.log.LogTicketUsed(ctx, id)
	s.publish(ctx, notifications.BookingEvent{
		Type:      notifications.EventTicketUsed,
		BookingID: id,
	})

	return s.projection(ctx, id)
}

// Cancel voids an active ticket. Seats are deliberately left occupied so
// operators can decide whether to resell them.
func (s *service) Cancel(ctx context.Context, id string) (*TicketProjection, error) {
	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket.Status != StatusActive {
		return nil, fmt.Errorf("%w: ticket is %s", ErrInvalidState, ticket.Status)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, StatusActive, StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel ticket: %w", err)
	}
	if !updated {
		return nil, fmt.Errorf("%w: ticket is no longer active", ErrInvalidState)
	}

	s.publish(ctx, notifications.BookingEvent{
		Type:      notifications.EventTicketCancelled,
		BookingID: id,
	})

	return s.projection(ctx, id)
}

// QRImage renders the ticket id as a JPEG QR code for the printable ticket.
func (s *service) QRImage(ctx context.Context, id string) ([]byte, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	qrc, err := qrcode.New(id)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := qrc.SaveTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *service) ListBookings(ctx context.Context) ([]TicketProjection, error) {
	rows, err := s.repo.ListAllWithEvent(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	result := make([]TicketProjection, 0, len(rows))
	for i := range rows {
		result = append(result, rows[i].ToProjection())
	}
	return result, nil
}

func (s *service) projection(ctx context.Context, id string) (*TicketProjection, error) {
	row, err := s.repo.GetByIDWithEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	projection := row.ToProjection()
	return &projection, nil
}

func (s *service) publish(ctx context.Context, event notifications.BookingEvent) {
	event.OccurredAt = time.Now()
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.WarnContext(ctx, "failed to publish ticket event",
			"type", string(event.Type), "booking_id", event.BookingID, "error", err)
	}
}

package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hallbook/internal/events"
	"hallbook/internal/seats"
	"hallbook/internal/tickets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory stand-in for the booking repository. Seat state
// lives in the shared fakeSeatRepo so confirmation sees the same rows the
// validation did.
type fakeRepo struct {
	reservations map[string]*PendingReservation
	tickets      map[string]*tickets.Ticket
	seatRepo     *fakeSeatRepo
}

func newFakeRepo(seatRepo *fakeSeatRepo) *fakeRepo {
	return &fakeRepo{
		reservations: make(map[string]*PendingReservation),
		tickets:      make(map[string]*tickets.Ticket),
		seatRepo:     seatRepo,
	}
}

func (f *fakeRepo) CreateReservation(_ context.Context, r *PendingReservation) error {
	f.reservations[r.PaymentID] = r
	return nil
}

func (f *fakeRepo) GetActiveReservation(_ context.Context, paymentID string, now time.Time) (*PendingReservation, error) {
	r, ok := f.reservations[paymentID]
	if !ok || !r.ExpiresAt.After(now) {
		return nil, ErrNotFoundOrExpired
	}
	return r, nil
}

func (f *fakeRepo) ConfirmReservation(_ context.Context, paymentID string, now time.Time) (*tickets.Ticket, error) {
	r, ok := f.reservations[paymentID]
	if !ok || !r.ExpiresAt.After(now) {
		return nil, ErrNotFoundOrExpired
	}

	labels := r.SeatList()
	if err := f.seatRepo.checkFree(r.EventID, labels); err != nil {
		return nil, err
	}

	t := &tickets.Ticket{
		ID:            r.BookingRef,
		EventID:       r.EventID,
		SeatLabels:    r.SeatLabels,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		TotalAmount:   r.TotalAmount,
		BookingTime:   now,
		Status:        tickets.StatusActive,
	}
	f.tickets[t.ID] = t
	f.seatRepo.occupy(r.EventID, labels)
	delete(f.reservations, paymentID)
	return t, nil
}

func (f *fakeRepo) CreateTicket(_ context.Context, t *tickets.Ticket) error {
	labels := t.SeatList()
	if err := f.seatRepo.checkFree(t.EventID, labels); err != nil {
		return err
	}
	f.tickets[t.ID] = t
	f.seatRepo.occupy(t.EventID, labels)
	return nil
}

func (f *fakeRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, r := range f.reservations {
		if !r.ExpiresAt.After(now) {
			delete(f.reservations, id)
			n++
		}
	}
	return n, nil
}

// fakeSeatRepo holds seat rows keyed by event and label
type fakeSeatRepo struct {
	rows map[uuid.UUID]map[string]*seats.Seat
}

func newFakeSeatRepo() *fakeSeatRepo {
	return &fakeSeatRepo{rows: make(map[uuid.UUID]map[string]*seats.Seat)}
}

func (f *fakeSeatRepo) add(eventID uuid.UUID, label string, price int64, status seats.Status) {
	if f.rows[eventID] == nil {
		f.rows[eventID] = make(map[string]*seats.Seat)
	}
	f.rows[eventID][label] = &seats.Seat{
		ID:        uuid.New(),
		EventID:   eventID,
		SeatLabel: label,
		Price:     price,
		Status:    status,
	}
}

func (f *fakeSeatRepo) checkFree(eventID uuid.UUID, labels []string) error {
	var taken []string
	for _, label := range labels {
		seat, ok := f.rows[eventID][label]
		if !ok {
			return ErrSeatNotFound
		}
		if seat.Status != seats.StatusFree {
			taken = append(taken, label)
		}
	}
	if len(taken) > 0 {
		return &ConflictError{Labels: taken}
	}
	return nil
}

func (f *fakeSeatRepo) occupy(eventID uuid.UUID, labels []string) {
	for _, label := range labels {
		if seat, ok := f.rows[eventID][label]; ok {
			seat.Status = seats.StatusOccupied
		}
	}
}

func (f *fakeSeatRepo) GetByLabels(_ context.Context, eventID uuid.UUID, labels []string) ([]seats.Seat, error) {
	var result []seats.Seat
	for _, label := range labels {
		if seat, ok := f.rows[eventID][label]; ok {
			result = append(result, *seat)
		}
	}
	return result, nil
}

func (f *fakeSeatRepo) ListByEvent(_ context.Context, eventID uuid.UUID) ([]seats.Seat, error) {
	var result []seats.Seat
	for _, seat := range f.rows[eventID] {
		result = append(result, *seat)
	}
	return result, nil
}

func (f *fakeSeatRepo) GetByID(context.Context, uuid.UUID) (*seats.Seat, error) {
	return nil, seats.ErrNotFound
}

func (f *fakeSeatRepo) Update(context.Context, uuid.UUID, map[string]interface{}) error { return nil }
func (f *fakeSeatRepo) Delete(context.Context, uuid.UUID) error                         { return nil }
func (f *fakeSeatRepo) ClearByEvent(context.Context, uuid.UUID) error                   { return nil }
func (f *fakeSeatRepo) ReplaceForEvent(context.Context, uuid.UUID, []seats.Seat) error  { return nil }

// fakeEventRepo knows a single event
type fakeEventRepo struct {
	event *events.Event
}

func (f *fakeEventRepo) Create(context.Context, *events.Event) error { return nil }

func (f *fakeEventRepo) GetByID(_ context.Context, id uuid.UUID) (*events.Event, error) {
	if f.event != nil && f.event.ID == id {
		return f.event, nil
	}
	return nil, events.ErrNotFound
}

func (f *fakeEventRepo) ListUpcoming(context.Context, time.Time) ([]events.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) ListAllWithSales(context.Context) ([]events.EventSales, error) {
	return nil, nil
}

func (f *fakeEventRepo) Update(context.Context, uuid.UUID, map[string]interface{}) error { return nil }
func (f *fakeEventRepo) Delete(context.Context, uuid.UUID) error                         { return nil }

type bookingFixture struct {
	service  Service
	repo     *fakeRepo
	seatRepo *fakeSeatRepo
	eventID  uuid.UUID
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	eventID := uuid.New()
	seatRepo := newFakeSeatRepo()
	seatRepo.add(eventID, "A1", 2500, seats.StatusFree)
	seatRepo.add(eventID, "A2", 2500, seats.StatusFree)
	seatRepo.add(eventID, "C3", 1500, seats.StatusFree)
	seatRepo.add(eventID, "C4", 1500, seats.StatusOccupied)

	repo := newFakeRepo(seatRepo)
	eventRepo := &fakeEventRepo{event: &events.Event{ID: eventID, Name: "Test Show"}}

	return &bookingFixture{
		service:  NewService(repo, seatRepo, eventRepo, nil, 30*time.Minute),
		repo:     repo,
		seatRepo: seatRepo,
		eventID:  eventID,
	}
}

func testCustomer() Customer {
	return Customer{Name: "Dana Reyes", Email: "dana@example.com", Phone: "555-0134"}
}

func TestCreatePaymentComputesTotalServerSide(t *testing.T) {
	fx := newBookingFixture(t)

	resp, err := fx.service.CreatePayment(context.Background(), CreatePaymentRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{"A1", "C3"},
		Customer: testCustomer(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), resp.Amount)
	assert.True(t, strings.HasPrefix(resp.PaymentID, "P"))
	assert.True(t, strings.HasPrefix(resp.BookingRef, "B"))
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), resp.ExpiresAt, 5*time.Second)

	stored := fx.repo.reservations[resp.PaymentID]
	require.NotNil(t, stored)
	assert.Equal(t, "A1,C3", stored.SeatLabels)
	assert.Equal(t, resp.BookingRef, stored.BookingRef)
}

func TestCreatePaymentNormalizesSelection(t *testing.T) {
	fx := newBookingFixture(t)

	resp, err := fx.service.CreatePayment(context.Background(), CreatePaymentRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{" a1 ", "A1", "c3"},
		Customer: testCustomer(),
	})
	require.NoError(t, err)

	// The duplicate A1 is only charged once
	assert.Equal(t, int64(4000), resp.Amount)
	assert.Equal(t, "A1,C3", fx.repo.reservations[resp.PaymentID].SeatLabels)
}

func TestCreatePaymentEmptySelection(t *testing.T) {
	fx := newBookingFixture(t)

	_, err := fx.service.CreatePayment(context.Background(), CreatePaymentRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{"  ", ""},
		Customer: testCustomer(),
	})
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestCreatePaymentUnknownSeat(t *testing.T) {
	fx := newBookingFixture(t)

	_, err := fx.service.CreatePayment(context.Background(), CreatePaymentRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{"A1", "Z9"},
		Customer: testCustomer(),
	})
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestCreatePaymentUnknownEvent(t *testing.T) {
	fx := newBookingFixture(t)

	_, err := fx.service.CreatePayment(context.Background(), CreatePaymentRequest{
		EventID:  uuid.NewString(),
		Seats:    []string{"A1"},
		Customer: testCustomer(),
	})
	assert.ErrorIs(t, err, events.ErrNotFound)
}

func TestCreatePaymentOccupiedSeatNamesConflict(t *testing.T) {
	fx := newBookingFixture(t)

	_, err := fx.service.CreatePayment(context.Background(), CreatePaymentRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{"A1", "C4"},
		Customer: testCustomer(),
	})
	require.Error(t, err)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"C4"}, conflict.Labels)
	assert.ErrorIs(t, err, ErrSeatConflict)
}

func TestConfirmPaymentPromotesReservation(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()

	resp, err := fx.service.CreatePayment(ctx, CreatePaymentRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{"A1", "A2"},
		Customer: testCustomer(),
	})
	require.NoError(t, err)

	confirmation, err := fx.service.ConfirmPayment(ctx, resp.PaymentID)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(confirmation.TicketID, "B"))
	assert.Equal(t, []string{"A1", "A2"}, confirmation.Seats)
	assert.Equal(t, int64(5000), confirmation.TotalAmount)
	assert.Equal(t, string(tickets.StatusActive), confirmation.Status)

	// Seats are occupied and the reservation is gone
	assert.Equal(t, seats.StatusOccupied, fx.seatRepo.rows[fx.eventID]["A1"].Status)
	assert.Empty(t, fx.repo.reservations)

	// A second confirm of the same session fails
	_, err = fx.service.ConfirmPayment(ctx, resp.PaymentID)
	assert.ErrorIs(t, err, ErrNotFoundOrExpired)
}

func TestConfirmPaymentExpiredSession(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()

	resp, err := fx.service.CreatePayment(ctx, CreatePaymentRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{"A1"},
		Customer: testCustomer(),
	})
	require.NoError(t, err)

	fx.repo.reservations[resp.PaymentID].ExpiresAt = time.Now().Add(-time.Minute)

	_, err = fx.service.ConfirmPayment(ctx, resp.PaymentID)
	assert.ErrorIs(t, err, ErrNotFoundOrExpired)

	// The expired session never touched the seat
	assert.Equal(t, seats.StatusFree, fx.seatRepo.rows[fx.eventID]["A1"].Status)
}

func TestConfirmPaymentLosesRaceForSeats(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()

	// Two sessions hold overlapping seats; holds do not block each other
	first, err := fx.service.CreatePayment(ctx, CreatePaymentRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{"A1", "A2"},
		Customer: testCustomer(),
	})
	require.NoError(t, err)

	second, err := fx.service.CreatePayment(ctx, CreatePaymentRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{"A2", "C3"},
		Customer: testCustomer(),
	})
	require.NoError(t, err)

	_, err = fx.service.ConfirmPayment(ctx, first.PaymentID)
	require.NoError(t, err)

	_, err = fx.service.ConfirmPayment(ctx, second.PaymentID)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"A2"}, conflict.Labels)
}

func TestBookDirect(t *testing.T) {
	fx := newBookingFixture(t)

	confirmation, err := fx.service.BookDirect(context.Background(), DirectBookingRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{"C3"},
		Customer: testCustomer(),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1500), confirmation.TotalAmount)
	assert.Equal(t, seats.StatusOccupied, fx.seatRepo.rows[fx.eventID]["C3"].Status)

	stored := fx.repo.tickets[confirmation.TicketID]
	require.NotNil(t, stored)
	assert.Equal(t, "dana@example.com", stored.CustomerEmail)
}

func TestSweepExpiredDropsOnlyStaleReservations(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()

	fresh, err := fx.service.CreatePayment(ctx, CreatePaymentRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{"A1"},
		Customer: testCustomer(),
	})
	require.NoError(t, err)

	stale, err := fx.service.CreatePayment(ctx, CreatePaymentRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{"A2"},
		Customer: testCustomer(),
	})
	require.NoError(t, err)
	fx.repo.reservations[stale.PaymentID].ExpiresAt = time.Now().Add(-time.Minute)

	n, err := fx.service.SweepExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Contains(t, fx.repo.reservations, fresh.PaymentID)
	assert.NotContains(t, fx.repo.reservations, stale.PaymentID)
}

func TestBookingRefFormat(t *testing.T) {
	ref, err := newBookingRef()
	require.NoError(t, err)
	assert.Len(t, ref, bookingRefLength+1)
	assert.True(t, strings.HasPrefix(ref, "B"))

	other, err := newBookingRef()
	require.NoError(t, err)
	assert.NotEqual(t, ref, other)
}

func TestGetPaymentFallsBackToRepository(t *testing.T) {
	fx := newBookingFixture(t)
	ctx := context.Background()

	resp, err := fx.service.CreatePayment(ctx, CreatePaymentRequest{
		EventID:  fx.eventID.String(),
		Seats:    []string{"A1"},
		Customer: testCustomer(),
	})
	require.NoError(t, err)

	got, err := fx.service.GetPayment(ctx, resp.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, resp.Amount, got.Amount)

	_, err = fx.service.GetPayment(ctx, "P-missing")
	assert.ErrorIs(t, err, ErrNotFoundOrExpired)
}

func TestConflictErrorUnwraps(t *testing.T) {
	err := error(&ConflictError{Labels: []string{"B2"}})
	assert.True(t, errors.Is(err, ErrSeatConflict))
	assert.Contains(t, err.Error(), "B2")
}

package seats

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo keeps seats in a slice, replacing wholesale like the real
// ReplaceForEvent does
type memoryRepo struct {
	seats  []Seat
	nextID int
}

func (m *memoryRepo) ListByEvent(_ context.Context, eventID uuid.UUID) ([]Seat, error) {
	var result []Seat
	for _, s := range m.seats {
		if s.EventID == eventID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*Seat, error) {
	for i := range m.seats {
		if m.seats[i].ID == id {
			return &m.seats[i], nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryRepo) GetByLabels(_ context.Context, eventID uuid.UUID, labels []string) ([]Seat, error) {
	want := make(map[string]bool, len(labels))
	for _, l := range labels {
		want[l] = true
	}
	var result []Seat
	for _, s := range m.seats {
		if s.EventID == eventID && want[s.SeatLabel] {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *memoryRepo) Update(_ context.Context, id uuid.UUID, updates map[string]interface{}) error {
	for i := range m.seats {
		if m.seats[i].ID == id {
			if price, ok := updates["price"].(int64); ok {
				m.seats[i].Price = price
			}
			if category, ok := updates["category"].(Category); ok {
				m.seats[i].Category = category
			}
			if status, ok := updates["status"].(Status); ok {
				m.seats[i].Status = status
			}
			return nil
		}
	}
	return ErrNotFound
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range m.seats {
		if m.seats[i].ID == id {
			m.seats = append(m.seats[:i], m.seats[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memoryRepo) ClearByEvent(_ context.Context, eventID uuid.UUID) error {
	kept := m.seats[:0]
	for _, s := range m.seats {
		if s.EventID != eventID {
			kept = append(kept, s)
		}
	}
	m.seats = kept
	return nil
}

func (m *memoryRepo) ReplaceForEvent(ctx context.Context, eventID uuid.UUID, newSeats []Seat) error {
	if err := m.ClearByEvent(ctx, eventID); err != nil {
		return err
	}
	for i := range newSeats {
		newSeats[i].ID = uuid.New()
	}
	m.seats = append(m.seats, newSeats...)
	return nil
}


func TestBulkGenerate(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)
	eventID := uuid.New()

	count, err := svc.BulkGenerate(context.Background(), eventID.String(), BulkGenerateRequest{
		Rows:        4,
		SeatsPerRow: 6,
		BasePrice:   1500,
		VipRows:     []int{0, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 24, count)

	byLabel := make(map[string]Seat)
	for _, s := range repo.seats {
		byLabel[s.SeatLabel] = s
	}

	// Rows A and B carry the rounded VIP price
	assert.Equal(t, int64(2250), byLabel["A1"].Price)
	assert.Equal(t, CategoryVIP, byLabel["B6"].Category)
	assert.Equal(t, int64(1500), byLabel["C1"].Price)
	assert.Equal(t, CategoryStandard, byLabel["D6"].Category)

	for _, s := range repo.seats {
		assert.Equal(t, StatusFree, s.Status)
	}
}

func TestBulkGenerateReplacesExistingMap(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)
	eventID := uuid.New()
	ctx := context.Background()

	_, err := svc.BulkGenerate(ctx, eventID.String(), BulkGenerateRequest{
		Rows: 2, SeatsPerRow: 2, BasePrice: 1000,
	})
	require.NoError(t, err)

	count, err := svc.BulkGenerate(ctx, eventID.String(), BulkGenerateRequest{
		Rows: 3, SeatsPerRow: 5, BasePrice: 2000,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, count)
	assert.Len(t, repo.seats, 15)
}

func TestBulkGenerateRejectsOversizedMaps(t *testing.T) {
	svc := NewService(&memoryRepo{})
	eventID := uuid.NewString()
	ctx := context.Background()

	_, err := svc.BulkGenerate(ctx, eventID, BulkGenerateRequest{
		Rows: 21, SeatsPerRow: 5, BasePrice: 1000,
	})
	assert.ErrorIs(t, err, ErrConfig)

	_, err = svc.BulkGenerate(ctx, eventID, BulkGenerateRequest{
		Rows: 5, SeatsPerRow: 21, BasePrice: 1000,
	})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestGenerateDefaultSeatMap(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)
	eventID := uuid.New()

	require.NoError(t, svc.GenerateDefaultSeatMap(context.Background(), eventID))
	require.Len(t, repo.seats, 24)

	byLabel := make(map[string]Seat)
	for _, s := range repo.seats {
		byLabel[s.SeatLabel] = s
	}

	assert.Equal(t, CategoryVIP, byLabel["A1"].Category)
	assert.Equal(t, int64(2500), byLabel["B3"].Price)
	assert.Equal(t, CategoryStandard, byLabel["C1"].Category)
	assert.Equal(t, int64(1500), byLabel["D6"].Price)
}

func TestUpdateSeat(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)
	eventID := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.GenerateDefaultSeatMap(ctx, eventID))
	target := repo.seats[0]

	price := int64(9000)
	status := "blocked"
	resp, err := svc.UpdateSeat(ctx, target.ID.String(), UpdateSeatRequest{
		Price:  &price,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9000), resp.Price)
	assert.Equal(t, StatusBlocked, resp.Status)
}

func TestDeleteSeatNotFound(t *testing.T) {
	svc := NewService(&memoryRepo{})
	err := svc.DeleteSeat(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearSeats(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)
	eventID := uuid.New()
	otherEvent := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.GenerateDefaultSeatMap(ctx, eventID))
	require.NoError(t, svc.GenerateDefaultSeatMap(ctx, otherEvent))

	require.NoError(t, svc.ClearSeats(ctx, eventID.String()))

	remaining, err := svc.ListSeats(ctx, otherEvent.String())
	require.NoError(t, err)
	assert.Len(t, remaining, 24)

	cleared, err := svc.ListSeats(ctx, eventID.String())
	require.NoError(t, err)
	assert.Empty(t, cleared)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "A1", Label("A", 1))
	assert.Equal(t, "D12", Label("D", 12))
}

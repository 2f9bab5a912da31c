package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	visits    []Visit
	dashboard *Dashboard
}

func (m *memoryRepo) RecordVisit(_ context.Context, page, userAgent string, at time.Time) error {
	m.visits = append(m.visits, Visit{Page: page, UserAgent: userAgent, VisitedAt: at})
	return nil
}

func (m *memoryRepo) GetDashboard(_ context.Context, _ time.Time) (*Dashboard, error) {
	return m.dashboard, nil
}

func TestTrackVisit(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo)

	svc.TrackVisit(context.Background(), "home", "Mozilla/5.0")
	svc.TrackVisit(context.Background(), "verify", "")

	require.Len(t, repo.visits, 2)
	assert.Equal(t, "home", repo.visits[0].Page)
	assert.Equal(t, "Mozilla/5.0", repo.visits[0].UserAgent)
}

func TestGetDashboard(t *testing.T) {
	repo := &memoryRepo{dashboard: &Dashboard{
		TotalVisits:  42,
		TicketsSold:  7,
		TotalRevenue: 17500,
	}}
	svc := NewService(repo)

	dashboard, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), dashboard.TotalVisits)
	assert.Equal(t, int64(17500), dashboard.TotalRevenue)
}

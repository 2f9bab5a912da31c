package stats

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	RecordVisit(ctx context.Context, page, userAgent string, at time.Time) error
	GetDashboard(ctx context.Context, now time.Time) (*Dashboard, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) RecordVisit(ctx context.Context, page, userAgent string, at time.Time) error {
	return r.db.WithContext(ctx).Create(&Visit{Page: page, UserAgent: userAgent, VisitedAt: at}).Error
}

// GetDashboard aggregates traffic and sales in a handful of queries. Revenue
// counts every non-cancelled ticket; cancelled tickets keep their seats but
// drop out of the totals.
func (r *repository) GetDashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	dashboard := &Dashboard{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&Visit{}).Count(&dashboard.TotalVisits).Error; err != nil {
		return nil, err
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := db.Model(&Visit{}).
		Where("visited_at >= ?", startOfDay).
		Count(&dashboard.VisitsToday).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&Visit{}).
		Select("page, COUNT(*) AS visits").
		Group("page").
		Order("visits DESC").
		Scan(&dashboard.VisitsByPage).Error; err != nil {
		return nil, err
	}

	if err := db.Table("events").Count(&dashboard.TotalEvents).Error; err != nil {
		return nil, err
	}

	row := db.Table("tickets").
		Select("COUNT(*) AS tickets_sold, COALESCE(SUM(total_amount), 0) AS total_revenue").
		Where("status != ?", "cancelled").
		Row()
	if err := row.Scan(&dashboard.TicketsSold, &dashboard.TotalRevenue); err != nil {
		return nil, err
	}

	if err := db.Table("tickets").
		Where("status = ?", "active").
		Count(&dashboard.ActiveTickets).Error; err != nil {
		return nil, err
	}

	return dashboard, nil
}

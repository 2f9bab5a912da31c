package stats

import "time"

// Visit is one recorded page view on a tracked page
type Visit struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Page      string    `gorm:"size:64;index;not null" json:"page"`
	UserAgent string    `gorm:"size:256" json:"user_agent"`
	VisitedAt time.Time `gorm:"index;not null" json:"visited_at"`
}

// TableName sets the table name for Visit
func (Visit) TableName() string {
	return "site_stats"
}

// PageVisits is the per-page aggregate
type PageVisits struct {
	Page   string `json:"page"`
	Visits int64  `json:"visits"`
}

// Dashboard is the admin stats view: traffic plus sales totals
type Dashboard struct {
	TotalVisits   int64        `json:"total_visits"`
	VisitsToday   int64        `json:"visits_today"`
	VisitsByPage  []PageVisits `json:"visits_by_page"`
	TotalEvents   int64        `json:"total_events"`
	TicketsSold   int64        `json:"tickets_sold"`
	TotalRevenue  int64        `json:"total_revenue"`
	ActiveTickets int64        `json:"active_tickets"`
}

package seats

import (
	"context"
	"fmt"
	"math"

	"hallbook/pkg/cache"
	"hallbook/pkg/logger"

	"github.com/google/uuid"
)

const (
	// maxRows is bounded by single-letter row labels and a sanity cap on
	// generated volume.
	maxRows        = 20
	maxSeatsPerRow = 20

	vipPriceMultiplier = 1.5

	rowLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Default seat map created alongside a new event.
const (
	defaultRows        = 4
	defaultSeatsPerRow = 6
	defaultVipPrice    = 2500
	defaultPrice       = 1500
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	ListSeats(ctx context.Context, eventID string) ([]SeatResponse, error)
	UpdateSeat(ctx context.Context, id string, req UpdateSeatRequest) (*SeatResponse, error)
	DeleteSeat(ctx context.Context, id string) error
	ClearSeats(ctx context.Context, eventID string) error
	BulkGenerate(ctx context.Context, eventID string, req BulkGenerateRequest) (int, error)
	GenerateDefaultSeatMap(ctx context.Context, eventID uuid.UUID) error
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) ListSeats(ctx context.Context, eventID string) ([]SeatResponse, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	fetch := func() ([]SeatResponse, error) {
		all, err := s.repo.ListByEvent(ctx, eventUUID)
		if err != nil {
			return nil, fmt.Errorf("failed to list seats: %w", err)
		}
		result := make([]SeatResponse, 0, len(all))
		for i := range all {
			result = append(result, all[i].ToResponse())
		}
		return result, nil
	}

	if s.cacheService == nil {
		return fetch()
	}

	var cached []SeatResponse
	err = s.cacheService.GetOrSet(ctx, CacheKeyForEvent(eventID), cache.DefaultTTL,
		func() (interface{}, error) { return fetch() }, &cached)
	if err != nil {
		// Serve from the database when the cache is unavailable.
		return fetch()
	}
	return cached, nil
}

func (s *service) UpdateSeat(ctx context.Context, id string, req UpdateSeatRequest) (*SeatResponse, error) {
	seatID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid seat ID: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = Category(*req.Category)
	}
	if req.Status != nil {
		updates["status"] = Status(*req.Status)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, seatID, updates); err != nil {
			return nil, err
		}
	}

	seat, err := s.repo.GetByID(ctx, seatID)
	if err != nil {
		return nil, err
	}

	s.invalidateSeatCache(ctx, seat.EventID.String())

	resp := seat.ToResponse()
	return &resp, nil
}

func (s *service) DeleteSeat(ctx context.Context, id string) error {
	seatID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid seat ID: %w", err)
	}

	seat, err := s.repo.GetByID(ctx, seatID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, seatID); err != nil {
		return err
	}

	s.invalidateSeatCache(ctx, seat.EventID.String())
	return nil
}

// ClearSeats removes every seat of the event. Tickets referencing the removed
// labels are retained for booking history; their seat references become
// dangling strings.
func (s *service) ClearSeats(ctx context.Context, eventID string) error {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	if err := s.repo.ClearByEvent(ctx, eventUUID); err != nil {
		return fmt.Errorf("failed to clear seats: %w", err)
	}

	s.invalidateSeatCache(ctx, eventID)
	return nil
}

// BulkGenerate replaces the event's seat map with rows × seatsPerRow fresh
// seats, all free. Returns the number of seats created.
func (s *service) BulkGenerate(ctx context.Context, eventID string, req BulkGenerateRequest) (int, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return 0, fmt.Errorf("invalid event ID: %w", err)
	}

	if req.Rows > maxRows || req.Rows > len(rowLetters) {
		return 0, fmt.Errorf("%w: rows must not exceed %d", ErrConfig, maxRows)
	}
	if req.SeatsPerRow > maxSeatsPerRow {
		return 0, fmt.Errorf("%w: seats per row must not exceed %d", ErrConfig, maxSeatsPerRow)
	}

	vip := make(map[int]bool, len(req.VipRows))
	for _, idx := range req.VipRows {
		vip[idx] = true
	}

	newSeats := make([]Seat, 0, req.Rows*req.SeatsPerRow)
	for i := 0; i < req.Rows; i++ {
		rowLetter := string(rowLetters[i])
		price := req.BasePrice
		category := CategoryStandard
		if vip[i] {
			price = int64(math.Round(float64(req.BasePrice) * vipPriceMultiplier))
			category = CategoryVIP
		}

		for j := 1; j <= req.SeatsPerRow; j++ {
			newSeats = append(newSeats, Seat{
				EventID:    eventUUID,
				RowLabel:   rowLetter,
				SeatNumber: j,
				SeatLabel:  Label(rowLetter, j),
				Price:      price,
				Category:   category,
				Status:     StatusFree,
			})
		}
	}

	if err := s.repo.ReplaceForEvent(ctx, eventUUID, newSeats); err != nil {
		return 0, fmt.Errorf("failed to generate seats: %w", err)
	}

	s.invalidateSeatCache(ctx, eventID)
	s.log.InfoContext(ctx, "seat map regenerated",
		"event_id", eventID, "seats", len(newSeats))
	return len(newSeats), nil
}

// GenerateDefaultSeatMap creates the stock 4×6 layout used for new events:
// rows A and B are VIP, C and D standard.
func (s *service) GenerateDefaultSeatMap(ctx context.Context, eventID uuid.UUID) error {
	newSeats := make([]Seat, 0, defaultRows*defaultSeatsPerRow)
	for i := 0; i < defaultRows; i++ {
		rowLetter := string(rowLetters[i])
		isVip := i < 2
		price := int64(defaultPrice)
		category := CategoryStandard
		if isVip {
			price = defaultVipPrice
			category = CategoryVIP
		}
		for j := 1; j <= defaultSeatsPerRow; j++ {
			newSeats = append(newSeats, Seat{
				EventID:    eventID,
				RowLabel:   rowLetter,
				SeatNumber: j,
				SeatLabel:  Label(rowLetter, j),
				Price:      price,
				Category:   category,
				Status:     StatusFree,
			})
		}
	}
	return s.repo.ReplaceForEvent(ctx, eventID, newSeats)
}

// CacheKeyForEvent is the cache entry holding an event's seat listing.
func CacheKeyForEvent(eventID string) string {
	return "seats:event:" + eventID
}

func (s *service) invalidateSeatCache(ctx context.Context, eventID string) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, CacheKeyForEvent(eventID)); err != nil {
		s.log.WarnContext(ctx, "seat cache invalidation failed",
			"event_id", eventID, "error", err)
	}
}

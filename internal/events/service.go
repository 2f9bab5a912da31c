package events

import (
	"context"
	"fmt"
	"time"

	"hallbook/pkg/cache"
	"hallbook/pkg/logger"

	"github.com/google/uuid"
)

const upcomingCacheKey = "events:upcoming"

// SeatService interface for seat-related operations (to avoid circular dependency)
type SeatService interface {
	GenerateDefaultSeatMap(ctx context.Context, eventID uuid.UUID) error
	ClearSeats(ctx context.Context, eventID string) error
}

type Service interface {
	SetSeatService(seatService SeatService)
	SetCacheService(cacheService cache.Service)
	CreateEvent(ctx context.Context, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(ctx context.Context, id string) (*EventResponse, error)
	GetUpcomingEvents(ctx context.Context) ([]EventResponse, error)
	GetAllEventsWithSales(ctx context.Context) ([]AdminEventResponse, error)
	UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(ctx context.Context, id string) error
}

type service struct {
	repo         Repository
	seatService  SeatService
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetSeatService(seatService SeatService) {
	s.seatService = seatService
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// CreateEvent inserts the event and generates its default seat map, the same
// stock layout the venue uses for every new show.
func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*EventResponse, error) {
	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = "default.jpg"
	}

	event := &Event{
		Name:        req.Name,
		Date:        req.Date,
		Description: req.Description,
		ImageURL:    imageURL,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if s.seatService != nil {
		if err := s.seatService.GenerateDefaultSeatMap(ctx, event.ID); err != nil {
			return nil, fmt.Errorf("failed to generate default seat map: %w", err)
		}
	}

	s.invalidateUpcomingCache(ctx)
	s.log.InfoContext(ctx, "event created", "event_id", event.ID.String(), "name", event.Name)

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetEventByID(ctx context.Context, id string) (*EventResponse, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetUpcomingEvents(ctx context.Context) ([]EventResponse, error) {
	fetch := func() ([]EventResponse, error) {
		all, err := s.repo.ListUpcoming(ctx, time.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}
		result := make([]EventResponse, 0, len(all))
		for i := range all {
			result = append(result, all[i].ToResponse())
		}
		return result, nil
	}

	if s.cacheService == nil {
		return fetch()
	}

	var cached []EventResponse
	err := s.cacheService.GetOrSet(ctx, upcomingCacheKey, cache.DefaultTTL,
		func() (interface{}, error) { return fetch() }, &cached)
	if err != nil {
		return fetch()
	}
	return cached, nil
}

func (s *service) GetAllEventsWithSales(ctx context.Context) ([]AdminEventResponse, error) {
	all, err := s.repo.ListAllWithSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	result := make([]AdminEventResponse, 0, len(all))
	for i := range all {
		result = append(result, AdminEventResponse{
			EventResponse: all[i].Event.ToResponse(),
			TicketsSold:   all[i].TicketsSold,
			TotalRevenue:  all[i].TotalRevenue,
		})
	}
	return result, nil
}

func (s *service) UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*EventResponse, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, eventID, updates); err != nil {
			return nil, err
		}
		s.invalidateUpcomingCache(ctx)
	}

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := event.ToResponse()
	return &resp, nil
}

// DeleteEvent removes the event and its seats; the repository deletes both in
// one transaction. Tickets are kept for booking history.
func (s *service) DeleteEvent(ctx context.Context, id string) error {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	if err := s.repo.Delete(ctx, eventID); err != nil {
		return err
	}

	// Seats are already gone; this drops the cached seat map for the event.
	if s.seatService != nil {
		if err := s.seatService.ClearSeats(ctx, id); err != nil {
			s.log.WarnContext(ctx, "failed to drop seat cache for deleted event",
				"event_id", id, "error", err)
		}
	}

	s.invalidateUpcomingCache(ctx)
	s.log.InfoContext(ctx, "event deleted", "event_id", id)
	return nil
}

func (s *service) invalidateUpcomingCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.Delete(ctx, upcomingCacheKey); err != nil {
		s.log.WarnContext(ctx, "event cache invalidation failed", "error", err)
	}
}

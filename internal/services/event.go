package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventhub/internal/domain"
)

type eventService struct {
	eventRepo domain.EventRepository
	userRepo  domain.UserRepository
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, userRepo domain.UserRepository) domain.EventService {
	return &eventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) error {
	if event.OrganizerID == "" {
		return domain.ErrInvalidInput
	}

	organizer, err := s.userRepo.GetByID(ctx, event.OrganizerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrOrganizerNotVerified
		}
		return fmt.Errorf("get organizer: %w", err)
	}
	if organizer.Role != domain.RoleOrganizer || !organizer.Verified {
		return domain.ErrOrganizerNotVerified
	}

	// New events always start pending with every seat open, regardless of
	// what the caller sent.
	event.Status = domain.EventPending
	event.AvailableSlots = event.TotalSlots
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) List(ctx context.Context, onlyApproved bool) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx, onlyApproved)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) Approve(ctx context.Context, id string) error {
	if err := s.eventRepo.Approve(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("approve event: %w", err)
	}
	return nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

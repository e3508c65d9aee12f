package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventhub/internal/domain"
)

type registrationService struct {
	eventRepo    domain.EventRepository
	regRepo      domain.RegistrationRepository
	emailService domain.EmailService
	logger       *slog.Logger
}

// NewRegistrationService creates a RegistrationService. emailService may be
// nil; confirmation emails are then skipped.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	regRepo domain.RegistrationRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:    eventRepo,
		regRepo:      regRepo,
		emailService: emailService,
		logger:       logger,
	}
}

// Register reserves a seat with a single conditional update on the event and
// then records the registration. The duplicate check below and the reserve
// are two separate store operations; the window between them is a known
// limitation, bounded by the conditional update never oversubscribing seats.
func (s *registrationService) Register(ctx context.Context, studentID, eventID string) (*domain.Registration, error) {
	if _, err := s.regRepo.GetActiveByStudentAndEvent(ctx, studentID, eventID); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get active registration: %w", err)
	}

	if err := s.eventRepo.ReserveSlot(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrEventFull) {
			return nil, domain.ErrEventFull
		}
		return nil, fmt.Errorf("reserve slot: %w", err)
	}

	now := time.Now()
	reg := domain.NewRegistration(studentID, eventID, now, now)
	if err := s.regRepo.Create(ctx, reg); err != nil {
		// A reserved seat must never persist without a registration record;
		// give the slot back before reporting the failure.
		if relErr := s.eventRepo.ReleaseSlot(ctx, eventID); relErr != nil {
			s.logger.Error("release slot after failed registration insert",
				"eventID", eventID, "studentID", studentID, "err", relErr)
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.sendConfirmation(ctx, studentID, eventID)
	return reg, nil
}

// Unregister releases the seat and marks the registration removed. The slot
// is always returned; capacity limits are not re-validated. A registration
// whose status is no longer "registered" is treated as absent, so a second
// unregister of the same id reports ErrNotFound.
func (s *registrationService) Unregister(ctx context.Context, registrationID string) error {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}
	if reg.Status != domain.RegistrationRegistered {
		return domain.ErrNotFound
	}

	if err := s.eventRepo.ReleaseSlot(ctx, reg.EventID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("release slot: %w", err)
	}
	if err := s.regRepo.UpdateStatus(ctx, registrationID, domain.RegistrationRemoved); err != nil {
		return fmt.Errorf("mark registration removed: %w", err)
	}
	return nil
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	regs, err := s.regRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return regs, nil
}

// sendConfirmation emails the student about the registration, best effort.
func (s *registrationService) sendConfirmation(ctx context.Context, studentID, eventID string) {
	if s.emailService == nil {
		return
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		s.logger.Warn("load event for confirmation email", "eventID", eventID, "err", err)
		return
	}
	data := &domain.RegistrationEmailData{StudentID: studentID, Event: event}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.Warn("send registration confirmation", "eventID", eventID, "studentID", studentID, "err", err)
	}
}

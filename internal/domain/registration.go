package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for registration operations.
var ErrAlreadyRegistered = errors.New("already registered for this event")

// RegistrationStatus represents the lifecycle state of a registration.
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "registered"
	RegistrationRemoved    RegistrationStatus = "removed"
	RegistrationWaitlisted RegistrationStatus = "waitlisted"
)

// Registration links a student to an event.
// Invariant: at most one registration with status "registered" exists per
// (student, event) pair at any time.
// swagger:model Registration
type Registration struct {
	ID        string             `json:"id"`
	StudentID string             `json:"studentId"`
	EventID   string             `json:"eventId"`
	Status    RegistrationStatus `json:"status"`
	MsgCount  int                `json:"msgCount"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// NewRegistration returns a new Registration with status "registered".
// ID is typically set by the repository on create.
func NewRegistration(studentID, eventID string, createdAt, updatedAt time.Time) *Registration {
	return &Registration{
		StudentID: studentID,
		EventID:   eventID,
		Status:    RegistrationRegistered,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	// GetActiveByStudentAndEvent returns the registration with status
	// "registered" for the pair, or ErrNotFound.
	GetActiveByStudentAndEvent(ctx context.Context, studentID, eventID string) (*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	UpdateStatus(ctx context.Context, id string, status RegistrationStatus) error
}

// RegistrationService defines the seat reservation protocol.
type RegistrationService interface {
	// Register reserves a seat and records the registration. Returns
	// ErrAlreadyRegistered for an active duplicate and ErrEventFull when
	// no seat could be reserved.
	Register(ctx context.Context, studentID, eventID string) (*Registration, error)
	// Unregister releases the seat and marks the registration removed.
	// The slot is always returned; capacity is not re-validated. Returns
	// ErrNotFound when the registration is absent or no longer active.
	Unregister(ctx context.Context, registrationID string) error
	ListByEvent(ctx context.Context, eventID string) ([]*Registration, error)
}

package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for event operations.
var (
	// ErrEventFull is returned when a seat cannot be reserved because the
	// event has no available slots or is not approved. The conditional
	// update cannot tell the two cases apart and neither mutates state.
	ErrEventFull = errors.New("event is full or not approved")

	ErrEventNotApproved     = errors.New("event is not approved")
	ErrOrganizerNotVerified = errors.New("organizer must be a verified organizer")
)

// EventStatus represents the approval state of an event.
type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventApproved EventStatus = "approved"
	EventRejected EventStatus = "rejected"
)

// Event represents an event with a fixed seat capacity.
// Invariant: 0 <= AvailableSlots <= TotalSlots. AvailableSlots is only
// mutated through ReserveSlot and ReleaseSlot.
// swagger:model Event
type Event struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Date           time.Time   `json:"date"`
	Location       string      `json:"location"`
	TotalSlots     int         `json:"totalSlots"`
	AvailableSlots int         `json:"availableSlots"`
	Status         EventStatus `json:"status"`
	IsPaid         bool        `json:"isPaid"`
	Price          *float64    `json:"price,omitempty"`
	OrganizerID    string      `json:"organizerId"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// NewEvent returns a new pending Event with all slots available.
// ID is typically set by the repository on create.
func NewEvent(name, description string, date time.Time, location string, totalSlots int, isPaid bool, price *float64, organizerID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:           name,
		Description:    description,
		Date:           date,
		Location:       location,
		TotalSlots:     totalSlots,
		AvailableSlots: totalSlots,
		Status:         EventPending,
		IsPaid:         isPaid,
		Price:          price,
		OrganizerID:    organizerID,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// List returns events sorted by date ascending. With onlyApproved it
	// returns approved events only.
	List(ctx context.Context, onlyApproved bool) ([]*Event, error)
	// Approve sets the event status to approved. Returns ErrNotFound if
	// the event does not exist.
	Approve(ctx context.Context, id string) error
	// ReserveSlot atomically decrements AvailableSlots by one, only if the
	// event is approved and has a slot left. Returns ErrEventFull when the
	// conditional update matches no row.
	ReserveSlot(ctx context.Context, id string) error
	// ReleaseSlot increments AvailableSlots by one, unconditionally.
	ReleaseSlot(ctx context.Context, id string) error
}

// EventService defines the business logic for events.
type EventService interface {
	// Create stores a new pending event. Returns ErrOrganizerNotVerified
	// unless the owner is a verified user with the organizer role.
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context, onlyApproved bool) ([]*Event, error)
	Approve(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Event, error)
}

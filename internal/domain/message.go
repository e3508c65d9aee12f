package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for chat message operations.
var ErrMessageLimit = errors.New("message limit reached for students")

// StudentMessageLimit is the maximum number of persisted student messages a
// sender may have per event before further messages are rejected.
const StudentMessageLimit = 2

// MessageType distinguishes organizer announcements from student messages.
type MessageType string

const (
	MessageAnnouncement MessageType = "announcement"
	MessageStudent      MessageType = "student"
)

// Message represents a persisted chat message for an event.
// swagger:model Message
type Message struct {
	ID          string      `json:"id"`
	SenderID    string      `json:"senderId"`
	EventID     string      `json:"eventId"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"messageType"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NewMessage returns a new Message. ID is typically set by the repository on create.
func NewMessage(senderID, eventID, content string, messageType MessageType, createdAt time.Time) *Message {
	return &Message{
		SenderID:    senderID,
		EventID:     eventID,
		Content:     content,
		MessageType: messageType,
		CreatedAt:   createdAt,
	}
}

// DecideMessage applies the role-based message policy. Organizers always post
// announcements with no cap. Everyone else posts student messages, allowed
// only while priorStudentCount is below StudentMessageLimit.
func DecideMessage(role Role, priorStudentCount int) (allowed bool, messageType MessageType) {
	if role == RoleOrganizer {
		return true, MessageAnnouncement
	}
	return priorStudentCount < StudentMessageLimit, MessageStudent
}

// MessageRepository defines storage operations for chat messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error
	// CountStudentMessages counts persisted student-typed messages by the
	// sender for the event.
	CountStudentMessages(ctx context.Context, eventID, senderID string) (int, error)
	// ListByEventID returns the event's messages, oldest first.
	ListByEventID(ctx context.Context, eventID string) ([]*Message, error)
}

// MessageService defines the business logic for posting and reading chat messages.
type MessageService interface {
	// Post persists a message after applying the role policy. Returns
	// ErrMessageLimit when the sender has exhausted the student cap.
	Post(ctx context.Context, eventID, senderID string, role Role, content string) (*Message, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Message, error)
}

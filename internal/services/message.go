package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/domain"
)

type messageService struct {
	messageRepo domain.MessageRepository
}

// NewMessageService creates a MessageService with the given repository.
func NewMessageService(messageRepo domain.MessageRepository) domain.MessageService {
	return &messageService{
		messageRepo: messageRepo,
	}
}

func (s *messageService) Post(ctx context.Context, eventID, senderID string, role domain.Role, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrInvalidInput
	}

	priorCount := 0
	if role != domain.RoleOrganizer {
		count, err := s.messageRepo.CountStudentMessages(ctx, eventID, senderID)
		if err != nil {
			return nil, fmt.Errorf("count student messages: %w", err)
		}
		priorCount = count
	}

	allowed, messageType := domain.DecideMessage(role, priorCount)
	if !allowed {
		return nil, domain.ErrMessageLimit
	}

	msg := domain.NewMessage(senderID, eventID, content, messageType, time.Now())
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

func (s *messageService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Message, error) {
	msgs, err := s.messageRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

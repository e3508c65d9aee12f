package services

import (
	"context"
	"fmt"

	"eventhub/internal/domain"
)

type emailService struct {
	userRepo domain.UserRepository
	mailer   domain.Mailer
}

// NewEmailService creates an EmailService that resolves recipient addresses
// through the user repository and delivers through the given mailer.
func NewEmailService(userRepo domain.UserRepository, mailer domain.Mailer) domain.EmailService {
	return &emailService{
		userRepo: userRepo,
		mailer:   mailer,
	}
}

func (s *emailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	student, err := s.userRepo.GetByID(ctx, data.StudentID)
	if err != nil {
		return fmt.Errorf("get student: %w", err)
	}

	subject := fmt.Sprintf("You're registered for %s", data.Event.Name)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour seat for %s on %s at %s is confirmed.\n\nSee you there!",
		student.Name, data.Event.Name, data.Event.Date.Format("Jan 2, 2006 15:04"), data.Event.Location,
	)
	html := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your seat for <strong>%s</strong> on %s at %s is confirmed.</p><p>See you there!</p>",
		student.Name, data.Event.Name, data.Event.Date.Format("Jan 2, 2006 15:04"), data.Event.Location,
	)

	if err := s.mailer.Send(student.Email, subject, html, text); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
}

func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, name, bookTitle string, dueDate time.Time) error {
	sender := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(name, email)

	subject := "Overdue book reminder"
	body := fmt.Sprintf(
		"Hello %s,\n\nThe book %q you borrowed was due on %s. Please return it to the library as soon as possible.\n\nThank you,\nThe Library Team",
		name, bookTitle, dueDate.Format("2006-01-02"))

	message := mail.NewSingleEmail(sender, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}

	logger.Debug("Overdue reminder sent", "email", email, "book", bookTitle)
	return nil
}

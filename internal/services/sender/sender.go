// Package services содержит отправку почтовых напоминаний о намазах,
// потребляемых из очереди RabbitMQ.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/prayer-tracker/internal/config"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/prayer-tracker/internal/lib/smtp"
	"github.com/magabrotheeeer/prayer-tracker/internal/models"
)

// SenderService отправляет напоминания на адрес из конфигурации.
type SenderService struct {
	transport   smtp.Mailer
	notifyEmail string
	log         *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(cfg *config.Config, log *slog.Logger, transport smtp.Mailer) *SenderService {
	return &SenderService{
		transport:   transport,
		notifyEmail: cfg.NotifyEmail,
		log:         log,
	}
}

// SendPrayerReminder отправляет письмо о приближающемся намазе.
func (s *SenderService) SendPrayerReminder(body []byte) error {
	var message models.ReminderInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{s.notifyEmail}
	subject := fmt.Sprintf("Напоминание: скоро %s", message.Prayer)
	bodyText := fmt.Sprintf("Ассаляму алейкум!\n\nНамаз %s сегодня (%s) в %s.\n\nНе забудьте отметить его в трекере.",
		message.Prayer, message.Date, message.Time)

	s.log.Info("sending prayer reminder", slog.String("prayer", message.Prayer),
		slog.String("event_id", message.EventID))

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", "error", sl.Err(err))
		return err
	}

	if _, err := wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write message", "error", sl.Err(err))
		return err
	}
	if err := wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", "error", sl.Err(err))
		return err
	}

	return client.Quit()
}

package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Okojas/MediCare-doctor-appointment/pkg/logger"
)

// Service sends transactional mail.
type Service interface {
	SendBookingConfirmation(ctx context.Context, to, patientName, date, timeOfDay string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
	logger *logger.Logger
}

// NewSMTPService returns a gomail-backed sender.
func NewSMTPService(cfg SMTPConfig, log *logger.Logger) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: log,
	}
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, to, patientName, date, timeOfDay string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your MediCare appointment is confirmed")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour appointment on %s at %s is confirmed.\n\nMediCare",
		patientName, date, timeOfDay,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}
	return nil
}

type noopService struct{}

// NewNoopService returns a sender that discards mail, used when SMTP is
// not configured.
func NewNoopService() Service {
	return noopService{}
}

func (noopService) SendBookingConfirmation(ctx context.Context, to, patientName, date, timeOfDay string) error {
	return nil
}

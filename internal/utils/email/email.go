package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/obratrack/obratrack/internal/config"
	"github.com/obratrack/obratrack/internal/models"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendDelayAlert sends the portfolio manager a summary of delayed and
// high-risk projects.
func (s *Sender) SendDelayAlert(to string, delayed []models.DelayedEntry, redCount int) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Portfolio alert: %d delayed project(s)", len(delayed))

	body := fmt.Sprintf("Portfolio schedule report for %s\n\n", time.Now().Format("2006-01-02"))
	body += fmt.Sprintf("Projects at RED risk: %d\n", redCount)
	body += fmt.Sprintf("Projects past their planned end: %d\n\n", len(delayed))
	for _, d := range delayed {
		body += fmt.Sprintf("- %s: %d days late (%s)\n", d.Name, d.DelayDays, d.RiskStatus)
	}
	body += "\nBest regards,\nObratrack"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send alert to %s: %v", to, err)
		return fmt.Errorf("failed to send alert: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

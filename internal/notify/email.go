package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/hirewire/jobboard/internal/config"
	"github.com/hirewire/jobboard/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{cfg: cfg, logger: logger}
}

// ApplicationReceived notifies an employer that someone applied to their job
func (s *Sender) ApplicationReceived(employer *models.User, job *models.Job, applicant *models.User) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{employer.Email}
	e.Subject = fmt.Sprintf("New application for %s", job.Title)

	body := fmt.Sprintf(
		"Dear %s,\n\n%s has applied to your posting %q.\n"+
			"Log in to review the application.\n"+
			"\nBest regards,\nThe Job Board",
		employer.Username, applicant.Username, job.Title,
	)
	e.Text = []byte(body)

	if err := s.send(e); err != nil {
		return fmt.Errorf("failed to send application notification: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", employer.Email, e.Subject)
	return nil
}

// Digest sends an employer the list of applications received since the last
// digest run.
func (s *Sender) Digest(employerEmail, employerName string, entries []models.ApplicationSummary) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{employerEmail}
	e.Subject = fmt.Sprintf("%d new application(s) in the last day", len(entries))

	body := fmt.Sprintf("Dear %s,\n\nApplications received in the last 24 hours:\n\n", employerName)
	for _, entry := range entries {
		body += fmt.Sprintf("  - %s applied to %q at %s\n",
			entry.Applicant, entry.JobTitle, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	body += "\nBest regards,\nThe Job Board"
	e.Text = []byte(body)

	if err := s.send(e); err != nil {
		return fmt.Errorf("failed to send digest: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", employerEmail, e.Subject)
	return nil
}

func (s *Sender) send(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	return e.Send(addr, auth)
}

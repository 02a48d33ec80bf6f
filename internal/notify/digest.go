package notify

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hirewire/jobboard/internal/models"
)

// DigestStore lists recent applications joined with job and employer.
type DigestStore interface {
	ListApplicationsCreatedSince(since time.Time) ([]models.ApplicationSummary, error)
}

// DigestSender delivers one digest mail per employer.
type DigestSender interface {
	Digest(employerEmail, employerName string, entries []models.ApplicationSummary) error
}

// Digest emails each employer a summary of applications received in the
// last 24 hours. Run is invoked on a cron schedule.
type Digest struct {
	store  DigestStore
	sender DigestSender
	logger *logrus.Logger
}

// NewDigest creates a new digest job
func NewDigest(store DigestStore, sender DigestSender, logger *logrus.Logger) *Digest {
	return &Digest{store: store, sender: sender, logger: logger}
}

// Run queries the last day's applications and mails one summary per
// employer. Send failures are logged and do not stop the sweep.
func (d *Digest) Run() {
	summaries, err := d.store.ListApplicationsCreatedSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		d.logger.Errorf("Digest query failed: %v", err)
		return
	}
	if len(summaries) == 0 {
		d.logger.Debug("Digest: no new applications")
		return
	}

	// Rows arrive ordered by employer email.
	var batch []models.ApplicationSummary
	flush := func() {
		if len(batch) == 0 {
			return
		}
		first := batch[0]
		if err := d.sender.Digest(first.EmployerEmail, first.EmployerName, batch); err != nil {
			d.logger.Errorf("Digest send to %s failed: %v", first.EmployerEmail, err)
		}
		batch = nil
	}
	for _, s := range summaries {
		if len(batch) > 0 && batch[0].EmployerEmail != s.EmployerEmail {
			flush()
		}
		batch = append(batch, s)
	}
	flush()

	d.logger.Infof("Digest complete: %d application(s)", len(summaries))
}

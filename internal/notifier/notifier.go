package notifier

import (
	"context"
	"fmt"

	"github.com/obratrack/obratrack/internal/analytics"
	"github.com/obratrack/obratrack/internal/config"
	"github.com/obratrack/obratrack/internal/models"
	"github.com/obratrack/obratrack/internal/service"
	"github.com/obratrack/obratrack/internal/utils/email"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Notifier runs the scheduled delay-alert job: it recomputes the unfiltered
// portfolio dashboard and emails the configured address when projects are
// behind schedule.
type Notifier struct {
	cron   *cron.Cron
	svc    *service.Service
	sender *email.Sender
	cfg    *config.Config
	log    *logrus.Logger
}

// NewNotifier creates a notifier; Start schedules and runs it.
func NewNotifier(svc *service.Service, sender *email.Sender, cfg *config.Config, log *logrus.Logger) *Notifier {
	return &Notifier{
		cron:   cron.New(),
		svc:    svc,
		sender: sender,
		cfg:    cfg,
		log:    log,
	}
}

// Start registers the cron entry and starts the scheduler
func (n *Notifier) Start() error {
	if n.cfg.AlertEmail == "" {
		n.log.Info("ALERT_EMAIL not set, delay alerts disabled")
		return nil
	}
	if _, err := n.cron.AddFunc(n.cfg.AlertSchedule, n.run); err != nil {
		return fmt.Errorf("failed to schedule delay alerts: %w", err)
	}
	n.cron.Start()
	n.log.Infof("Delay alerts scheduled: %s", n.cfg.AlertSchedule)
	return nil
}

// Stop stops the scheduler, waiting for a running job to finish
func (n *Notifier) Stop() {
	<-n.cron.Stop().Done()
}

func (n *Notifier) run() {
	dashboard, err := n.svc.Dashboard(context.Background(), analytics.Facets{})
	if err != nil {
		n.log.Errorf("Delay alert computation failed: %v", err)
		return
	}

	delayed := dashboard.Charts.Delayed
	redCount := dashboard.Summary.ByRisk[models.RiskRed]
	if len(delayed) == 0 && redCount == 0 {
		n.log.Debug("No delayed or RED projects, skipping alert")
		return
	}

	if err := n.sender.SendDelayAlert(n.cfg.AlertEmail, delayed, redCount); err != nil {
		n.log.Errorf("Delay alert delivery failed: %v", err)
	}
}

package notify

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storedesk/internal/domain"
	"github.com/vladislavdragonenkov/storedesk/internal/service/lifecycle"
)

// LogNotifier пишет сводку срочности в лог.
type LogNotifier struct {
	logger *log.Entry
}

var _ domain.UrgencyNotifier = (*LogNotifier)(nil)

// NewLogNotifier создаёт LogNotifier. logger=nil означает стандартный logger.
func NewLogNotifier(logger *log.Entry) *LogNotifier {
	if logger == nil {
		logger = log.WithField("component", "urgency-log-notifier")
	}
	return &LogNotifier{logger: logger}
}

// Notify логирует отчёт на уровне warning.
func (n *LogNotifier) Notify(_ context.Context, report domain.UrgencyReport) error {
	n.logger.WithFields(log.Fields{
		"overdue":      report.Overdue,
		"due_today":    report.DueToday,
		"due_tomorrow": report.DueTomorrow,
		"pending":      report.TotalPending,
	}).Warn(lifecycle.Summary(report))
	return nil
}

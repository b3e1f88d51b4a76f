package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fokus/internal/amqp"
	"fokus/internal/core"
	"fokus/internal/log"
	"fokus/internal/store"
)

// Publisher is the outbound side of the reminder: messages land on the
// alerts queue and reach the user through whatever consumes it.
type Publisher interface {
	PublishAlert(ctx context.Context, msg *amqp.AlertMessage) error
}

// ReminderScheduler fires the daily budget reminder at the wall-clock time
// held in the document's notification settings. It reads the store directly
// so it can run in a separate process from the API server.
type ReminderScheduler struct {
	store     store.DocumentStore
	publisher Publisher
	clock     func() time.Time
	logger    *log.Logger
	interval  time.Duration

	// statePath holds the last-fired date on disk so a restart within the
	// same day cannot re-fire the reminder. Empty disables persistence.
	statePath string
	lastFired core.Date
}

func NewReminderScheduler(st store.DocumentStore, publisher Publisher, interval time.Duration, statePath string, logger *log.Logger) *ReminderScheduler {
	if logger == nil {
		logger = log.Nop()
	}
	r := &ReminderScheduler{
		store:     st,
		publisher: publisher,
		clock:     time.Now,
		interval:  interval,
		statePath: statePath,
		logger:    logger.WithComponent(log.ComponentWorker),
	}
	r.lastFired = r.loadLastFired()
	return r
}

// Run polls until the context is cancelled.
func (r *ReminderScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("Reminder scheduler started", "interval", r.interval.String())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *ReminderScheduler) tick(ctx context.Context) {
	now := r.clock()

	raw, err := r.store.Load(ctx)
	if err != nil {
		// A missing document just means nothing to remind about yet.
		if !errors.Is(err, store.ErrNoDocument) {
			r.logger.WarnContext(ctx, "Failed to load document", log.FieldError, err)
		}
		return
	}

	doc, err := core.MigrateDocument(raw, core.DateOf(now))
	if err != nil {
		r.logger.WarnContext(ctx, "Skipping reminder, document unreadable", log.FieldError, err)
		return
	}

	if !r.due(now, doc.Settings.Notification) {
		return
	}

	bounds := core.Classify(now)
	spent := core.TotalsByType(doc.Transactions, bounds, core.WindowMonth).Expense
	report := core.EvaluateBudget(doc.Settings.MonthlyLimit, spent)

	msg := amqp.NewReminder(string(report.Status),
		report.Limit.Cents, report.Spent.Cents, report.Remaining.Cents,
		reminderNote(report.Status, doc.Settings.Motivation))
	if err := r.publisher.PublishAlert(ctx, msg); err != nil {
		r.logger.ErrorContext(ctx, "Failed to publish reminder", log.FieldError, err)
		return
	}

	r.rememberFired(core.DateOf(now))
	r.logger.InfoContext(ctx, "Reminder published",
		log.FieldBudget, string(report.Status),
		"spent_cents", report.Spent.Cents)
}

// due reports whether the reminder should fire now: notifications on, the
// configured time reached, and not already fired today.
func (r *ReminderScheduler) due(now time.Time, n core.Notification) bool {
	if !n.Enabled {
		return false
	}
	if err := n.Validate(); err != nil {
		return false
	}
	if core.DateOf(now) == r.lastFired {
		return false
	}
	return now.Format("15:04") >= n.Time
}

func (r *ReminderScheduler) loadLastFired() core.Date {
	if r.statePath == "" {
		return ""
	}
	raw, err := os.ReadFile(r.statePath)
	if err != nil {
		return ""
	}
	d := core.Date(strings.TrimSpace(string(raw)))
	if d.Validate() != nil {
		return ""
	}
	return d
}

func (r *ReminderScheduler) rememberFired(day core.Date) {
	r.lastFired = day
	if r.statePath == "" {
		return
	}
	if dir := filepath.Dir(r.statePath); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}
	if err := os.WriteFile(r.statePath, []byte(day+"\n"), 0644); err != nil {
		r.logger.Warn("Failed to persist last-fired date", log.FieldError, err, "path", r.statePath)
	}
}

func reminderNote(status core.BudgetStatus, m core.Motivation) string {
	switch status {
	case core.StatusWarning:
		return m.Warning
	case core.StatusDanger:
		return m.Danger
	case core.StatusUnconfigured:
		return "No monthly limit set."
	default:
		return "Spending on track."
	}
}

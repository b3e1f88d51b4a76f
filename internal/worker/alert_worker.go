// Package worker consumes budget alerts and drives the daily reminder.
package worker

import (
	"fokus/internal/amqp"
	"fokus/internal/log"
)

// AlertWorker handles budget alert messages from the queue. Delivery today
// is a structured log line; a push or mail channel would slot in here.
type AlertWorker struct {
	logger *log.Logger
}

func NewAlertWorker(logger *log.Logger) *AlertWorker {
	if logger == nil {
		logger = log.Nop()
	}
	return &AlertWorker{
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleAlert processes a single alert message.
func (w *AlertWorker) HandleAlert(msg *amqp.AlertMessage) error {
	switch msg.Kind {
	case amqp.KindReminder:
		w.logger.Info("Daily reminder",
			log.FieldBudget, msg.Status,
			"spent_cents", msg.SpentCents,
			"remaining_cents", msg.RemainingCents,
			"note", msg.Note)
	default:
		w.logger.Warn("Budget alert",
			log.FieldBudget, msg.Status,
			"limit_cents", msg.LimitCents,
			"spent_cents", msg.SpentCents,
			"remaining_cents", msg.RemainingCents,
			"note", msg.Note)
	}
	return nil
}

package amqp

import (
	"encoding/json"
	"time"
)

const (
	KindBudgetAlert = "budget_alert"
	KindReminder    = "daily_reminder"
)

// AlertMessage is published when the budget leaves the safe tier and by the
// daily reminder. The worker only needs the evaluated numbers, not the
// ledger itself.
type AlertMessage struct {
	Kind           string    `json:"kind"`
	Status         string    `json:"status"`
	LimitCents     int64     `json:"limit_cents"`
	SpentCents     int64     `json:"spent_cents"`
	RemainingCents int64     `json:"remaining_cents"`
	Note           string    `json:"note"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewBudgetAlert creates an alert message carrying the motivation line that
// belongs to the tier.
func NewBudgetAlert(status string, limit, spent, remaining int64, note string) *AlertMessage {
	return &AlertMessage{
		Kind:           KindBudgetAlert,
		Status:         status,
		LimitCents:     limit,
		SpentCents:     spent,
		RemainingCents: remaining,
		Note:           note,
		Timestamp:      time.Now(),
	}
}

// NewReminder creates the daily reminder message.
func NewReminder(status string, limit, spent, remaining int64, note string) *AlertMessage {
	m := NewBudgetAlert(status, limit, spent, remaining, note)
	m.Kind = KindReminder
	return m
}

// ToJSON converts the message to JSON bytes
func (m *AlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AlertMessageFromJSON creates a message from JSON bytes
func AlertMessageFromJSON(data []byte) (*AlertMessage, error) {
	var msg AlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

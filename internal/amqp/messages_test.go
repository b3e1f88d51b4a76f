package amqp

import (
	"testing"
	"time"
)

func TestNewBudgetAlert(t *testing.T) {
	msg := NewBudgetAlert("danger", 1000_00, 950_00, 50_00, "STOP!")

	if msg.Kind != KindBudgetAlert {
		t.Fatalf("kind = %s", msg.Kind)
	}
	if msg.Status != "danger" || msg.RemainingCents != 50_00 {
		t.Fatalf("msg = %+v", msg)
	}
	if msg.Timestamp.IsZero() || time.Since(msg.Timestamp) > time.Second {
		t.Fatal("timestamp should be recent")
	}
}

func TestAlertMessageJSON(t *testing.T) {
	msg := &AlertMessage{
		Kind:           KindReminder,
		Status:         "warning",
		LimitCents:     1000_00,
		SpentCents:     750_00,
		RemainingCents: 250_00,
		Note:           "Careful",
		Timestamp:      time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	parsed, err := AlertMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if parsed.Kind != msg.Kind || parsed.Status != msg.Status ||
		parsed.RemainingCents != msg.RemainingCents || !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Fatalf("round trip mismatch: %+v", parsed)
	}
}

func TestAlertMessageInvalidJSON(t *testing.T) {
	if _, err := AlertMessageFromJSON([]byte(`{"limit_cents": "nope"}`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

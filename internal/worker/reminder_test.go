package worker

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"fokus/internal/amqp"
	"fokus/internal/core"
	"fokus/internal/log"
	"fokus/internal/store/memory"
)

type capturePublisher struct {
	messages []*amqp.AlertMessage
}

func (p *capturePublisher) PublishAlert(_ context.Context, msg *amqp.AlertMessage) error {
	p.messages = append(p.messages, msg)
	return nil
}

func seedDocument(t *testing.T, st *memory.Store, enabled bool, at string, limitCents int64) {
	t.Helper()

	doc := core.DefaultDocument("2024-03-15")
	doc.Settings.Notification = core.Notification{Enabled: enabled, Time: at}
	doc.Settings.MonthlyLimit = core.Money{Cents: limitCents}

	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	if err := st.Save(context.Background(), raw); err != nil {
		t.Fatalf("seed store: %v", err)
	}
}

func TestReminderDue(t *testing.T) {
	at := func(hhmm string) time.Time {
		parsed, err := time.Parse("2006-01-02 15:04", "2024-03-15 "+hhmm)
		if err != nil {
			t.Fatalf("parse %q: %v", hhmm, err)
		}
		return parsed
	}

	tests := []struct {
		name  string
		n     core.Notification
		now   time.Time
		fired core.Date
		want  bool
	}{
		{"before configured time", core.Notification{Enabled: true, Time: "09:00"}, at("08:59"), "", false},
		{"at configured time", core.Notification{Enabled: true, Time: "09:00"}, at("09:00"), "", true},
		{"after configured time", core.Notification{Enabled: true, Time: "09:00"}, at("18:00"), "", true},
		{"disabled", core.Notification{Enabled: false, Time: "09:00"}, at("10:00"), "", false},
		{"invalid time setting", core.Notification{Enabled: true, Time: "9am"}, at("10:00"), "", false},
		{"already fired today", core.Notification{Enabled: true, Time: "09:00"}, at("10:00"), "2024-03-15", false},
		{"fired yesterday", core.Notification{Enabled: true, Time: "09:00"}, at("10:00"), "2024-03-14", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &ReminderScheduler{lastFired: tt.fired}
			if got := r.due(tt.now, tt.n); got != tt.want {
				t.Errorf("due() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTickPublishesOncePerDay(t *testing.T) {
	st := memory.New()
	seedDocument(t, st, true, "09:00", 100000)

	pub := &capturePublisher{}
	r := NewReminderScheduler(st, pub, time.Minute, "", log.Nop())
	r.clock = func() time.Time {
		return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	}

	r.tick(context.Background())
	r.tick(context.Background())

	if len(pub.messages) != 1 {
		t.Fatalf("published %d reminders, want 1", len(pub.messages))
	}
	msg := pub.messages[0]
	if msg.Kind != amqp.KindReminder {
		t.Errorf("kind = %q, want %q", msg.Kind, amqp.KindReminder)
	}
	if msg.Status != string(core.StatusSafe) {
		t.Errorf("status = %q, want safe", msg.Status)
	}
	if msg.LimitCents != 100000 {
		t.Errorf("limit = %d, want 100000", msg.LimitCents)
	}
}

func TestLastFiredSurvivesRestart(t *testing.T) {
	st := memory.New()
	seedDocument(t, st, true, "09:00", 100000)
	statePath := filepath.Join(t.TempDir(), "reminder.state")
	clock := func() time.Time {
		return time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	}

	pub := &capturePublisher{}
	r := NewReminderScheduler(st, pub, time.Minute, statePath, log.Nop())
	r.clock = clock
	r.tick(context.Background())
	if len(pub.messages) != 1 {
		t.Fatalf("published %d reminders, want 1", len(pub.messages))
	}

	// A fresh scheduler on the same state path must not re-fire today.
	restarted := NewReminderScheduler(st, pub, time.Minute, statePath, log.Nop())
	restarted.clock = clock
	restarted.tick(context.Background())
	if len(pub.messages) != 1 {
		t.Fatalf("published %d reminders after restart, want 1", len(pub.messages))
	}

	// The next day it fires again.
	restarted.clock = func() time.Time {
		return time.Date(2024, 3, 16, 9, 30, 0, 0, time.UTC)
	}
	restarted.tick(context.Background())
	if len(pub.messages) != 2 {
		t.Fatalf("published %d reminders next day, want 2", len(pub.messages))
	}
}

func TestTickSkipsWhenDisabled(t *testing.T) {
	st := memory.New()
	seedDocument(t, st, false, "09:00", 0)

	pub := &capturePublisher{}
	r := NewReminderScheduler(st, pub, time.Minute, "", log.Nop())
	r.clock = func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}

	r.tick(context.Background())
	if len(pub.messages) != 0 {
		t.Errorf("published %d reminders, want 0", len(pub.messages))
	}
}

func TestTickSkipsEmptyStore(t *testing.T) {
	pub := &capturePublisher{}
	r := NewReminderScheduler(memory.New(), pub, time.Minute, "", log.Nop())

	r.tick(context.Background())
	if len(pub.messages) != 0 {
		t.Errorf("published %d reminders, want 0", len(pub.messages))
	}
}

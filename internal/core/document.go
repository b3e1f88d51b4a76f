package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DocumentVersion is written into every saved document. The original data
// had no version field, so version 0 simply means "old document" and is
// healed by migration like any other missing field.
const DocumentVersion = 1

// ErrCorruptDocument marks persisted data that does not parse as a document.
// The handling policy is a full reset to defaults plus re-save, never a
// partial repair.
var ErrCorruptDocument = errors.New("corrupt document")

type (
	// Settings is the mutable configuration block of the document.
	// Categories keep insertion order, which is also display order.
	Settings struct {
		MonthlyLimit Money        `json:"monthly_limit"`
		Motivation   Motivation   `json:"motivation"`
		Categories   []string     `json:"categories"`
		Notification Notification `json:"notification"`

		extra map[string]json.RawMessage
	}

	// Document is the whole persisted state: one aggregate loaded wholesale
	// and saved wholesale after every mutation. Balance is maintained
	// incrementally on each append, never recomputed lazily.
	Document struct {
		Version      int           `json:"version"`
		Balance      Money         `json:"balance"`
		Dream        Dream         `json:"dream"`
		Settings     Settings      `json:"settings"`
		Transactions []Transaction `json:"transactions"`

		extra map[string]json.RawMessage
	}
)

// DefaultDocument returns the state of a first run: zero balance, a
// placeholder dream due today, no limit, seed categories and notifications
// off.
func DefaultDocument(today Date) *Document {
	return &Document{
		Version: DocumentVersion,
		Balance: Money{},
		Dream: Dream{
			Title:        "Dream big!",
			TargetAmount: Money{},
			TargetDate:   today,
		},
		Settings: Settings{
			MonthlyLimit: Money{},
			Motivation: Motivation{
				Warning: "Careful, you are spending a lot!",
				Danger:  "STOP! You are overspending!",
			},
			Categories: []string{
				"Food",
				"Transport",
				"Bills",
				"Rent",
				"Entertainment",
				"Shopping",
				"Other",
			},
			Notification: Notification{Enabled: false, Time: "09:00"},
		},
		Transactions: []Transaction{},
	}
}

// MigrateDocument decodes a persisted document on top of the defaults.
// Any nested field absent from the raw data keeps its default, which is the
// shallow-merge migration older documents rely on after a schema addition.
// Unknown keys are carried along untouched and survive the next save.
func MigrateDocument(raw []byte, today Date) (*Document, error) {
	doc := DefaultDocument(today)
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if doc.Version == 0 {
		doc.Version = DocumentVersion
	}
	if doc.Transactions == nil {
		doc.Transactions = []Transaction{}
	}
	return doc, nil
}

func (d *Document) UnmarshalJSON(data []byte) error {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, raw := range fields {
		var err error
		switch key {
		case "version":
			err = json.Unmarshal(raw, &d.Version)
		case "balance":
			err = json.Unmarshal(raw, &d.Balance)
		case "dream":
			err = json.Unmarshal(raw, &d.Dream)
		case "settings":
			err = json.Unmarshal(raw, &d.Settings)
		case "transactions":
			err = json.Unmarshal(raw, &d.Transactions)
		default:
			if d.extra == nil {
				d.extra = make(map[string]json.RawMessage)
			}
			d.extra[key] = raw
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.extra)+5)
	for key, raw := range d.extra {
		out[key] = raw
	}
	if err := putFields(out, map[string]any{
		"version":      d.Version,
		"balance":      d.Balance,
		"dream":        d.Dream,
		"settings":     &d.Settings,
		"transactions": d.Transactions,
	}); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, raw := range fields {
		var err error
		switch key {
		case "monthly_limit":
			err = json.Unmarshal(raw, &s.MonthlyLimit)
		case "motivation":
			err = json.Unmarshal(raw, &s.Motivation)
		case "categories":
			err = json.Unmarshal(raw, &s.Categories)
		case "notification":
			err = json.Unmarshal(raw, &s.Notification)
		default:
			if s.extra == nil {
				s.extra = make(map[string]json.RawMessage)
			}
			s.extra[key] = raw
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Settings) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.extra)+4)
	for key, raw := range s.extra {
		out[key] = raw
	}
	if err := putFields(out, map[string]any{
		"monthly_limit": s.MonthlyLimit,
		"motivation":    s.Motivation,
		"categories":    s.Categories,
		"notification":  s.Notification,
	}); err != nil {
		return nil, err
	}
	return json.Marshal(out)
}

func putFields(dst map[string]json.RawMessage, fields map[string]any) error {
	for key, value := range fields {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", key, err)
		}
		dst[key] = raw
	}
	return nil
}

// HasCategory reports whether name is already present (exact match).
func (s *Settings) HasCategory(name string) bool {
	for _, c := range s.Categories {
		if c == name {
			return true
		}
	}
	return false
}

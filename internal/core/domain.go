package core

import (
	"errors"
	"strings"
)

const (
	Income  TxType = "income"
	Expense TxType = "expense"
)

// IncomeCategory is the bucket income transactions land in when the caller
// supplies no category of their own.
const IncomeCategory = "Income"

type (
	TxType string

	// Money is an amount in integer cents. Balances may go negative;
	// transaction amounts never do.
	Money struct {
		Cents int64 `json:"cents"`
	}

	// Transaction is a single ledger entry. Once recorded it is immutable:
	// there is no update or delete path anywhere in the engine.
	Transaction struct {
		ID       string `json:"id"`
		Type     TxType `json:"type"`
		Amount   Money  `json:"amount"`
		Category string `json:"category"`
		Note     string `json:"note"`
		Date     Date   `json:"date"`
	}

	// Dream is the savings goal: a title, a target amount and a target date.
	// It is replaced wholesale; there is no partial-field update.
	Dream struct {
		Title        string `json:"title"`
		TargetAmount Money  `json:"target_amount"`
		TargetDate   Date   `json:"target_date"`
	}

	// Motivation holds the messages shown when the budget enters the
	// warning and danger tiers.
	Motivation struct {
		Warning string `json:"warning"`
		Danger  string `json:"danger"`
	}

	// Notification is the daily reminder preference.
	Notification struct {
		Enabled bool   `json:"enabled"`
		Time    string `json:"time"` // HH:MM
	}
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrMissingDate       = errors.New("missing date")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidLimit      = errors.New("invalid limit")
	ErrInvalidDream      = errors.New("invalid dream")
	ErrInvalidTime       = errors.New("invalid time")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrLastCategory      = errors.New("cannot delete the last category")
	ErrCategoryIndex     = errors.New("category index out of range")
)

func (t TxType) IsValid() bool {
	return t == Income || t == Expense
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks a transaction before it is recorded. The amount is checked
// before the date so an amount error wins when both are bad.
func (tx Transaction) Validate() error {
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if tx.Date == "" {
		return ErrMissingDate
	}
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	if !tx.Type.IsValid() {
		return errors.New("invalid transaction type")
	}
	return nil
}

func (d Dream) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrInvalidDream
	}
	if d.TargetAmount.Cents < 0 {
		return ErrInvalidDream
	}
	if d.TargetDate == "" {
		return ErrInvalidDream
	}
	if err := d.TargetDate.Validate(); err != nil {
		return ErrInvalidDream
	}
	return nil
}

func (n Notification) Validate() error {
	return ValidateClockTime(n.Time)
}

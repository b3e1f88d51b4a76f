// Package session owns the in-memory state document and is the only
// mutation path into it. Every operation validates first, mutates second and
// persists third; a failed save is reported but never rolls the mutation
// back, so the worst outcome of broken storage is an in-memory-only session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"fokus/internal/amqp"
	"fokus/internal/core"
	"fokus/internal/log"
	"fokus/internal/store"
)

// Clock supplies "now" so window classification stays testable.
type Clock func() time.Time

// AlertPublisher is the outbound port for budget alerts. A nil publisher
// disables alerting without touching the call sites.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, msg *amqp.AlertMessage) error
}

// Session is the single writer of the document. The model is logically
// single-user, but the HTTP surface is concurrent, so a mutex serializes
// operations.
type Session struct {
	mu     sync.Mutex
	doc    *core.Document
	store  store.DocumentStore
	clock  Clock
	logger *log.Logger
	alerts AlertPublisher
	lastID int64
}

func New(st store.DocumentStore, clock Clock, logger *log.Logger, alerts AlertPublisher) *Session {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = log.Nop()
	}
	logger = logger.WithComponent(log.ComponentSession)
	return &Session{
		store:  st,
		clock:  clock,
		logger: logger,
		alerts: alerts,
	}
}

// Load reads the persisted document. First run installs defaults and saves
// them; corrupt data resets to defaults with an immediate re-save, never a
// partial repair.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := core.DateOf(s.clock())

	raw, err := s.store.Load(ctx)
	if errors.Is(err, store.ErrNoDocument) {
		s.doc = core.DefaultDocument(today)
		return s.persist(ctx)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrPersistence, err)
	}

	doc, err := core.MigrateDocument(raw, today)
	if err != nil {
		s.logger.WarnContext(ctx, "Persisted document is corrupt, resetting to defaults", "error", err)
		s.doc = core.DefaultDocument(today)
		return s.persist(ctx)
	}
	s.doc = doc
	return nil
}

// RecordTransaction validates and appends a ledger entry, updating the
// balance atomically with the append. This is the only way transactions
// enter the system; they are never edited or deleted afterwards.
func (s *Session) RecordTransaction(ctx context.Context, typ core.TxType, amount core.Money, category, note string, date core.Date) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := core.Transaction{
		ID:       s.nextID(),
		Type:     typ,
		Amount:   amount,
		Category: category,
		Note:     strings.TrimSpace(note),
		Date:     date,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	bounds := core.Classify(s.clock())
	before := s.monthBudget(bounds)

	s.doc.Transactions = append(s.doc.Transactions, tx)
	if typ == core.Income {
		s.doc.Balance = s.doc.Balance.Add(amount)
	} else {
		s.doc.Balance = s.doc.Balance.Sub(amount)
	}

	if typ == core.Expense {
		s.maybeAlert(ctx, before, s.monthBudget(bounds))
	}

	s.logger.InfoContext(ctx, "Transaction recorded",
		"id", tx.ID,
		"type", string(tx.Type),
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category,
		"balance_cents", s.doc.Balance.Cents)

	return tx, s.persist(ctx)
}

// SetDream replaces the savings goal wholesale.
func (s *Session) SetDream(ctx context.Context, dream core.Dream) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dream.Title = strings.TrimSpace(dream.Title)
	if err := dream.Validate(); err != nil {
		return err
	}
	s.doc.Dream = dream
	return s.persist(ctx)
}

// SetMonthlyLimit accepts zero as the "unconfigured" sentinel.
func (s *Session) SetMonthlyLimit(ctx context.Context, limit core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit.Cents < 0 {
		return core.ErrInvalidLimit
	}
	s.doc.Settings.MonthlyLimit = limit
	return s.persist(ctx)
}

func (s *Session) SetMotivation(ctx context.Context, warning, danger string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Settings.Motivation = core.Motivation{
		Warning: strings.TrimSpace(warning),
		Danger:  strings.TrimSpace(danger),
	}
	return s.persist(ctx)
}

func (s *Session) SetNotification(ctx context.Context, n core.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := n.Validate(); err != nil {
		return err
	}
	s.doc.Settings.Notification = n
	return s.persist(ctx)
}

// AddCategory trims the name and appends it. An empty name is a silent
// no-op; a duplicate is reported distinctly from "added".
func (s *Session) AddCategory(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}
	if s.doc.Settings.HasCategory(name) {
		return false, core.ErrDuplicateCategory
	}
	s.doc.Settings.Categories = append(s.doc.Settings.Categories, name)
	return true, s.persist(ctx)
}

// DeleteCategory removes the category at index and returns its name.
// The last remaining category can never be deleted.
func (s *Session) DeleteCategory(ctx context.Context, index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := s.doc.Settings.Categories
	if index < 0 || index >= len(cats) {
		return "", core.ErrCategoryIndex
	}
	if len(cats) <= 1 {
		return "", core.ErrLastCategory
	}
	name := cats[index]
	s.doc.Settings.Categories = append(cats[:index], cats[index+1:]...)
	err := s.persist(ctx)
	return name, err
}

// Reset discards everything and reinstalls defaults, persisting them
// immediately.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx); err != nil {
		s.logger.WarnContext(ctx, "Failed to delete persisted document during reset", "error", err)
	}
	s.doc = core.DefaultDocument(core.DateOf(s.clock()))
	return s.persist(ctx)
}

func (s *Session) nextID() string {
	ms := s.clock().UnixMilli()
	if ms <= s.lastID {
		ms = s.lastID + 1
	}
	s.lastID = ms
	return strconv.FormatInt(ms, 10)
}

func (s *Session) monthBudget(b core.Bounds) core.BudgetReport {
	spent := core.TotalsByType(s.doc.Transactions, b, core.WindowMonth).Expense
	return core.EvaluateBudget(s.doc.Settings.MonthlyLimit, spent)
}

// maybeAlert publishes when an expense pushes the month budget into a worse
// tier. Publish failures are logged only; alerting never blocks a mutation.
func (s *Session) maybeAlert(ctx context.Context, before, after core.BudgetReport) {
	if s.alerts == nil {
		return
	}
	if after.Status == before.Status {
		return
	}

	var note string
	switch after.Status {
	case core.StatusWarning:
		note = s.doc.Settings.Motivation.Warning
	case core.StatusDanger:
		note = s.doc.Settings.Motivation.Danger
	default:
		return
	}

	msg := amqp.NewBudgetAlert(string(after.Status),
		after.Limit.Cents, after.Spent.Cents, after.Remaining.Cents, note)
	if err := s.alerts.PublishAlert(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish budget alert",
			"status", string(after.Status), "error", err)
	}
}

func (s *Session) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.store.Save(ctx, raw); err != nil {
		s.logger.ErrorContext(ctx, "Failed to save document", "error", err)
		return fmt.Errorf("%w: %v", store.ErrPersistence, err)
	}
	return nil
}

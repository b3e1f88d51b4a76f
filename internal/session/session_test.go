package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"fokus/internal/amqp"
	"fokus/internal/core"
	"fokus/internal/store"
	"fokus/internal/store/memory"
)

// fixedClock pins "now" to a Friday so week boundaries are deterministic.
func fixedClock() time.Time {
	return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
}

type failingStore struct {
	loadErr error
	saveErr error
}

func (f *failingStore) Load(_ context.Context) ([]byte, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return nil, store.ErrNoDocument
}

func (f *failingStore) Save(_ context.Context, _ []byte) error { return f.saveErr }
func (f *failingStore) Delete(_ context.Context) error         { return nil }

type recordingPublisher struct {
	messages []*amqp.AlertMessage
}

func (p *recordingPublisher) PublishAlert(_ context.Context, msg *amqp.AlertMessage) error {
	p.messages = append(p.messages, msg)
	return nil
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s := New(memory.New(), fixedClock, nil, nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}

func TestLoadInstallsDefaults(t *testing.T) {
	s := newTestSession(t)

	if got := s.Balance(); got.Cents != 0 {
		t.Errorf("Balance = %d cents, want 0", got.Cents)
	}
	settings := s.Settings()
	if len(settings.Categories) != 7 {
		t.Errorf("default categories = %d, want 7", len(settings.Categories))
	}
	if settings.MonthlyLimit.Cents != 0 {
		t.Errorf("default monthly limit = %d, want 0", settings.MonthlyLimit.Cents)
	}
}

func TestLoadResetsCorruptDocument(t *testing.T) {
	st := memory.New()
	if err := st.Save(context.Background(), []byte("{not json")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	s := New(st, fixedClock, nil, nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	raw, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("store.Load() error = %v", err)
	}
	if _, err := core.MigrateDocument(raw, core.DateOf(fixedClock())); err != nil {
		t.Errorf("re-saved document should parse cleanly, got %v", err)
	}
}

func TestRecordTransactionUpdatesBalance(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	if _, err := s.RecordTransaction(ctx, core.Income, core.Money{Cents: 150000}, core.IncomeCategory, "salary", "2024-03-01"); err != nil {
		t.Fatalf("RecordTransaction(income) error = %v", err)
	}
	if _, err := s.RecordTransaction(ctx, core.Expense, core.Money{Cents: 4250}, "Food", "", "2024-03-15"); err != nil {
		t.Fatalf("RecordTransaction(expense) error = %v", err)
	}

	if got := s.Balance(); got.Cents != 145750 {
		t.Errorf("Balance = %d cents, want 145750", got.Cents)
	}
}

func TestRecordTransactionRejectsInvalid(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		amount core.Money
		date   core.Date
		want   error
	}{
		{"zero amount", core.Money{Cents: 0}, "2024-03-15", core.ErrInvalidAmount},
		{"negative amount", core.Money{Cents: -100}, "2024-03-15", core.ErrInvalidAmount},
		{"missing date", core.Money{Cents: 100}, "", core.ErrMissingDate},
		{"malformed date", core.Money{Cents: 100}, "15/03/2024", core.ErrInvalidDate},
		{"amount checked before date", core.Money{Cents: 0}, "", core.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.RecordTransaction(ctx, core.Expense, tt.amount, "Food", "", tt.date)
			if !errors.Is(err, tt.want) {
				t.Errorf("RecordTransaction() error = %v, want %v", err, tt.want)
			}
		})
	}

	if got := s.Balance(); got.Cents != 0 {
		t.Errorf("invalid transactions must not touch the balance, got %d cents", got.Cents)
	}
	if recent := s.Dashboard().Recent; len(recent) != 0 {
		t.Errorf("invalid transactions must not be recorded, got %d", len(recent))
	}
}

func TestRecordTransactionIDsAreMonotonic(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	seen := map[string]bool{}
	var prev string
	for i := 0; i < 5; i++ {
		tx, err := s.RecordTransaction(ctx, core.Expense, core.Money{Cents: 100}, "Food", "", "2024-03-15")
		if err != nil {
			t.Fatalf("RecordTransaction() error = %v", err)
		}
		if seen[tx.ID] {
			t.Fatalf("duplicate transaction ID %q", tx.ID)
		}
		if tx.ID <= prev && len(tx.ID) == len(prev) {
			t.Fatalf("IDs not monotonic: %q after %q", tx.ID, prev)
		}
		seen[tx.ID] = true
		prev = tx.ID
	}
}

func TestRecordTransactionSurvivesSaveFailure(t *testing.T) {
	st := &failingStore{}
	s := New(st, fixedClock, nil, nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	st.saveErr = errors.New("disk full")
	_, err := s.RecordTransaction(context.Background(), core.Income, core.Money{Cents: 5000}, core.IncomeCategory, "", "2024-03-15")
	if !errors.Is(err, store.ErrPersistence) {
		t.Fatalf("RecordTransaction() error = %v, want ErrPersistence", err)
	}

	// The mutation stands even though the save failed.
	if got := s.Balance(); got.Cents != 5000 {
		t.Errorf("Balance = %d cents, want 5000", got.Cents)
	}
	if recent := s.Dashboard().Recent; len(recent) != 1 {
		t.Errorf("transaction count = %d, want 1", len(recent))
	}
}

func TestBudgetAlertOnTierChange(t *testing.T) {
	pub := &recordingPublisher{}
	s := New(memory.New(), fixedClock, nil, pub)
	ctx := context.Background()
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := s.SetMonthlyLimit(ctx, core.Money{Cents: 100000}); err != nil {
		t.Fatalf("SetMonthlyLimit() error = %v", err)
	}

	// 50% remaining: still safe, no alert.
	if _, err := s.RecordTransaction(ctx, core.Expense, core.Money{Cents: 50000}, "Rent", "", "2024-03-01"); err != nil {
		t.Fatalf("RecordTransaction() error = %v", err)
	}
	if len(pub.messages) != 0 {
		t.Fatalf("no alert expected while safe, got %d", len(pub.messages))
	}

	// Crosses into warning.
	if _, err := s.RecordTransaction(ctx, core.Expense, core.Money{Cents: 20000}, "Food", "", "2024-03-10"); err != nil {
		t.Fatalf("RecordTransaction() error = %v", err)
	}
	if len(pub.messages) != 1 {
		t.Fatalf("alerts = %d, want 1", len(pub.messages))
	}
	if pub.messages[0].Status != string(core.StatusWarning) {
		t.Errorf("alert status = %q, want %q", pub.messages[0].Status, core.StatusWarning)
	}

	// Crosses into danger.
	if _, err := s.RecordTransaction(ctx, core.Expense, core.Money{Cents: 25000}, "Shopping", "", "2024-03-14"); err != nil {
		t.Fatalf("RecordTransaction() error = %v", err)
	}
	if len(pub.messages) != 2 {
		t.Fatalf("alerts = %d, want 2", len(pub.messages))
	}
	if pub.messages[1].Status != string(core.StatusDanger) {
		t.Errorf("alert status = %q, want %q", pub.messages[1].Status, core.StatusDanger)
	}

	// Further spend in the same tier stays quiet.
	if _, err := s.RecordTransaction(ctx, core.Expense, core.Money{Cents: 1000}, "Food", "", "2024-03-15"); err != nil {
		t.Fatalf("RecordTransaction() error = %v", err)
	}
	if len(pub.messages) != 2 {
		t.Errorf("alerts = %d after same-tier spend, want 2", len(pub.messages))
	}
}

func TestSetMonthlyLimit(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	if err := s.SetMonthlyLimit(ctx, core.Money{Cents: -1}); !errors.Is(err, core.ErrInvalidLimit) {
		t.Errorf("SetMonthlyLimit(-1) error = %v, want ErrInvalidLimit", err)
	}
	if err := s.SetMonthlyLimit(ctx, core.Money{Cents: 0}); err != nil {
		t.Errorf("SetMonthlyLimit(0) error = %v, want nil", err)
	}
	if err := s.SetMonthlyLimit(ctx, core.Money{Cents: 80000}); err != nil {
		t.Errorf("SetMonthlyLimit(80000) error = %v", err)
	}
	if got := s.Settings().MonthlyLimit.Cents; got != 80000 {
		t.Errorf("MonthlyLimit = %d, want 80000", got)
	}
}

func TestSetDream(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	err := s.SetDream(ctx, core.Dream{Title: "  Sailboat  ", TargetAmount: core.Money{Cents: 1200000}, TargetDate: "2026-06-01"})
	if err != nil {
		t.Fatalf("SetDream() error = %v", err)
	}
	if got := s.Dream(); got.Title != "Sailboat" {
		t.Errorf("Dream.Title = %q, want trimmed %q", got.Title, "Sailboat")
	}

	if err := s.SetDream(ctx, core.Dream{Title: "   ", TargetAmount: core.Money{Cents: 1}, TargetDate: "2026-06-01"}); !errors.Is(err, core.ErrInvalidDream) {
		t.Errorf("SetDream(blank title) error = %v, want ErrInvalidDream", err)
	}
}

func TestSetNotification(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	if err := s.SetNotification(ctx, core.Notification{Enabled: true, Time: "21:30"}); err != nil {
		t.Fatalf("SetNotification() error = %v", err)
	}
	if err := s.SetNotification(ctx, core.Notification{Enabled: true, Time: "9:5"}); !errors.Is(err, core.ErrInvalidTime) {
		t.Errorf("SetNotification(bad time) error = %v, want ErrInvalidTime", err)
	}
	if got := s.Settings().Notification.Time; got != "21:30" {
		t.Errorf("Notification.Time = %q, want %q", got, "21:30")
	}
}

func TestCategoryManagement(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	added, err := s.AddCategory(ctx, "  Travel ")
	if err != nil || !added {
		t.Fatalf("AddCategory(Travel) = (%v, %v), want (true, nil)", added, err)
	}
	if added, err = s.AddCategory(ctx, "Travel"); !errors.Is(err, core.ErrDuplicateCategory) || added {
		t.Errorf("AddCategory(duplicate) = (%v, %v), want (false, ErrDuplicateCategory)", added, err)
	}
	if added, err = s.AddCategory(ctx, "   "); err != nil || added {
		t.Errorf("AddCategory(blank) = (%v, %v), want silent no-op", added, err)
	}

	if _, err = s.DeleteCategory(ctx, 99); !errors.Is(err, core.ErrCategoryIndex) {
		t.Errorf("DeleteCategory(99) error = %v, want ErrCategoryIndex", err)
	}
	name, err := s.DeleteCategory(ctx, 0)
	if err != nil {
		t.Fatalf("DeleteCategory(0) error = %v", err)
	}
	if name != "Food" {
		t.Errorf("DeleteCategory(0) = %q, want %q", name, "Food")
	}

	// Drain down to one and verify the last category is protected.
	for len(s.Settings().Categories) > 1 {
		if _, err := s.DeleteCategory(ctx, 0); err != nil {
			t.Fatalf("DeleteCategory() error = %v", err)
		}
	}
	if _, err := s.DeleteCategory(ctx, 0); !errors.Is(err, core.ErrLastCategory) {
		t.Errorf("DeleteCategory(last) error = %v, want ErrLastCategory", err)
	}
}

func TestReset(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	if _, err := s.RecordTransaction(ctx, core.Income, core.Money{Cents: 9900}, core.IncomeCategory, "", "2024-03-15"); err != nil {
		t.Fatalf("RecordTransaction() error = %v", err)
	}
	if err := s.SetMonthlyLimit(ctx, core.Money{Cents: 50000}); err != nil {
		t.Fatalf("SetMonthlyLimit() error = %v", err)
	}

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if got := s.Balance(); got.Cents != 0 {
		t.Errorf("Balance after reset = %d, want 0", got.Cents)
	}
	if got := s.Settings().MonthlyLimit.Cents; got != 0 {
		t.Errorf("MonthlyLimit after reset = %d, want 0", got)
	}
	if recent := s.Dashboard().Recent; len(recent) != 0 {
		t.Errorf("transactions after reset = %d, want 0", len(recent))
	}
}

func TestDashboardRecentIsCappedAndSorted(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	dates := []core.Date{"2024-03-01", "2024-03-05", "2024-03-03", "2024-03-10", "2024-03-02", "2024-03-08"}
	for _, d := range dates {
		if _, err := s.RecordTransaction(ctx, core.Expense, core.Money{Cents: 100}, "Food", "", d); err != nil {
			t.Fatalf("RecordTransaction(%s) error = %v", d, err)
		}
	}

	recent := s.Dashboard().Recent
	if len(recent) != 5 {
		t.Fatalf("Recent = %d transactions, want 5", len(recent))
	}
	if recent[0].Date != "2024-03-10" {
		t.Errorf("Recent[0].Date = %s, want 2024-03-10", recent[0].Date)
	}
	for i := 1; i < len(recent); i++ {
		if recent[i].Date > recent[i-1].Date {
			t.Errorf("Recent not sorted descending at %d: %s after %s", i, recent[i].Date, recent[i-1].Date)
		}
	}
}

func TestHistoryAndAnalysisWindows(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	// One expense inside the current week, one earlier in the month, one
	// from last year.
	fixtures := []struct {
		date     core.Date
		category string
		cents    int64
	}{
		{"2024-03-15", "Food", 2000},
		{"2024-03-01", "Rent", 70000},
		{"2023-06-01", "Shopping", 5000},
	}
	for _, f := range fixtures {
		if _, err := s.RecordTransaction(ctx, core.Expense, core.Money{Cents: f.cents}, f.category, "", f.date); err != nil {
			t.Fatalf("RecordTransaction(%s) error = %v", f.date, err)
		}
	}

	week := s.History(core.WindowWeek)
	if len(week.Transactions) != 1 || week.Totals.Expense.Cents != 2000 {
		t.Errorf("week history = %d txs / %d cents, want 1 / 2000",
			len(week.Transactions), week.Totals.Expense.Cents)
	}

	month := s.History(core.WindowMonth)
	if len(month.Transactions) != 2 || month.Totals.Expense.Cents != 72000 {
		t.Errorf("month history = %d txs / %d cents, want 2 / 72000",
			len(month.Transactions), month.Totals.Expense.Cents)
	}

	all := s.History(core.WindowAll)
	if len(all.Transactions) != 3 {
		t.Errorf("all history = %d txs, want 3", len(all.Transactions))
	}

	analysis := s.Analysis(core.WindowMonth)
	if analysis.Budget.Spent.Cents != 72000 {
		t.Errorf("analysis spent = %d, want 72000", analysis.Budget.Spent.Cents)
	}
	if len(analysis.ByCategory) != 2 {
		t.Fatalf("analysis categories = %d, want 2", len(analysis.ByCategory))
	}
	if analysis.ByCategory[0].Name != "Food" || analysis.ByCategory[1].Name != "Rent" {
		t.Errorf("category order = %s, %s; want first-appearance Food, Rent",
			analysis.ByCategory[0].Name, analysis.ByCategory[1].Name)
	}
}

func TestGoalProgressOnDashboard(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	if err := s.SetDream(ctx, core.Dream{Title: "Trip", TargetAmount: core.Money{Cents: 200000}, TargetDate: "2025-12-31"}); err != nil {
		t.Fatalf("SetDream() error = %v", err)
	}
	if _, err := s.RecordTransaction(ctx, core.Income, core.Money{Cents: 50000}, core.IncomeCategory, "", "2024-03-15"); err != nil {
		t.Fatalf("RecordTransaction() error = %v", err)
	}

	if got := s.Dashboard().GoalPercent; got != 25 {
		t.Errorf("GoalPercent = %v, want 25", got)
	}
}

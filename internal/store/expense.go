package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/lucsky/cuid"

	"lunchero/internal/models"
	"lunchero/internal/normalize"
	"lunchero/internal/uistate"
)

const expenseStateKey = "lunchero:expenses"

// ExpenseStore owns the expense ledger and its form draft. Expenses are
// append-and-delete only; there is no edit flow.
type ExpenseStore struct {
	notifier

	mu     sync.Mutex
	remote Remote
	state  *uistate.Store

	expenses []models.Expense
	draft    models.Expense
	showForm bool
	loading  bool
	lastErr  string
}

func NewExpenseStore(remote Remote, state *uistate.Store) *ExpenseStore {
	return &ExpenseStore{remote: remote, state: state, draft: emptyExpenseDraft()}
}

func emptyExpenseDraft() models.Expense {
	now := time.Now()
	return models.Expense{Kind: models.ExpenseKindPurchase, Date: &now}
}

func (s *ExpenseStore) Expenses() []models.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Expense, len(s.expenses))
	for i, e := range s.expenses {
		out[i] = e.Clone()
	}
	return out
}

func (s *ExpenseStore) Draft() models.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func (s *ExpenseStore) IsFormVisible() bool { s.mu.Lock(); defer s.mu.Unlock(); return s.showForm }
func (s *ExpenseStore) IsLoading() bool     { s.mu.Lock(); defer s.mu.Unlock(); return s.loading }
func (s *ExpenseStore) LastError() string   { s.mu.Lock(); defer s.mu.Unlock(); return s.lastErr }

func (s *ExpenseStore) SetDraftKind(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Kind = kind
	s.persistLocked()
}

func (s *ExpenseStore) SetDraftTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Title = title
	s.persistLocked()
}

func (s *ExpenseStore) SetDraftDescription(description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Description = description
	s.persistLocked()
}

func (s *ExpenseStore) SetDraftAmount(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Amount = normalize.Number(v)
	s.persistLocked()
}

func (s *ExpenseStore) SetDraftTime(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Time = t
	s.persistLocked()
}

func (s *ExpenseStore) SetDraftDate(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Date = normalize.ParseDate(v)
	s.persistLocked()
}

func (s *ExpenseStore) ResetDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = emptyExpenseDraft()
	s.persistLocked()
}

func (s *ExpenseStore) ToggleForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showForm = !s.showForm
	s.persistLocked()
}

// LoadIntoDraft copies an existing expense into the draft and opens the form.
func (s *ExpenseStore) LoadIntoDraft(e models.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = e.Clone()
	s.showForm = true
	s.persistLocked()
}

func (s *ExpenseStore) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

// CommitCreate sends the draft to the collaborator and, on success, prepends
// the confirmed expense, resets the draft and hides the form.
func (s *ExpenseStore) CommitCreate(ctx context.Context) {
	draft, ok := s.beginCommit()
	if !ok {
		return
	}

	var expense models.Expense
	if s.remote == nil {
		expense = draft
		expense.ID = cuid.New()
	} else {
		rec, err := s.remote.Create(ctx, toPayload(draft))
		if err != nil {
			s.fail(err)
			return
		}
		expense = normalize.Expense(rec)
	}

	s.mu.Lock()
	s.expenses = append([]models.Expense{expense}, s.expenses...)
	s.draft = emptyExpenseDraft()
	s.showForm = false
	s.loading = false
	s.persistLocked()
	s.mu.Unlock()

	s.emit(models.ChangeEvent{Entity: models.EntityExpenses, Action: models.ActionCreated, ID: expense.ID, At: time.Now()})
}

func (s *ExpenseStore) CommitDelete(ctx context.Context, id string) {
	if _, ok := s.beginCommit(); !ok {
		return
	}

	if s.remote != nil {
		if err := s.remote.Delete(ctx, id); err != nil {
			s.fail(err)
			return
		}
	}

	s.mu.Lock()
	kept := s.expenses[:0]
	for _, e := range s.expenses {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.expenses = kept
	s.loading = false
	s.mu.Unlock()

	s.emit(models.ChangeEvent{Entity: models.EntityExpenses, Action: models.ActionDeleted, ID: id, At: time.Now()})
}

func (s *ExpenseStore) Refresh(ctx context.Context) {
	if s.remote == nil {
		return
	}
	if _, ok := s.beginCommit(); !ok {
		return
	}

	recs, err := s.remote.List(ctx)
	if err != nil {
		s.fail(err)
		return
	}

	expenses := make([]models.Expense, 0, len(recs))
	for _, rec := range recs {
		expenses = append(expenses, normalize.Expense(rec))
	}

	s.mu.Lock()
	s.expenses = expenses
	s.loading = false
	s.mu.Unlock()

	s.emit(models.ChangeEvent{Entity: models.EntityExpenses, Action: models.ActionRefreshed, At: time.Now()})
}

func (s *ExpenseStore) Rehydrate() {
	if s.state == nil {
		return
	}
	var snap uistate.Snapshot
	if !s.state.Get(expenseStateKey, &snap) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showForm = snap.ShowForm
	if len(snap.Draft) > 0 {
		var draft models.Expense
		if json.Unmarshal(snap.Draft, &draft) == nil {
			s.draft = draft
		}
	}
}

func (s *ExpenseStore) beginCommit() (models.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return models.Expense{}, false
	}
	s.loading = true
	s.lastErr = ""
	return s.draft.Clone(), true
}

func (s *ExpenseStore) fail(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.loading = false
	s.mu.Unlock()
}

func (s *ExpenseStore) persistLocked() {
	if s.state == nil {
		return
	}
	draft, err := json.Marshal(s.draft)
	if err != nil {
		return
	}
	s.state.Put(expenseStateKey, uistate.Snapshot{
		ShowForm: s.showForm,
		Draft:    draft,
	})
}

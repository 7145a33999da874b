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

const lunchStateKey = "lunchero:lunches"

// LunchStore owns the lunch catalog and the draft being edited in the lunch
// form. The draft is a detached scratch copy: editing it never touches the
// catalog until an explicit commit.
type LunchStore struct {
	notifier

	mu     sync.Mutex
	remote Remote
	state  *uistate.Store

	catalog  []models.LunchItem
	draft    models.LunchItem
	editing  bool
	showForm bool
	loading  bool
	lastErr  string
}

// NewLunchStore builds a store around the given collaborator. Both remote
// and state may be nil: a nil remote means offline mode with locally
// assigned ids, a nil state disables the UI-state sidecar.
func NewLunchStore(remote Remote, state *uistate.Store) *LunchStore {
	return &LunchStore{remote: remote, state: state, draft: emptyLunchDraft()}
}

func emptyLunchDraft() models.LunchItem {
	return models.LunchItem{Tags: []string{}}
}

func (s *LunchStore) Catalog() []models.LunchItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LunchItem, len(s.catalog))
	for i, l := range s.catalog {
		out[i] = l.Clone()
	}
	return out
}

func (s *LunchStore) Draft() models.LunchItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func (s *LunchStore) IsEditing() bool     { s.mu.Lock(); defer s.mu.Unlock(); return s.editing }
func (s *LunchStore) IsFormVisible() bool { s.mu.Lock(); defer s.mu.Unlock(); return s.showForm }
func (s *LunchStore) IsLoading() bool     { s.mu.Lock(); defer s.mu.Unlock(); return s.loading }
func (s *LunchStore) LastError() string   { s.mu.Lock(); defer s.mu.Unlock(); return s.lastErr }

func (s *LunchStore) SetDraftTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Title = title
	s.persistLocked()
}

func (s *LunchStore) SetDraftImage(image string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Image = image
	s.persistLocked()
}

func (s *LunchStore) ResetDraftImage() {
	s.SetDraftImage("")
}

// SetDraftPrice coerces any form input to a number; unparseable or negative
// input clamps to 0. Validation beyond that belongs to the UI boundary.
func (s *LunchStore) SetDraftPrice(v any) {
	price := normalize.Number(v)
	if price < 0 {
		price = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Price = price
	s.persistLocked()
}

// AddDraftTag appends tag to the draft, preserving insertion order. Adding a
// duplicate is a no-op.
func (s *LunchStore) AddDraftTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.draft.Tags {
		if t == tag {
			return
		}
	}
	s.draft.Tags = append(s.draft.Tags, tag)
	s.persistLocked()
}

func (s *LunchStore) RemoveDraftTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.draft.Tags[:0]
	for _, t := range s.draft.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	s.draft.Tags = kept
	s.persistLocked()
}

// LoadIntoDraft copies an existing catalog item into the draft and enters
// editing mode. The previous draft is fully overwritten.
func (s *LunchStore) LoadIntoDraft(item models.LunchItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = item.Clone()
	s.editing = true
	s.persistLocked()
}

// ResetDraft restores the empty template and leaves editing mode.
func (s *LunchStore) ResetDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = emptyLunchDraft()
	s.editing = false
	s.persistLocked()
}

func (s *LunchStore) ToggleForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showForm = !s.showForm
	s.persistLocked()
}

// SetError overrides the surfaced error; pass "" to dismiss it.
func (s *LunchStore) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

// CommitCreate sends the draft (without id) to the collaborator and, on
// success, prepends the confirmed item to the catalog and resets the draft.
// On failure the draft is left untouched so the operator can retry.
func (s *LunchStore) CommitCreate(ctx context.Context) {
	draft, ok := s.beginCommit()
	if !ok {
		return
	}

	var item models.LunchItem
	if s.remote == nil {
		item = draft
		item.ID = cuid.New()
	} else {
		rec, err := s.remote.Create(ctx, toPayload(draft))
		if err != nil {
			s.fail(err)
			return
		}
		item = normalize.Lunch(rec)
	}

	s.mu.Lock()
	s.catalog = append([]models.LunchItem{item}, s.catalog...)
	s.draft = emptyLunchDraft()
	s.editing = false
	s.loading = false
	s.persistLocked()
	s.mu.Unlock()

	s.emit(models.ChangeEvent{Entity: models.EntityLunches, Action: models.ActionCreated, ID: item.ID, At: time.Now()})
}

// CommitUpdate sends a full-replacement update for the item the draft was
// loaded from. Without a draft id it is silently ignored.
func (s *LunchStore) CommitUpdate(ctx context.Context) {
	draft, ok := s.beginCommit()
	if !ok {
		return
	}
	if draft.ID == "" {
		s.endCommit()
		return
	}

	item := draft
	if s.remote != nil {
		rec, err := s.remote.Update(ctx, draft.ID, toPayload(draft))
		if err != nil {
			s.fail(err)
			return
		}
		item = normalize.Lunch(rec)
	}

	s.mu.Lock()
	for i := range s.catalog {
		if s.catalog[i].ID == draft.ID {
			s.catalog[i] = item
			break
		}
	}
	s.draft = emptyLunchDraft()
	s.editing = false
	s.loading = false
	s.persistLocked()
	s.mu.Unlock()

	s.emit(models.ChangeEvent{Entity: models.EntityLunches, Action: models.ActionUpdated, ID: item.ID, At: time.Now()})
}

// CommitDelete removes the item from the collaborator and the catalog. On
// failure the catalog is left unchanged.
func (s *LunchStore) CommitDelete(ctx context.Context, id string) {
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
	kept := s.catalog[:0]
	for _, l := range s.catalog {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.catalog = kept
	s.loading = false
	s.mu.Unlock()

	s.emit(models.ChangeEvent{Entity: models.EntityLunches, Action: models.ActionDeleted, ID: id, At: time.Now()})
}

// Refresh replaces the catalog wholesale with the collaborator's view. The
// draft, being a separate field, is unaffected.
func (s *LunchStore) Refresh(ctx context.Context) {
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

	catalog := make([]models.LunchItem, 0, len(recs))
	for _, rec := range recs {
		catalog = append(catalog, normalize.Lunch(rec))
	}

	s.mu.Lock()
	s.catalog = catalog
	s.loading = false
	s.mu.Unlock()

	s.emit(models.ChangeEvent{Entity: models.EntityLunches, Action: models.ActionRefreshed, At: time.Now()})
}

// Rehydrate restores draft, editing mode and form visibility from the
// sidecar. Callers typically follow it with Refresh.
func (s *LunchStore) Rehydrate() {
	if s.state == nil {
		return
	}
	var snap uistate.Snapshot
	if !s.state.Get(lunchStateKey, &snap) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showForm = snap.ShowForm
	s.editing = snap.IsEditing
	if len(snap.Draft) > 0 {
		var draft models.LunchItem
		if json.Unmarshal(snap.Draft, &draft) == nil {
			if draft.Tags == nil {
				draft.Tags = []string{}
			}
			s.draft = draft
		}
	}
}

// beginCommit snapshots the draft and flips the loading flag. A commit that
// finds another one in flight is ignored rather than interleaved.
func (s *LunchStore) beginCommit() (models.LunchItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return models.LunchItem{}, false
	}
	s.loading = true
	s.lastErr = ""
	return s.draft.Clone(), true
}

func (s *LunchStore) endCommit() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *LunchStore) fail(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.loading = false
	s.mu.Unlock()
}

func (s *LunchStore) persistLocked() {
	if s.state == nil {
		return
	}
	draft, err := json.Marshal(s.draft)
	if err != nil {
		return
	}
	s.state.Put(lunchStateKey, uistate.Snapshot{
		ShowForm:  s.showForm,
		IsEditing: s.editing,
		Draft:     draft,
	})
}

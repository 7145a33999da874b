package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/lucsky/cuid"

	"lunchero/internal/dates"
	"lunchero/internal/models"
	"lunchero/internal/normalize"
	"lunchero/internal/uistate"
)

const orderStateKey = "lunchero:orders"

// OrderStore owns the order list, the order being drafted in the form and
// the active filter criteria. The filtered view is derived on every read,
// never cached.
type OrderStore struct {
	notifier

	mu     sync.Mutex
	remote Remote
	state  *uistate.Store

	orders   []models.Order
	draft    models.Order
	filter   models.FilterCriteria
	editing  bool
	showForm bool
	loading  bool
	lastErr  string
}

func NewOrderStore(remote Remote, state *uistate.Store) *OrderStore {
	return &OrderStore{
		remote: remote,
		state:  state,
		draft:  emptyOrderDraft(),
		filter: models.DefaultFilter(),
	}
}

func emptyOrderDraft() models.Order {
	now := time.Now()
	return models.Order{
		Items:  []models.LineItem{},
		Date:   &now,
		Status: models.OrderStatusPending,
	}
}

func (s *OrderStore) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, len(s.orders))
	for i, o := range s.orders {
		out[i] = o.Clone()
	}
	return out
}

func (s *OrderStore) Draft() models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func (s *OrderStore) Filter() models.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *OrderStore) IsEditing() bool     { s.mu.Lock(); defer s.mu.Unlock(); return s.editing }
func (s *OrderStore) IsFormVisible() bool { s.mu.Lock(); defer s.mu.Unlock(); return s.showForm }
func (s *OrderStore) IsLoading() bool     { s.mu.Lock(); defer s.mu.Unlock(); return s.loading }
func (s *OrderStore) LastError() string   { s.mu.Lock(); defer s.mu.Unlock(); return s.lastErr }

func (s *OrderStore) SetDraftTower(tower string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Tower = tower
	s.persistLocked()
}

func (s *OrderStore) SetDraftApartment(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Apartment = normalize.Int(v)
	s.persistLocked()
}

func (s *OrderStore) SetDraftCustomer(customer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Customer = customer
	s.persistLocked()
}

func (s *OrderStore) SetDraftPhone(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Phone = int64(normalize.Number(v))
	s.persistLocked()
}

func (s *OrderStore) SetDraftPayMethod(pm models.PayMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.PayMethod = pm
	s.persistLocked()
}

func (s *OrderStore) SetDraftNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Notes = notes
	s.persistLocked()
}

func (s *OrderStore) SetDraftTime(t string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Time = t
	s.persistLocked()
}

func (s *OrderStore) SetDraftDate(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Date = normalize.ParseDate(v)
	s.persistLocked()
}

func (s *OrderStore) SetDraftStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Status = status
	s.persistLocked()
}

// AddLineItem adds a snapshot of the given catalog item to the draft with
// quantity 1. If a line for the same lunch id already exists its quantity is
// bumped instead; existing item order is preserved, new items append.
func (s *OrderStore) AddLineItem(lunch models.LunchItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.draft.Items {
		if s.draft.Items[i].ID == lunch.ID {
			s.draft.Items[i].Quantity++
			s.persistLocked()
			return
		}
	}
	s.draft.Items = append(s.draft.Items, models.LineItem{LunchItem: lunch.Clone(), Quantity: 1})
	s.persistLocked()
}

// SetLineItemQuantity clamps qty to a minimum of 1. Removal is a separate
// explicit action, never an implicit side effect of a low quantity.
func (s *OrderStore) SetLineItemQuantity(id string, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.draft.Items {
		if s.draft.Items[i].ID == id {
			s.draft.Items[i].Quantity = qty
			break
		}
	}
	s.persistLocked()
}

func (s *OrderStore) RemoveLineItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.draft.Items[:0]
	for _, it := range s.draft.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.draft.Items = kept
	s.persistLocked()
}

func (s *OrderStore) LoadIntoDraft(order models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = order.Clone()
	s.editing = true
	s.persistLocked()
}

func (s *OrderStore) ResetDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = emptyOrderDraft()
	s.editing = false
	s.persistLocked()
}

func (s *OrderStore) ToggleForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showForm = !s.showForm
	s.persistLocked()
}

func (s *OrderStore) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

func (s *OrderStore) SetStatusFilter(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Status = status
	s.persistLocked()
}

func (s *OrderStore) SetRangeFilter(kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Range = kind
	s.persistLocked()
}

func (s *OrderStore) SetFilterDate(v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter.Date = normalize.ParseDate(v)
	s.persistLocked()
}

func (s *OrderStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = models.DefaultFilter()
	s.persistLocked()
}

// FilteredOrders applies the status and date-range predicates as a logical
// AND, recomputed on every call. Relative order of the underlying list is
// preserved; there is no implicit sort.
func (s *OrderStore) FilteredOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if !matchesStatus(o, s.filter) || !matchesDate(o, s.filter, now) {
			continue
		}
		out = append(out, o.Clone())
	}
	return out
}

func matchesStatus(o models.Order, f models.FilterCriteria) bool {
	if f.Status == models.FilterStatusAll {
		return true
	}
	return o.Status == f.Status
}

func matchesDate(o models.Order, f models.FilterCriteria, now time.Time) bool {
	switch f.Range {
	case models.RangeToday:
		return dates.SameDay(o.Date, now)
	case models.RangeWeek:
		return dates.SameWeek(o.Date, now)
	case models.RangeMonth:
		return dates.SameMonth(o.Date, now)
	case models.RangeDate:
		if f.Date != nil {
			return dates.SameDay(o.Date, *f.Date)
		}
	}
	return true
}

// CommitCreate normalizes the draft's quantities, recomputes the total and
// sends the order (without id) to the collaborator. The confirmed record is
// normalized and prepended; the draft resets on success only.
func (s *OrderStore) CommitCreate(ctx context.Context) {
	draft, ok := s.beginCommit()
	if !ok {
		return
	}
	prepareForCommit(&draft)

	var order models.Order
	if s.remote == nil {
		order = draft
		order.ID = cuid.New()
	} else {
		rec, err := s.remote.Create(ctx, toPayload(draft))
		if err != nil {
			s.fail(err)
			return
		}
		order = normalize.Order(rec)
	}

	s.mu.Lock()
	s.orders = append([]models.Order{order}, s.orders...)
	s.draft = emptyOrderDraft()
	s.editing = false
	s.loading = false
	s.persistLocked()
	s.mu.Unlock()

	s.emit(models.ChangeEvent{Entity: models.EntityOrders, Action: models.ActionCreated, ID: order.ID, At: time.Now()})
}

// CommitUpdate sends a full-replacement update for the order the draft was
// loaded from. Without a draft id it is silently ignored.
func (s *OrderStore) CommitUpdate(ctx context.Context) {
	draft, ok := s.beginCommit()
	if !ok {
		return
	}
	if draft.ID == "" {
		s.endCommit()
		return
	}
	prepareForCommit(&draft)

	order := draft
	if s.remote != nil {
		rec, err := s.remote.Update(ctx, draft.ID, toPayload(draft))
		if err != nil {
			s.fail(err)
			return
		}
		order = normalize.Order(rec)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == draft.ID {
			s.orders[i] = order
			break
		}
	}
	s.draft = emptyOrderDraft()
	s.editing = false
	s.loading = false
	s.persistLocked()
	s.mu.Unlock()

	s.emit(models.ChangeEvent{Entity: models.EntityOrders, Action: models.ActionUpdated, ID: order.ID, At: time.Now()})
}

// UpdateStatus commits a single-field status change. Setting the status an
// order already has is a no-op, avoiding a redundant network call.
func (s *OrderStore) UpdateStatus(ctx context.Context, id, newStatus string) {
	s.mu.Lock()
	var current models.Order
	found := false
	for i := range s.orders {
		if s.orders[i].ID == id {
			current = s.orders[i].Clone()
			found = true
			break
		}
	}
	if !found || current.Status == newStatus || s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	var order models.Order
	if s.remote == nil {
		order = current
		order.Status = newStatus
	} else {
		rec, err := s.remote.Update(ctx, id, map[string]any{"status": newStatus})
		if err != nil {
			s.fail(err)
			return
		}
		order = normalize.Order(rec)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i] = order
			break
		}
	}
	s.loading = false
	s.mu.Unlock()

	s.emit(models.ChangeEvent{Entity: models.EntityOrders, Action: models.ActionStatusChanged, ID: id, At: time.Now()})
}

// CommitDelete removes the order from the collaborator and the list. On
// failure the list is left unchanged.
func (s *OrderStore) CommitDelete(ctx context.Context, id string) {
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
	kept := s.orders[:0]
	for _, o := range s.orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	s.orders = kept
	s.loading = false
	s.mu.Unlock()

	s.emit(models.ChangeEvent{Entity: models.EntityOrders, Action: models.ActionDeleted, ID: id, At: time.Now()})
}

// Refresh replaces the order list wholesale with the collaborator's view.
func (s *OrderStore) Refresh(ctx context.Context) {
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

	orders := make([]models.Order, 0, len(recs))
	for _, rec := range recs {
		orders = append(orders, normalize.Order(rec))
	}

	s.mu.Lock()
	s.orders = orders
	s.loading = false
	s.mu.Unlock()

	s.emit(models.ChangeEvent{Entity: models.EntityOrders, Action: models.ActionRefreshed, At: time.Now()})
}

// Rehydrate restores draft, editing mode, form visibility and cached filter
// criteria from the sidecar.
func (s *OrderStore) Rehydrate() {
	if s.state == nil {
		return
	}
	var snap uistate.Snapshot
	if !s.state.Get(orderStateKey, &snap) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showForm = snap.ShowForm
	s.editing = snap.IsEditing
	if len(snap.Draft) > 0 {
		var draft models.Order
		if json.Unmarshal(snap.Draft, &draft) == nil {
			if draft.Items == nil {
				draft.Items = []models.LineItem{}
			}
			s.draft = draft
		}
	}
	if len(snap.Filter) > 0 {
		var filter models.FilterCriteria
		if json.Unmarshal(snap.Filter, &filter) == nil && filter.Status != "" && filter.Range != "" {
			s.filter = filter
		}
	}
}

// prepareForCommit enforces quantity floors and recomputes the derived total
// right before the draft leaves the store.
func prepareForCommit(o *models.Order) {
	for i := range o.Items {
		if o.Items[i].Quantity < 1 {
			o.Items[i].Quantity = 1
		}
	}
	o.Total = normalize.ComputeTotal(o.Items)
}

func (s *OrderStore) beginCommit() (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return models.Order{}, false
	}
	s.loading = true
	s.lastErr = ""
	return s.draft.Clone(), true
}

func (s *OrderStore) endCommit() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *OrderStore) fail(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.loading = false
	s.mu.Unlock()
}

func (s *OrderStore) persistLocked() {
	if s.state == nil {
		return
	}
	draft, err := json.Marshal(s.draft)
	if err != nil {
		return
	}
	filter, err := json.Marshal(s.filter)
	if err != nil {
		return
	}
	s.state.Put(orderStateKey, uistate.Snapshot{
		ShowForm:  s.showForm,
		IsEditing: s.editing,
		Draft:     draft,
		Filter:    filter,
	})
}

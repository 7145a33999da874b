package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"lunchero/internal/models"
	"lunchero/internal/uistate"
)

func TestAddDraftTagIgnoresDuplicates(t *testing.T) {
	s := NewLunchStore(nil, nil)
	s.AddDraftTag("rice")
	s.AddDraftTag("rice")
	s.AddDraftTag("soup")

	tags := s.Draft().Tags
	if len(tags) != 2 || tags[0] != "rice" || tags[1] != "soup" {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

func TestRemoveDraftTag(t *testing.T) {
	s := NewLunchStore(nil, nil)
	s.AddDraftTag("rice")
	s.AddDraftTag("soup")
	s.RemoveDraftTag("rice")

	tags := s.Draft().Tags
	if len(tags) != 1 || tags[0] != "soup" {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

func TestSetDraftPriceCoercion(t *testing.T) {
	s := NewLunchStore(nil, nil)

	s.SetDraftPrice("15000")
	if got := s.Draft().Price; got != 15000 {
		t.Fatalf("expected 15000, got %v", got)
	}
	s.SetDraftPrice("garbage")
	if got := s.Draft().Price; got != 0 {
		t.Fatalf("invalid input should clamp to 0, got %v", got)
	}
	s.SetDraftPrice(-500)
	if got := s.Draft().Price; got != 0 {
		t.Fatalf("negative input should clamp to 0, got %v", got)
	}
}

func TestLoadIntoDraftOverwritesPreviousDraft(t *testing.T) {
	s := NewLunchStore(nil, nil)
	s.SetDraftTitle("leftover title")
	s.AddDraftTag("leftover")

	item := models.LunchItem{ID: "l1", Title: "Grilled chicken", Price: 15000, Tags: []string{"rice"}}
	s.LoadIntoDraft(item)

	draft := s.Draft()
	if draft.Title != "Grilled chicken" || draft.ID != "l1" {
		t.Fatalf("unexpected draft: %+v", draft)
	}
	if len(draft.Tags) != 1 || draft.Tags[0] != "rice" {
		t.Fatalf("previous draft leaked into tags: %v", draft.Tags)
	}
	if !s.IsEditing() {
		t.Fatal("loading a draft should enter editing mode")
	}
}

func TestCommitCreateAddsToCatalogAndResetsDraft(t *testing.T) {
	remote := newFakeRemote()
	s := NewLunchStore(remote, nil)

	s.SetDraftTitle("Grilled chicken")
	s.SetDraftPrice(15000)
	s.AddDraftTag("rice")
	s.AddDraftTag("soup")
	s.CommitCreate(context.Background())

	if s.LastError() != "" {
		t.Fatalf("unexpected error: %s", s.LastError())
	}
	catalog := s.Catalog()
	if len(catalog) != 1 {
		t.Fatalf("expected 1 catalog entry, got %d", len(catalog))
	}
	if catalog[0].ID == "" {
		t.Fatal("expected a server-assigned id")
	}
	if catalog[0].Title != "Grilled chicken" || catalog[0].Price != 15000 {
		t.Fatalf("unexpected catalog entry: %+v", catalog[0])
	}
	if _, ok := remote.lastCreatePayload["id"]; ok {
		t.Fatal("create payload must not carry an id")
	}
	draft := s.Draft()
	if draft.Title != "" || draft.Price != 0 || len(draft.Tags) != 0 {
		t.Fatalf("draft should reset after commit, got %+v", draft)
	}
	if s.IsLoading() {
		t.Fatal("loading flag should clear after commit")
	}
}

func TestCommitCreatePrependsNewestFirst(t *testing.T) {
	remote := newFakeRemote()
	s := NewLunchStore(remote, nil)

	s.SetDraftTitle("first")
	s.CommitCreate(context.Background())
	s.SetDraftTitle("second")
	s.CommitCreate(context.Background())

	catalog := s.Catalog()
	if catalog[0].Title != "second" || catalog[1].Title != "first" {
		t.Fatalf("expected newest-first ordering, got %+v", catalog)
	}
}

func TestCommitCreateFailureKeepsDraft(t *testing.T) {
	remote := newFakeRemote()
	remote.createErr = errors.New("connection refused")
	s := NewLunchStore(remote, nil)

	s.SetDraftTitle("Grilled chicken")
	s.CommitCreate(context.Background())

	if s.LastError() != "connection refused" {
		t.Fatalf("expected surfaced error, got %q", s.LastError())
	}
	if len(s.Catalog()) != 0 {
		t.Fatal("catalog must not change on failure")
	}
	if s.Draft().Title != "Grilled chicken" {
		t.Fatal("draft must stay intact so the operator can retry")
	}
	if s.IsLoading() {
		t.Fatal("loading flag should clear on failure")
	}
}

func TestCommitUpdateWithoutIDIsIgnored(t *testing.T) {
	remote := newFakeRemote()
	s := NewLunchStore(remote, nil)

	s.SetDraftTitle("no id yet")
	s.CommitUpdate(context.Background())

	if remote.updates != 0 {
		t.Fatal("update without a draft id must not hit the collaborator")
	}
	if s.LastError() != "" {
		t.Fatalf("silent precondition failure should not surface an error, got %q", s.LastError())
	}
}

func TestCommitUpdateReplacesInPlace(t *testing.T) {
	remote := newFakeRemote(
		map[string]any{"id": "a", "title": "one", "price": 100.0, "tags": []any{}},
		map[string]any{"id": "b", "title": "two", "price": 200.0, "tags": []any{}},
		map[string]any{"id": "c", "title": "three", "price": 300.0, "tags": []any{}},
	)
	s := NewLunchStore(remote, nil)
	s.Refresh(context.Background())

	s.LoadIntoDraft(s.Catalog()[1])
	s.SetDraftTitle("two updated")
	s.CommitUpdate(context.Background())

	catalog := s.Catalog()
	if catalog[1].Title != "two updated" {
		t.Fatalf("expected in-place replacement, got %+v", catalog)
	}
	if catalog[0].Title != "one" || catalog[2].Title != "three" {
		t.Fatalf("neighbours must keep their positions, got %+v", catalog)
	}
	if s.IsEditing() {
		t.Fatal("editing mode should end after a successful update")
	}
}

func TestCommitDelete(t *testing.T) {
	remote := newFakeRemote(
		map[string]any{"id": "a", "title": "one", "price": 100.0, "tags": []any{}},
		map[string]any{"id": "b", "title": "two", "price": 200.0, "tags": []any{}},
	)
	s := NewLunchStore(remote, nil)
	s.Refresh(context.Background())

	s.CommitDelete(context.Background(), "a")
	catalog := s.Catalog()
	if len(catalog) != 1 || catalog[0].ID != "b" {
		t.Fatalf("unexpected catalog after delete: %+v", catalog)
	}
}

func TestCommitDeleteFailureLeavesCatalog(t *testing.T) {
	remote := newFakeRemote(map[string]any{"id": "a", "title": "one", "price": 100.0, "tags": []any{}})
	s := NewLunchStore(remote, nil)
	s.Refresh(context.Background())

	remote.deleteErr = errors.New("boom")
	s.CommitDelete(context.Background(), "a")

	if len(s.Catalog()) != 1 {
		t.Fatal("catalog must be unchanged when the delete fails")
	}
	if s.LastError() != "boom" {
		t.Fatalf("expected surfaced error, got %q", s.LastError())
	}
}

func TestRefreshReplacesCatalogWholesale(t *testing.T) {
	remote := newFakeRemote(map[string]any{"id": "a", "title": "fresh", "price": "900", "tags": []any{"soup"}})
	s := NewLunchStore(remote, nil)
	s.SetDraftTitle("uncommitted")
	s.Refresh(context.Background())

	catalog := s.Catalog()
	if len(catalog) != 1 || catalog[0].Price != 900 {
		t.Fatalf("unexpected catalog: %+v", catalog)
	}
	if s.Draft().Title != "uncommitted" {
		t.Fatal("refresh must not touch the draft")
	}
}

func TestOfflineCreateAssignsLocalID(t *testing.T) {
	s := NewLunchStore(nil, nil)
	s.SetDraftTitle("offline lunch")
	s.CommitCreate(context.Background())

	catalog := s.Catalog()
	if len(catalog) != 1 || catalog[0].ID == "" {
		t.Fatalf("expected a locally generated id, got %+v", catalog)
	}
}

func TestRehydrateRestoresDraft(t *testing.T) {
	state := uistate.Open(filepath.Join(t.TempDir(), "state.json"))

	s := NewLunchStore(nil, state)
	s.SetDraftTitle("persisted draft")
	s.ToggleForm()

	restored := NewLunchStore(nil, state)
	restored.Rehydrate()
	if restored.Draft().Title != "persisted draft" {
		t.Fatalf("expected restored draft, got %+v", restored.Draft())
	}
	if !restored.IsFormVisible() {
		t.Fatal("form visibility should be restored")
	}
}

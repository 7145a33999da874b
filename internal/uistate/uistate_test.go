package uistate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestPutGetRoundTripThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s := Open(path)
	s.Put("lunchero:lunches", Snapshot{ShowForm: true, Draft: json.RawMessage(`{"title":"soup"}`)})

	// a fresh open must read what the previous instance flushed
	reopened := Open(path)
	var snap Snapshot
	if !reopened.Get("lunchero:lunches", &snap) {
		t.Fatal("expected the snapshot to survive a reopen")
	}
	if !snap.ShowForm {
		t.Fatal("show_form flag lost across reopen")
	}
	if string(snap.Draft) != `{"title":"soup"}` {
		t.Fatalf("unexpected draft payload: %s", snap.Draft)
	}
}

func TestEmptyPathIsMemoryOnly(t *testing.T) {
	s := Open("")
	s.Put("k", Snapshot{ShowForm: true})

	var snap Snapshot
	if !s.Get("k", &snap) || !snap.ShowForm {
		t.Fatal("memory-only store should still serve reads in-process")
	}

	if Open("").Get("k", &snap) {
		t.Fatal("memory-only state must not leak across instances")
	}
}

func TestCorruptFileIsDiscarded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(path)
	var snap Snapshot
	if s.Get("anything", &snap) {
		t.Fatal("corrupt state should behave like an empty store")
	}

	// the store must stay writable after discarding corrupt contents
	s.Put("k", Snapshot{IsEditing: true})
	if !Open(path).Get("k", &snap) || !snap.IsEditing {
		t.Fatal("store should recover after discarding corrupt contents")
	}
}

func TestDeleteRemovesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s := Open(path)
	s.Put("k", Snapshot{ShowForm: true})
	s.Delete("k")

	var snap Snapshot
	if Open(path).Get("k", &snap) {
		t.Fatal("deleted key should not survive a reopen")
	}
}

func TestGetMissingKey(t *testing.T) {
	var snap Snapshot
	if Open("").Get("missing", &snap) {
		t.Fatal("missing key should report false")
	}
}

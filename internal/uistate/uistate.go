// Package uistate is the sidecar that keeps transient UI flags (form
// visibility, editing mode, draft contents) across restarts. Catalog and
// order data never lives here; it is always refetched from the collaborator.
package uistate

import (
	"encoding/json"
	"os"
	"sync"
)

// Snapshot is the per-entity payload persisted under a namespaced key.
type Snapshot struct {
	ShowForm  bool            `json:"show_form"`
	IsEditing bool            `json:"is_editing"`
	Draft     json.RawMessage `json:"draft,omitempty"`
	Filter    json.RawMessage `json:"filter,omitempty"`
}

// Store is a small key-value store backed by a single JSON file. With an
// empty path it degrades to a process-local map, mirroring environments
// where no writable storage exists. All failures are swallowed: losing UI
// state must never break the application.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]json.RawMessage
}

func Open(path string) *Store {
	s := &Store{path: path, data: make(map[string]json.RawMessage)}
	if path == "" {
		return s
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	// corrupt state is discarded, not fatal
	_ = json.Unmarshal(raw, &s.data)
	return s
}

// Get unmarshals the value stored under key into out and reports whether a
// value was present and decodable.
func (s *Store) Get(key string, out any) bool {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// Put stores v under key and flushes to disk when file-backed.
func (s *Store) Put(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.data[key] = raw
	s.flushLocked()
	s.mu.Unlock()
}

// Delete removes key and flushes to disk when file-backed.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.data, key)
	s.flushLocked()
	s.mu.Unlock()
}

func (s *Store) flushLocked() {
	if s.path == "" {
		return
	}
	raw, err := json.Marshal(s.data)
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, raw, 0o644)
}

// Package store holds the state containers behind the UI: a catalog of lunch
// items, the order list and the expense ledger, each with an in-progress
// draft and a commit protocol against a persistence collaborator.
//
// Containers are mutex-guarded; a mutation is an atomic state transition and
// a commit releases the lock across the network call, so state is only ever
// observed between transitions. Commit failures are converted to a
// human-readable message in LastError and are never returned to the caller.
package store

import (
	"context"
	"encoding/json"

	"lunchero/internal/models"
)

// Remote is the persistence collaborator for one entity collection. Records
// cross it loosely typed; stores run them through the normalization layer
// before merging them into memory. A store built with a nil Remote operates
// offline and assigns ids locally.
type Remote interface {
	List(ctx context.Context) ([]map[string]any, error)
	Create(ctx context.Context, payload map[string]any) (map[string]any, error)
	Update(ctx context.Context, id string, payload map[string]any) (map[string]any, error)
	Delete(ctx context.Context, id string) error
}

// Listener receives change events after a successful state transition.
type Listener func(models.ChangeEvent)

// notifier is a plain observer list. Subscribe during wiring, before the
// store is shared; listeners run synchronously on the mutating goroutine.
type notifier struct {
	subs []Listener
}

func (n *notifier) Subscribe(fn Listener) {
	n.subs = append(n.subs, fn)
}

func (n *notifier) emit(ev models.ChangeEvent) {
	for _, fn := range n.subs {
		fn(ev)
	}
}

// toPayload flattens an entity into the loose map shape the collaborator
// accepts, dropping the id (creates omit it, updates carry it in the URL).
func toPayload(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return map[string]any{}
	}
	delete(m, "id")
	return m
}

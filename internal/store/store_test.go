package store

import (
	"context"
	"fmt"

	"github.com/jaswdr/faker"

	"lunchero/internal/models"
)

var fake = faker.New()

// fakeRemote is an in-memory persistence collaborator. It hands out
// server-style ids and merges update payloads into stored records, the way
// the real backend does.
type fakeRemote struct {
	records []map[string]any
	nextID  int

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	creates int
	updates int
	deletes int

	lastCreatePayload map[string]any
	onCreate          func()
}

func newFakeRemote(records ...map[string]any) *fakeRemote {
	return &fakeRemote{records: records, nextID: 1}
}

func copyRecord(rec map[string]any) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func (f *fakeRemote) List(ctx context.Context) ([]map[string]any, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]map[string]any, len(f.records))
	for i, rec := range f.records {
		out[i] = copyRecord(rec)
	}
	return out, nil
}

func (f *fakeRemote) Create(ctx context.Context, payload map[string]any) (map[string]any, error) {
	f.creates++
	f.lastCreatePayload = copyRecord(payload)
	if f.onCreate != nil {
		f.onCreate()
	}
	if f.createErr != nil {
		return nil, f.createErr
	}
	rec := copyRecord(payload)
	rec["id"] = fmt.Sprintf("srv-%d", f.nextID)
	f.nextID++
	f.records = append(f.records, rec)
	return copyRecord(rec), nil
}

func (f *fakeRemote) Update(ctx context.Context, id string, payload map[string]any) (map[string]any, error) {
	f.updates++
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i, rec := range f.records {
		if rec["id"] == id {
			merged := copyRecord(rec)
			for k, v := range payload {
				merged[k] = v
			}
			f.records[i] = merged
			return copyRecord(merged), nil
		}
	}
	return nil, fmt.Errorf("record %s not found", id)
}

func (f *fakeRemote) Delete(ctx context.Context, id string) error {
	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.records[:0]
	for _, rec := range f.records {
		if rec["id"] != id {
			kept = append(kept, rec)
		}
	}
	f.records = kept
	return nil
}

func fixtureLunch(id string, price float64) models.LunchItem {
	return models.LunchItem{
		ID:    id,
		Title: fake.Lorem().Word(),
		Image: fake.Lorem().Word() + ".png",
		Price: price,
		Tags:  []string{fake.Lorem().Word()},
	}
}

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/talent-cloud/resumedex/internal/db"
	"github.com/talent-cloud/resumedex/internal/domain"
	"github.com/talent-cloud/resumedex/internal/domain/candidate"
	domsession "github.com/talent-cloud/resumedex/internal/domain/session"
)

type fakeKV struct {
	data    map[string][]byte
	lastTTL time.Duration
}

func newFakeKV() *fakeKV { return &fakeKV{data: make(map[string][]byte)} }

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeKV) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	f.data[key] = value
	f.lastTTL = ttl
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestSaveGetRoundTrip(t *testing.T) {
	kv := newFakeKV()
	repo := New(kv, "resumedex:", 72*time.Hour)

	sc := domsession.Context{
		ID:    "s1",
		Query: "senior python developer",
		Matches: []candidate.Match{{
			ID:         "c1",
			FileName:   "ada.pdf",
			FinalScore: 0.9,
			Meta:       candidate.Metadata{Name: "Ada", Skills: []string{"python"}},
		}},
		TotalResults: 1,
		CreatedAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	if err := repo.Save(context.Background(), sc); err != nil {
		t.Fatalf("save: %v", err)
	}
	if kv.lastTTL != 72*time.Hour {
		t.Errorf("ttl = %v", kv.lastTTL)
	}

	got, err := repo.Get(context.Background(), "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Query != sc.Query || got.TotalResults != 1 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Matches) != 1 || got.Matches[0].Meta.Name != "Ada" {
		t.Errorf("matches not preserved: %+v", got.Matches)
	}
}

func TestGetMissing(t *testing.T) {
	repo := New(newFakeKV(), "resumedex:", time.Hour)
	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	kv := newFakeKV()
	repo := New(kv, "resumedex:", time.Hour)
	_ = repo.Save(context.Background(), domsession.Context{ID: "s1"})

	if err := repo.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(context.Background(), "s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

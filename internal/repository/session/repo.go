// Package session persists frozen search contexts in Redis with a TTL.
// The engine never calls this directly; the transport layer saves a context
// after a search and replays it into follow-up questions.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/talent-cloud/resumedex/internal/db"
	"github.com/talent-cloud/resumedex/internal/domain"
	domsession "github.com/talent-cloud/resumedex/internal/domain/session"
)

// store is the consumer interface for session persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Repo stores session contexts as JSON values.
type Repo struct {
	store     store
	keyPrefix string
	ttl       time.Duration
}

// New creates a session repository.
func New(s store, keyPrefix string, ttl time.Duration) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix, ttl: ttl}
}

// Save persists a search context, refreshing the TTL.
func (r *Repo) Save(ctx context.Context, sc domsession.Context) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sc.ID, err)
	}
	if err := r.store.SetWithTTL(ctx, r.key(sc.ID), data, r.ttl); err != nil {
		return fmt.Errorf("save session %s: %w", sc.ID, err)
	}
	return nil
}

// Get loads a session context. Returns domain.ErrSessionNotFound when the
// session is missing or expired.
func (r *Repo) Get(ctx context.Context, id string) (domsession.Context, error) {
	data, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domsession.Context{}, domain.ErrSessionNotFound
		}
		return domsession.Context{}, fmt.Errorf("get session %s: %w", id, err)
	}

	var sc domsession.Context
	if err := json.Unmarshal(data, &sc); err != nil {
		return domsession.Context{}, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return sc, nil
}

// Delete removes a session context. Deleting a missing session is not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

func (r *Repo) key(id string) string {
	return r.keyPrefix + "session:" + id
}

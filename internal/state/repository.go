package state

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/storage"
)

// Repository reads and writes the journal document in a Store.
type Repository struct {
	store      storage.Store
	key        string
	legacyKeys []string
	now        func() time.Time
	log        *slog.Logger
}

// NewRepository creates a repository for the document stored under key.
// legacyKeys are probed in order when key holds nothing usable.
func NewRepository(store storage.Store, key string, legacyKeys []string, log *slog.Logger) *Repository {
	return &Repository{
		store:      store,
		key:        key,
		legacyKeys: legacyKeys,
		now:        time.Now,
		log:        log,
	}
}

// Load returns the canonical state. A document found under a legacy key is
// migrated and immediately written back under the current key. Corrupt
// documents are skipped; with nothing usable the default state is returned.
// Only store failures are returned as errors.
func (r *Repository) Load(ctx context.Context) (models.State, error) {
	doc, ok, err := r.read(ctx, r.key)
	if err != nil {
		return models.State{}, err
	}
	if ok {
		return Migrate(doc, r.now()), nil
	}

	for _, key := range r.legacyKeys {
		doc, ok, err := r.read(ctx, key)
		if err != nil {
			return models.State{}, err
		}
		if !ok {
			continue
		}
		s := Migrate(doc, r.now())
		if err := r.Save(ctx, s); err != nil {
			return models.State{}, fmt.Errorf("re-persisting legacy state: %w", err)
		}
		r.log.Info("migrated legacy journal", "from", key, "to", r.key, "sessions", len(s.Sessions))
		return s, nil
	}

	return models.DefaultState(), nil
}

// Save overwrites the stored document with s.
func (r *Repository) Save(ctx context.Context, s models.State) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := r.store.Put(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

func (r *Repository) read(ctx context.Context, key string) (map[string]any, bool, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil, false, nil
	}
	doc, err := Decode([]byte(raw))
	if err != nil {
		r.log.Warn("ignoring corrupt journal", "key", key, "error", err)
		return nil, false, nil
	}
	return doc, true, nil
}

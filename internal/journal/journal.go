// Package journal owns the training journal state. Every mutation runs under
// one lock on a private copy of the freshly loaded state, is persisted, and
// only then becomes visible to readers. Reloading before each operation keeps
// several processes sharing one store from overwriting each other's writes.
package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/ironpulse/internal/calendar"
	"github.com/claude/ironpulse/internal/models"
	"github.com/claude/ironpulse/internal/programs"
)

var (
	// ErrValidation is returned for malformed user input. State is unchanged.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when the targeted entity no longer exists.
	ErrNotFound = errors.New("not found")
)

// Persister loads and saves the whole journal document.
type Persister interface {
	Load(ctx context.Context) (models.State, error)
	Save(ctx context.Context, s models.State) error
}

// Journal is the single owner of the journal state.
type Journal struct {
	mu        sync.Mutex
	repo      Persister
	templates *programs.Catalog
	state     models.State
	now       func() time.Time
	log       *slog.Logger
}

// New loads the persisted state and returns a journal owning it.
func New(ctx context.Context, repo Persister, templates *programs.Catalog, log *slog.Logger) (*Journal, error) {
	s, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading journal: %w", err)
	}
	return &Journal{
		repo:      repo,
		templates: templates,
		state:     s,
		now:       time.Now,
		log:       log,
	}, nil
}

// refresh replaces the cached state with the stored document. Callers hold mu.
func (j *Journal) refresh(ctx context.Context) error {
	s, err := j.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading journal: %w", err)
	}
	j.state = s
	return nil
}

// update applies fn to a copy of the latest stored state. When fn reports a
// change the copy is persisted and replaces the current state.
func (j *Journal) update(ctx context.Context, fn func(s *models.State) (bool, error)) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.refresh(ctx); err != nil {
		return err
	}
	next := j.state.Clone()
	changed, err := fn(&next)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	if err := j.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("persisting journal: %w", err)
	}
	j.state = next
	return nil
}

// read runs fn against the latest stored state under the lock. When the store
// is unreachable the last loaded state is served. fn must not retain s.
func (j *Journal) read(fn func(s *models.State)) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.refresh(context.Background()); err != nil {
		j.log.Warn("serving cached journal", "error", err)
	}
	fn(&j.state)
}

// Snapshot returns a copy of the whole state.
func (j *Journal) Snapshot() models.State {
	var out models.State
	j.read(func(s *models.State) { out = s.Clone() })
	return out
}

func (j *Journal) today() string {
	return calendar.Today(j.now())
}

func (j *Journal) currentProgram(s *models.State) models.Program {
	return j.templates.Current(s.ProgramMode, s.CustomProgram)
}

// validDate defaults an empty date to today and rejects malformed ones.
func (j *Journal) validDate(date string) (string, error) {
	if date == "" {
		return j.today(), nil
	}
	if _, err := calendar.ParseDate(date); err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return date, nil
}

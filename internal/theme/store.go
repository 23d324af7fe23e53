package theme

import (
	"context"
	"sync"

	"github.com/bookhavenhq/bookhaven/internal/storage"
	pkgerrors "github.com/bookhavenhq/bookhaven/pkg/errors"
	"github.com/bookhavenhq/bookhaven/pkg/logger"
)

// Persisted theme values.
const (
	Dark  = "dark"
	Light = "light"
)

type snapshotRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// Store owns the light/dark flag. Toggling persists immediately; the view
// layer derives its palette from the current value.
type Store struct {
	repo snapshotRepo
	logg *logger.Logger

	mu    sync.Mutex
	dark  bool
	subs  map[int]func()
	nextS int
}

// Params groups dependencies for the theme store.
type Params struct {
	Repo        snapshotRepo
	DefaultDark bool
	Logger      *logger.Logger
}

// NewStore builds a theme store. DefaultDark applies when no value has been
// persisted yet.
func NewStore(params Params) (*Store, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "snapshot repository is required")
	}
	return &Store{
		repo: params.Repo,
		logg: params.Logger,
		dark: params.DefaultDark,
		subs: map[int]func(){},
	}, nil
}

// Load rehydrates the persisted theme. A missing key keeps the default.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, storage.KeyTheme)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.dark = raw == Dark
	s.mu.Unlock()
	return nil
}

// Toggle flips the flag and persists it, returning the new dark state.
func (s *Store) Toggle(ctx context.Context) (bool, error) {
	s.mu.Lock()
	s.dark = !s.dark
	dark := s.dark
	s.mu.Unlock()

	if err := s.repo.Put(ctx, storage.KeyTheme, Name(dark)); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "theme snapshot write failed", err)
		}
		return dark, err
	}

	s.notify()
	return dark, nil
}

// Dark reports whether the dark variant is active.
func (s *Store) Dark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Subscribe registers a view binding invoked after every toggle. The returned
// func unregisters it.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextS
	s.nextS++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Name returns the persisted literal for a dark flag.
func Name(dark bool) string {
	if dark {
		return Dark
	}
	return Light
}

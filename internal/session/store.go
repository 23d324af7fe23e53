package session

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/bookhavenhq/bookhaven/internal/storage"
	pkgerrors "github.com/bookhavenhq/bookhaven/pkg/errors"
	"github.com/bookhavenhq/bookhaven/pkg/logger"
)

// User is the mock identity established by login or signup. There are no
// credentials on file; the submitted password is accepted without
// verification. Do not carry this trust model anywhere near real user data.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type snapshotRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type cartClearer interface {
	Clear(ctx context.Context) error
}

// Store owns the current session identity. Logout clears the cart as a
// coupled side effect: a signed-out identity must not retain a prior cart.
type Store struct {
	repo snapshotRepo
	cart cartClearer
	logg *logger.Logger

	mu    sync.Mutex
	user  *User
	subs  map[int]func()
	nextS int
}

// Params groups dependencies for the session store.
type Params struct {
	Repo   snapshotRepo
	Cart   cartClearer
	Logger *logger.Logger
}

// NewStore builds a session store backed by the snapshot repository.
func NewStore(params Params) (*Store, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "snapshot repository is required")
	}
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	return &Store{
		repo: params.Repo,
		cart: params.Cart,
		logg: params.Logger,
		subs: map[int]func(){},
	}, nil
}

// Load rehydrates the persisted identity. A missing key means signed out.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, storage.KeyUser)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil
		}
		return err
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode user snapshot")
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return nil
}

// Login establishes a session for the given email. The password is accepted
// unverified; the display name is the local part of the email.
func (s *Store) Login(ctx context.Context, email, password string) (User, error) {
	_ = password

	user := User{
		Email: email,
		Name:  localPart(email),
	}
	if err := s.establish(ctx, user); err != nil {
		return User{}, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserEmail(ctx, user.Email), "user signed in")
	}
	return user, nil
}

// Signup establishes a session with the name as given. There is no account
// record and no uniqueness check.
func (s *Store) Signup(ctx context.Context, email, password, name string) (User, error) {
	_ = password

	user := User{Email: email, Name: name}
	if err := s.establish(ctx, user); err != nil {
		return User{}, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserEmail(ctx, user.Email), "user signed up")
	}
	return user, nil
}

// Logout clears the session and the cart, then removes the persisted
// identity.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.cart.Clear(ctx); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, storage.KeyUser); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "user snapshot delete failed", err)
		}
		return err
	}

	s.notify()
	if s.logg != nil {
		s.logg.Info(ctx, "user signed out")
	}
	return nil
}

// Current returns the active identity, or nil when signed out.
func (s *Store) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// SignedIn reports whether a session exists.
func (s *Store) SignedIn() bool {
	return s.Current() != nil
}

// Subscribe registers a view binding invoked after session changes. The
// returned func unregisters it.
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

func (s *Store) establish(ctx context.Context, user User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode user snapshot")
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	if err := s.repo.Put(ctx, storage.KeyUser, string(payload)); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "user snapshot write failed", err)
		}
		return err
	}

	s.notify()
	return nil
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

func localPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}

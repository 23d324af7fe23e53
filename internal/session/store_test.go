package session

import (
	"context"
	"testing"

	pkgerrors "github.com/bookhavenhq/bookhaven/pkg/errors"
)

type stubRepo struct {
	values map[string]string
}

func newStubRepo() *stubRepo {
	return &stubRepo{values: map[string]string{}}
}

func (r *stubRepo) Get(_ context.Context, key string) (string, error) {
	val, ok := r.values[key]
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "snapshot not found")
	}
	return val, nil
}

func (r *stubRepo) Put(_ context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

func (r *stubRepo) Delete(_ context.Context, key string) error {
	delete(r.values, key)
	return nil
}

type stubCart struct {
	cleared int
}

func (c *stubCart) Clear(context.Context) error {
	c.cleared++
	return nil
}

func newTestStore(t *testing.T) (*Store, *stubRepo, *stubCart) {
	t.Helper()
	repo := newStubRepo()
	cart := &stubCart{}
	store, err := NewStore(Params{Repo: repo, Cart: cart})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store, repo, cart
}

func TestNewStoreRequiresDependencies(t *testing.T) {
	t.Parallel()

	if _, err := NewStore(Params{Cart: &stubCart{}}); err == nil {
		t.Fatal("expected error for missing repo")
	}
	if _, err := NewStore(Params{Repo: newStubRepo()}); err == nil {
		t.Fatal("expected error for missing cart")
	}
}

func TestLoginDerivesNameFromEmail(t *testing.T) {
	t.Parallel()

	store, repo, _ := newTestStore(t)
	user, err := store.Login(context.Background(), "jane.doe@example.com", "ignored")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if user.Name != "jane.doe" {
		t.Fatalf("expected derived name jane.doe, got %q", user.Name)
	}
	if current := store.Current(); current == nil || current.Email != "jane.doe@example.com" {
		t.Fatalf("unexpected current user: %+v", current)
	}
	if repo.values["user"] != `{"email":"jane.doe@example.com","name":"jane.doe"}` {
		t.Fatalf("unexpected persisted user: %s", repo.values["user"])
	}
}

func TestSignupUsesGivenName(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(t)
	user, err := store.Signup(context.Background(), "jane@example.com", "ignored", "Jane Doe")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.Name != "Jane Doe" {
		t.Fatalf("expected given name, got %q", user.Name)
	}
	if !store.SignedIn() {
		t.Fatal("expected signed-in session")
	}
}

func TestLogoutClearsSessionAndCart(t *testing.T) {
	t.Parallel()

	store, repo, cart := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Login(ctx, "jane@example.com", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if store.Current() != nil {
		t.Fatal("expected no session after logout")
	}
	if cart.cleared != 1 {
		t.Fatalf("expected cart cleared once, got %d", cart.cleared)
	}
	if _, ok := repo.values["user"]; ok {
		t.Fatal("expected user key removed")
	}

	// Logout with no session is still safe and still clears the cart.
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("repeat logout failed: %v", err)
	}
	if cart.cleared != 2 {
		t.Fatalf("expected cart cleared twice, got %d", cart.cleared)
	}
}

func TestLoadRehydratesPersistedIdentity(t *testing.T) {
	t.Parallel()

	store, repo, _ := newTestStore(t)
	repo.values["user"] = `{"email":"sam@example.com","name":"sam"}`

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if current := store.Current(); current == nil || current.Name != "sam" {
		t.Fatalf("unexpected rehydrated user: %+v", current)
	}
}

func TestLoadMissingKeyMeansSignedOut(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(t)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if store.SignedIn() {
		t.Fatal("expected signed-out session")
	}
}

func TestSubscribeFiresOnSessionChanges(t *testing.T) {
	t.Parallel()

	store, _, _ := newTestStore(t)
	ctx := context.Background()

	fired := 0
	cancel := store.Subscribe(func() { fired++ })

	if _, err := store.Login(ctx, "a@b.c", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := store.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	cancel()
	if _, err := store.Login(ctx, "a@b.c", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if fired != 2 {
		t.Fatalf("expected 2 notifications, got %d", fired)
	}
}

func TestLocalPartWithoutAt(t *testing.T) {
	t.Parallel()

	if got := localPart("nodomain"); got != "nodomain" {
		t.Fatalf("unexpected local part: %q", got)
	}
}

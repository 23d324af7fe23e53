package cart

import (
	"context"
	"testing"

	"github.com/bookhavenhq/bookhaven/internal/catalog"
	"github.com/bookhavenhq/bookhaven/internal/storage"
	pkgerrors "github.com/bookhavenhq/bookhaven/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubRepo struct {
	values map[string]string
	putErr error
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
	if r.putErr != nil {
		return r.putErr
	}
	r.values[key] = value
	return nil
}

func newTestStore(t *testing.T) (*Store, *stubRepo) {
	t.Helper()
	repo := newStubRepo()
	store, err := NewStore(Params{Repo: repo})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return store, repo
}

func mustBook(t *testing.T, id int) catalog.Book {
	t.Helper()
	book, ok := catalog.FindByID(id)
	if !ok {
		t.Fatalf("missing catalog book %d", id)
	}
	return book
}

func TestNewStoreRequiresRepo(t *testing.T) {
	t.Parallel()

	if _, err := NewStore(Params{}); err == nil {
		t.Fatal("expected error for missing repo")
	}
}

func TestAddSameBookAccumulatesSingleLine(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()
	dune := mustBook(t, 5)

	for i := 0; i < 3; i++ {
		if err := store.Add(ctx, dune); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected a single line item, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, id := range []int{3, 1, 5} {
		if err := store.Add(ctx, mustBook(t, id)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	if err := store.Add(ctx, mustBook(t, 3)); err != nil {
		t.Fatalf("repeat add failed: %v", err)
	}

	items := store.Items()
	got := []int{items[0].ID, items[1].ID, items[2].ID}
	if got[0] != 3 || got[1] != 1 || got[2] != 5 {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, mustBook(t, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.Remove(ctx, 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := store.Remove(ctx, 1); err != nil {
		t.Fatalf("repeat remove failed: %v", err)
	}
	if err := store.Remove(ctx, 99); err != nil {
		t.Fatalf("remove of unknown id failed: %v", err)
	}
	if len(store.Items()) != 0 {
		t.Fatal("expected empty cart")
	}
}

func TestSetQuantityAbsolute(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, mustBook(t, 2)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.SetQuantity(ctx, 2, 7); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	if got := store.Items()[0].Quantity; got != 7 {
		t.Fatalf("expected quantity 7, got %d", got)
	}

	// Unknown id is a no-op.
	if err := store.SetQuantity(ctx, 99, 4); err != nil {
		t.Fatalf("set quantity on unknown id failed: %v", err)
	}
	if got := len(store.Items()); got != 1 {
		t.Fatalf("expected 1 line item, got %d", got)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, mustBook(t, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.Add(ctx, mustBook(t, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	for _, q := range []int{0, -3} {
		if err := store.SetQuantity(ctx, 1, q); err != nil {
			t.Fatalf("set quantity %d failed: %v", q, err)
		}
		if len(store.Items()) != 0 {
			t.Fatalf("expected empty cart after quantity %d", q)
		}
	}
}

func TestTotalAndItemCount(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if !store.Total().IsZero() {
		t.Fatal("expected zero total for empty cart")
	}
	if store.ItemCount() != 0 {
		t.Fatal("expected zero count for empty cart")
	}

	dune := mustBook(t, 5) // 19.99
	if err := store.Add(ctx, dune); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.Add(ctx, dune); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.Add(ctx, mustBook(t, 2)); err != nil { // 27.99
		t.Fatalf("add failed: %v", err)
	}

	want := decimal.RequireFromString("67.97")
	if got := store.Total(); !got.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, got)
	}
	if got := store.ItemCount(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
}

func TestClearResetsDerivedValues(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, mustBook(t, 4)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if !store.Total().IsZero() || store.ItemCount() != 0 {
		t.Fatal("expected zero total and count after clear")
	}
}

func TestMutationsPersistImmediately(t *testing.T) {
	t.Parallel()

	store, repo := newTestStore(t)
	ctx := context.Background()

	if err := store.Add(ctx, mustBook(t, 5)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if repo.values[storage.KeyCart] == "" {
		t.Fatal("expected cart snapshot after add")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if repo.values[storage.KeyCart] != "[]" {
		t.Fatalf("expected empty array snapshot, got %q", repo.values[storage.KeyCart])
	}
}

func TestPersistFailureSurfacesButStateAdvances(t *testing.T) {
	t.Parallel()

	store, repo := newTestStore(t)
	repo.putErr = pkgerrors.New(pkgerrors.CodeDependency, "storage unavailable")

	err := store.Add(context.Background(), mustBook(t, 1))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
	if len(store.Items()) != 1 {
		t.Fatal("expected in-memory state to advance despite persist failure")
	}
}

func TestSubscribeNotifiesAndCancels(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx := context.Background()

	var events []EventKind
	cancel := store.Subscribe(func(e Event) {
		events = append(events, e.Kind)
	})

	if err := store.Add(ctx, mustBook(t, 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.SetQuantity(ctx, 1, 2); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	cancel()
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if len(events) != 2 || events[0] != EventAdd || events[1] != EventQuantity {
		t.Fatalf("unexpected events: %v", events)
	}
}

func TestLoadRoundTripsThroughSQLite(t *testing.T) {
	t.Parallel()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&storage.Snapshot{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	repo := storage.NewRepository(conn)
	ctx := context.Background()

	store, err := NewStore(Params{Repo: repo})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.Add(ctx, mustBook(t, 3)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.Add(ctx, mustBook(t, 5)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := store.SetQuantity(ctx, 3, 4); err != nil {
		t.Fatalf("set quantity failed: %v", err)
	}

	reopened, err := NewStore(Params{Repo: repo})
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := reopened.Load(ctx); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	items := reopened.Items()
	if len(items) != 2 || items[0].ID != 3 || items[0].Quantity != 4 || items[1].ID != 5 {
		t.Fatalf("unexpected rehydrated cart: %+v", items)
	}
	if !reopened.Total().Equal(store.Total()) {
		t.Fatalf("total changed across reload: %s vs %s", reopened.Total(), store.Total())
	}
}

func TestLoadMissingSnapshotMeansEmptyCart(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(store.Items()) != 0 {
		t.Fatal("expected empty cart")
	}
}

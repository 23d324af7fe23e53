package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/bookhavenhq/bookhaven/internal/catalog"
	"github.com/bookhavenhq/bookhaven/internal/storage"
	pkgerrors "github.com/bookhavenhq/bookhaven/pkg/errors"
	"github.com/bookhavenhq/bookhaven/pkg/logger"
	"github.com/shopspring/decimal"
)

// LineItem is one cart entry: the full book record plus a quantity that is
// always at least 1. A quantity that would drop to 0 removes the line instead.
type LineItem struct {
	catalog.Book
	Quantity int `json:"quantity"`
}

// Subtotal returns price multiplied by quantity for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// EventKind identifies which mutation produced a change notification.
type EventKind string

const (
	EventAdd      EventKind = "add"
	EventRemove   EventKind = "remove"
	EventQuantity EventKind = "quantity"
	EventClear    EventKind = "clear"
)

// Event is delivered to subscribers after a mutation has committed and
// persisted. The view layer reveals the cart drawer on EventAdd.
type Event struct {
	Kind EventKind
}

type snapshotRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
}

// Store owns the cart line items for the running client. Line items keep
// insertion order and hold at most one entry per book id. Every mutation
// persists the full cart before subscribers are notified; the total is always
// derived, never stored.
type Store struct {
	repo snapshotRepo
	logg *logger.Logger

	mu    sync.Mutex
	items []LineItem
	subs  map[int]func(Event)
	nextS int
}

// Params groups dependencies for the cart store.
type Params struct {
	Repo   snapshotRepo
	Logger *logger.Logger
}

// NewStore builds a cart store backed by the snapshot repository.
func NewStore(params Params) (*Store, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "snapshot repository is required")
	}
	return &Store{
		repo: params.Repo,
		logg: params.Logger,
		subs: map[int]func(Event){},
	}, nil
}

// Load rehydrates the cart from its persisted snapshot. A missing key means a
// fresh start with an empty cart.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.repo.Get(ctx, storage.KeyCart)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil
		}
		return err
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode cart snapshot")
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Add increments the quantity for an existing line or appends a new line with
// quantity 1. Callers gate this behind an authenticated session; the store
// itself does not check.
func (s *Store) Add(ctx context.Context, book catalog.Book) error {
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID == book.ID {
			s.items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, LineItem{Book: book, Quantity: 1})
	}
	s.mu.Unlock()

	return s.commit(ctx, Event{Kind: EventAdd})
}

// Remove drops the line with the given book id. Removing an absent id is a
// no-op, not an error.
func (s *Store) Remove(ctx context.Context, bookID int) error {
	s.mu.Lock()
	filtered := s.items[:0]
	for _, item := range s.items {
		if item.ID != bookID {
			filtered = append(filtered, item)
		}
	}
	s.items = filtered
	s.mu.Unlock()

	return s.commit(ctx, Event{Kind: EventRemove})
}

// SetQuantity sets the line quantity to exactly the given value. A quantity
// of zero or less removes the line; an unknown id is a no-op.
func (s *Store) SetQuantity(ctx context.Context, bookID, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, bookID)
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == bookID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.mu.Unlock()

	return s.commit(ctx, Event{Kind: EventQuantity})
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	return s.commit(ctx, Event{Kind: EventClear})
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total derives the cart total as the sum of line subtotals. It is recomputed
// on every call; an empty cart totals zero.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount derives the sum of quantities across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Subscribe registers a view binding invoked after every committed mutation.
// The returned func unregisters it.
func (s *Store) Subscribe(fn func(Event)) func() {
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

func (s *Store) commit(ctx context.Context, event Event) error {
	s.mu.Lock()
	items := s.items
	if items == nil {
		items = []LineItem{}
	}
	payload, err := json.Marshal(items)
	subs := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}

	persistErr := s.repo.Put(ctx, storage.KeyCart, string(payload))
	if persistErr != nil && s.logg != nil {
		s.logg.Error(ctx, "cart snapshot write failed", persistErr)
	}

	for _, fn := range subs {
		fn(event)
	}
	return persistErr
}

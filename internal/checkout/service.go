package checkout

import (
	"context"
	"time"

	"github.com/bookhavenhq/bookhaven/internal/cart"
	pkgerrors "github.com/bookhavenhq/bookhaven/pkg/errors"
	"github.com/bookhavenhq/bookhaven/pkg/logger"
	"github.com/bookhavenhq/bookhaven/pkg/validators"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Form carries the checkout fields. All fields are required; the card number
// is accepted without any processing (mock payment).
type Form struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required"`
	Card    string `json:"card" validate:"required"`
}

// Order is the confirmation record minted when a checkout succeeds. It is
// logged but never persisted; there is no order history in this client.
type Order struct {
	ID       uuid.UUID
	Items    []cart.LineItem
	Total    decimal.Decimal
	PlacedAt time.Time
}

type cartReader interface {
	Items() []cart.LineItem
	Total() decimal.Decimal
}

// Service validates checkout submissions and mints confirmation orders.
type Service interface {
	PlaceOrder(ctx context.Context, form Form) (*Order, error)
}

type service struct {
	cart cartReader
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds a checkout service reading from the given cart.
func NewService(cartStore cartReader, logg *logger.Logger) (Service, error) {
	if cartStore == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	return &service{
		cart: cartStore,
		logg: logg,
		now:  time.Now,
	}, nil
}

// PlaceOrder validates the form, snapshots the cart, and returns the order.
// The cart itself is untouched; the owning view clears it after the
// confirmation delay.
func (s *service) PlaceOrder(ctx context.Context, form Form) (*Order, error) {
	if err := validators.Struct(form); err != nil {
		return nil, err
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := &Order{
		ID:       uuid.New(),
		Items:    items,
		Total:    s.cart.Total(),
		PlacedAt: s.now(),
	}

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"order_id":   order.ID.String(),
			"line_items": len(order.Items),
			"total":      order.Total.StringFixed(2),
		})
		s.logg.Info(ctx, "order placed")
	}

	return order, nil
}

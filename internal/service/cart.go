package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/gordopods/storefront/internal/cart"
	"github.com/gordopods/storefront/internal/pricing"
	"github.com/gordopods/storefront/internal/store"
)

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

type cartDocument struct {
	Items     []cart.LineItem `json:"items"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type CartService struct {
	Store   store.Store
	Catalog CatalogRepository
}

func cartKey(session string) (string, error) {
	if !sessionPattern.MatchString(session) {
		return "", fmt.Errorf("%w: invalid session id", ErrValidation)
	}
	return "cart:" + session, nil
}

// Get returns an empty cart for unknown sessions.
func (s *CartService) Get(ctx context.Context, session string) (*cart.Ledger, error) {
	key, err := cartKey(session)
	if err != nil {
		return nil, err
	}
	var doc cartDocument
	if err := store.LoadJSON(ctx, s.Store, key, &doc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return cart.New(), nil
		}
		return nil, err
	}
	return cart.Restore(doc.Items), nil
}

func (s *CartService) save(ctx context.Context, session string, l *cart.Ledger) error {
	key, err := cartKey(session)
	if err != nil {
		return err
	}
	if l.Empty() {
		return s.Store.Delete(ctx, key)
	}
	return store.SaveJSON(ctx, s.Store, key, cartDocument{Items: l.Items(), UpdatedAt: time.Now().UTC()})
}

func (s *CartService) AddItem(ctx context.Context, session, productID string, quantity int, picks []pricing.Pick) (*cart.Ledger, error) {
	l, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	p, err := s.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, notFound(err, "product")
	}
	selections, err := pricing.Resolve(p.VariationGroups, picks)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if _, err := l.AddItem(p, quantity, selections); err != nil {
		return nil, classifyCartError(err)
	}
	if err := s.save(ctx, session, l); err != nil {
		return nil, err
	}
	return l, nil
}

// SetQuantity re-checks stock against the current catalog but keeps the price
// the item was added with.
func (s *CartService) SetQuantity(ctx context.Context, session, itemID string, quantity int) (*cart.Ledger, error) {
	l, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	it, ok := l.Item(itemID)
	if !ok {
		return nil, fmt.Errorf("%w: cart item", ErrNotFound)
	}
	if quantity > cart.MaxQuantity {
		return nil, classifyCartError(cart.ErrInvalidQuantity)
	}

	if quantity > it.Quantity {
		p, err := s.Catalog.GetProduct(ctx, it.ProductID)
		if err != nil {
			return nil, notFound(err, "product")
		}
		if !p.Active {
			return nil, classifyCartError(cart.ErrProductUnavailable)
		}
		if p.StockControl {
			others := 0
			for _, other := range l.Items() {
				if other.ProductID == p.ID && other.ID != itemID {
					others += other.Quantity
				}
			}
			if others+quantity > p.StockQuantity {
				return nil, classifyCartError(&cart.OutOfStockError{ProductID: p.ID, Requested: others + quantity, Available: p.StockQuantity})
			}
		}
	}

	if _, err := l.SetQuantity(itemID, quantity); err != nil {
		return nil, classifyCartError(err)
	}
	if err := s.save(ctx, session, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *CartService) RemoveItem(ctx context.Context, session, itemID string) (*cart.Ledger, error) {
	l, err := s.Get(ctx, session)
	if err != nil {
		return nil, err
	}
	if !l.RemoveItem(itemID) {
		return l, nil
	}
	if err := s.save(ctx, session, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *CartService) Clear(ctx context.Context, session string) error {
	key, err := cartKey(session)
	if err != nil {
		return err
	}
	return s.Store.Delete(ctx, key)
}

func classifyCartError(err error) error {
	var oos *cart.OutOfStockError
	switch {
	case errors.As(err, &oos), errors.Is(err, cart.ErrProductUnavailable):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
}

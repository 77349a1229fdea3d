package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gordopods/storefront/internal/cart"
	"github.com/gordopods/storefront/internal/delivery"
	"github.com/gordopods/storefront/internal/events"
	"github.com/gordopods/storefront/internal/money"
	"github.com/gordopods/storefront/internal/notify"
	"github.com/gordopods/storefront/internal/order"
	"github.com/gordopods/storefront/internal/repo"
	"github.com/gordopods/storefront/internal/transport"
	"github.com/gordopods/storefront/pkg/logging"
)

const maxNumberAttempts = 3

// ErrCheckout marks checkout rejections the customer can fix (HTTP 422).
var ErrCheckout = errors.New("checkout rejected")

type CheckoutService struct {
	Carts     *CartService
	Settings  *SettingsService
	Orders    OrderRepository
	Assembler order.Assembler
	Publisher events.Publisher
	Notifier  notify.Notifier

	EventsTopic   string
	StoreWhatsApp string
	Locale        money.Locale
}

type CheckoutResult struct {
	Order       order.Order
	Summary     string
	WhatsAppURL string
}

func (s *CheckoutService) quote(ctx context.Context, req transport.DeliveryRequest) (*delivery.Quote, error) {
	cfg, err := s.Settings.Delivery(ctx)
	if err != nil {
		return nil, err
	}
	q := delivery.NewQuote(cfg)
	if req.Method == "" {
		return q, nil
	}
	m, err := delivery.ParseMethod(req.Method)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCheckout, err)
	}
	if _, err := q.SelectMethod(m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCheckout, err)
	}
	if m == delivery.MethodNeighborhood && req.NeighborhoodID != "" {
		if _, err := q.SelectNeighborhood(req.NeighborhoodID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCheckout, err)
		}
	}
	return q, nil
}

// Quote prices the cart with the chosen delivery without creating anything.
func (s *CheckoutService) Quote(ctx context.Context, session string, req transport.DeliveryRequest) (transport.QuoteResponse, error) {
	l, err := s.Carts.Get(ctx, session)
	if err != nil {
		return transport.QuoteResponse{}, err
	}
	q, err := s.quote(ctx, req)
	if err != nil {
		return transport.QuoteResponse{}, err
	}
	resp := transport.QuoteResponse{
		Fee:      q.CurrentFee(),
		Subtotal: l.Subtotal(),
		Total:    l.Subtotal() + q.CurrentFee(),
	}
	if opt, err := q.Option(); err == nil {
		resp.Label = opt.Label
	}
	return resp, nil
}

func (s *CheckoutService) Checkout(ctx context.Context, session string, req transport.CheckoutRequest) (CheckoutResult, error) {
	l := logging.FromContext(ctx).With("svc", "checkout")

	ledger, err := s.Carts.Get(ctx, session)
	if err != nil {
		return CheckoutResult{}, err
	}
	// cart and customer errors win over delivery ones
	if err := order.Precheck(ledger, req.Customer); err != nil {
		return CheckoutResult{}, fmt.Errorf("%w: %w", ErrCheckout, err)
	}
	q, err := s.quote(ctx, req.Delivery)
	if err != nil {
		return CheckoutResult{}, err
	}

	o, err := s.place(ctx, ledger, req, q)
	if err != nil {
		return CheckoutResult{}, err
	}
	l = l.With("order_id", o.ID, "order_number", o.Number)

	if err := s.Carts.Clear(ctx, session); err != nil {
		l.Warn("clear_cart_error", "error", err)
	}
	s.publish(ctx, events.TypeOrderCreated, o)

	summary := order.RenderSummary(o, s.Locale)
	destination := s.StoreWhatsApp
	if a, err := s.Settings.Appearance(ctx); err == nil && a.WhatsAppNumber != "" {
		destination = a.WhatsAppNumber
	}
	if s.Notifier != nil && destination != "" {
		if err := s.Notifier.Notify(ctx, destination, summary); err != nil {
			l.Warn("notify_error", "error", err)
		}
	}

	l.Info("checkout_success", "total", o.Total)
	return CheckoutResult{
		Order:       o,
		Summary:     summary,
		WhatsAppURL: notify.WhatsAppLink(destination, summary),
	}, nil
}

// place assembles the order and stores it, drawing a new order number when the
// generated one is already taken.
func (s *CheckoutService) place(ctx context.Context, ledger *cart.Ledger, req transport.CheckoutRequest, q *delivery.Quote) (order.Order, error) {
	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		o, err := s.Assembler.Assemble(ledger, req.Customer, q, req.Notes)
		if err != nil {
			return order.Order{}, fmt.Errorf("%w: %w", ErrCheckout, err)
		}

		err = s.Orders.CreateOrder(ctx, o)
		switch {
		case err == nil:
			return o, nil
		case errors.Is(err, gorm.ErrDuplicatedKey):
			lastErr = err
			continue
		case errors.Is(err, repo.ErrInsufficientStock):
			return order.Order{}, fmt.Errorf("%w: %w", ErrConflict, err)
		default:
			return order.Order{}, &order.PersistenceError{Op: "save", Err: err}
		}
	}
	return order.Order{}, &order.PersistenceError{Op: "save", Err: lastErr}
}

func (s *CheckoutService) publish(ctx context.Context, typ string, o order.Order) {
	if s.Publisher == nil {
		return
	}
	ev := events.NewOrderEvent(typ, o, time.Now())
	if err := s.Publisher.PublishEvent(ctx, s.EventsTopic, o.ID, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "type", typ, "order_id", o.ID, "error", err)
	}
}

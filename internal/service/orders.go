package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gordopods/storefront/internal/events"
	"github.com/gordopods/storefront/internal/order"
	"github.com/gordopods/storefront/internal/repo"
	"github.com/gordopods/storefront/pkg/logging"
)

type OrderService struct {
	Repo        OrderRepository
	Publisher   events.Publisher
	EventsTopic string
}

func (s *OrderService) List(ctx context.Context, status string, offset, limit int) (int64, []order.Order, error) {
	var st order.Status
	if status != "" {
		parsed, err := order.ParseStatus(status)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		st = parsed
	}
	return s.Repo.ListOrders(ctx, st, offset, limit)
}

func (s *OrderService) Get(ctx context.Context, id string) (order.Order, error) {
	o, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return order.Order{}, notFound(err, "order")
	}
	return o, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (order.Order, error) {
	next, err := order.ParseStatus(status)
	if err != nil {
		return order.Order{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return order.Order{}, err
	}
	updated, err := order.Transition(current, next)
	if err != nil {
		return order.Order{}, fmt.Errorf("%w: %w", ErrConflict, err)
	}

	if err := s.Repo.UpdateOrderStatus(ctx, id, current.Status, next); err != nil {
		if errors.Is(err, repo.ErrStaleWrite) {
			return order.Order{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return order.Order{}, notFound(err, "order")
	}

	if s.Publisher != nil {
		ev := events.NewOrderEvent(events.TypeOrderStatusChanged, updated, time.Now())
		if err := s.Publisher.PublishEvent(ctx, s.EventsTopic, updated.ID, ev); err != nil {
			logging.FromContext(ctx).Warn("publish_event_error", "order_id", id, "error", err)
		}
	}
	return updated, nil
}

func (s *OrderService) MarkWhatsAppSent(ctx context.Context, id string) (order.Order, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return order.Order{}, err
	}
	if err := s.Repo.MarkWhatsAppSent(ctx, id); err != nil {
		return order.Order{}, notFound(err, "order")
	}
	return order.MarkWhatsAppSent(current), nil
}

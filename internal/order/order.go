// Package order assembles checked-out carts into immutable orders and renders
// the message sent to the store over WhatsApp.
package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gordopods/storefront/internal/cart"
	"github.com/gordopods/storefront/internal/delivery"
)

type Status string

const (
	StatusNew        Status = "new"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusNew:        {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped},
	StatusShipped:    {StatusDelivered},
}

var ErrUnknownStatus = errors.New("unknown order status")

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusNew, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, st := range transitions[s] {
		if st == next {
			return true
		}
	}
	return false
}

// Label is the Portuguese name shown to the store staff.
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "Novo"
	case StatusProcessing:
		return "Em preparo"
	case StatusShipped:
		return "Enviado"
	case StatusDelivered:
		return "Entregue"
	case StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

type Address struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	District   string `json:"district"`
	City       string `json:"city,omitempty"`
	Reference  string `json:"reference,omitempty"`
}

func (a Address) Complete() bool {
	return !blank(a.Street) && !blank(a.Number) && !blank(a.District)
}

type Customer struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email,omitempty"`
	Address Address `json:"address"`
}

type Order struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	Customer     Customer        `json:"customer"`
	Items        []cart.LineItem `json:"items"`
	Subtotal     int64           `json:"subtotal"`
	Delivery     delivery.Option `json:"delivery"`
	Total        int64           `json:"total"`
	Notes        string          `json:"notes,omitempty"`
	Status       Status          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	WhatsAppSent bool            `json:"whatsapp_sent"`
}

func (o Order) clone() Order {
	items := make([]cart.LineItem, len(o.Items))
	for i, it := range o.Items {
		items[i] = it.Clone()
	}
	o.Items = items
	return o
}

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

// Transition returns a copy of o in the next status.
func Transition(o Order, next Status) (Order, error) {
	if !o.Status.CanTransitionTo(next) {
		return o, &InvalidTransitionError{From: o.Status, To: next}
	}
	out := o.clone()
	out.Status = next
	return out, nil
}

func MarkWhatsAppSent(o Order) Order {
	out := o.clone()
	out.WhatsAppSent = true
	return out
}

// PersistenceError wraps a failure of the order store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func blank(s string) bool { return strings.TrimSpace(s) == "" }

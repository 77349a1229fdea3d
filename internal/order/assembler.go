package order

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gordopods/storefront/internal/cart"
	"github.com/gordopods/storefront/internal/delivery"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrMissingCustomerInfo = errors.New("customer name and phone are required")
	ErrIncompleteAddress   = errors.New("street, number and district are required for delivery")
	ErrUnresolvedDelivery  = delivery.ErrUnresolvedDelivery
)

// DefaultNumber formats t as YYMMDD-HHMMSS in UTC followed by four random digits.
func DefaultNumber(t time.Time) string {
	return fmt.Sprintf("%s-%04d", t.UTC().Format("060102-150405"), rand.IntN(10000))
}

type Assembler struct {
	Now       func() time.Time
	NewID     func() string
	NewNumber func(time.Time) string
}

func NewAssembler() Assembler {
	return Assembler{
		Now:       func() time.Time { return time.Now().UTC() },
		NewID:     uuid.NewString,
		NewNumber: DefaultNumber,
	}
}

// Precheck runs the checks that do not depend on delivery: a non-empty cart and
// the customer's name and phone.
func Precheck(c *cart.Ledger, cust Customer) error {
	if c == nil || c.Empty() {
		return ErrEmptyCart
	}
	if blank(cust.Name) || blank(cust.Phone) {
		return ErrMissingCustomerInfo
	}
	return nil
}

// Assemble validates the checkout and snapshots the cart into a new order.
// Checks run in order and stop at the first failure.
func (a Assembler) Assemble(c *cart.Ledger, cust Customer, q *delivery.Quote, notes string) (Order, error) {
	if err := Precheck(c, cust); err != nil {
		return Order{}, err
	}
	if q == nil {
		return Order{}, ErrUnresolvedDelivery
	}
	if q.RequiresAddress() && !cust.Address.Complete() {
		return Order{}, ErrIncompleteAddress
	}
	opt, err := q.Option()
	if err != nil {
		return Order{}, err
	}

	cust.Name = strings.TrimSpace(cust.Name)
	cust.Phone = strings.TrimSpace(cust.Phone)
	if opt.IsPickup() {
		cust.Address = Address{}
	}

	now := a.Now()
	subtotal := c.Subtotal()
	return Order{
		ID:        a.NewID(),
		Number:    a.NewNumber(now),
		Customer:  cust,
		Items:     c.Items(),
		Subtotal:  subtotal,
		Delivery:  opt,
		Total:     subtotal + q.CurrentFee(),
		Notes:     strings.TrimSpace(notes),
		Status:    StatusNew,
		CreatedAt: now,
	}, nil
}

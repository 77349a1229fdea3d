// Package cart keeps the line items of one shopping session and their totals.
package cart

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/gordopods/storefront/internal/catalog"
	"github.com/gordopods/storefront/internal/pricing"
)

// MaxQuantity caps the units of a single line.
const MaxQuantity = 999

var (
	ErrInvalidQuantity    = errors.New("quantity must be between 1 and 999")
	ErrProductUnavailable = errors.New("product is not available")
	ErrAmountTooLarge     = errors.New("cart total exceeds the supported amount")
)

type OutOfStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("product %q: requested %d, only %d in stock", e.ProductID, e.Requested, e.Available)
}

type LineItem struct {
	ID            string              `json:"id"`
	ProductID     string              `json:"product_id"`
	ProductName   string              `json:"product_name"`
	UnitBasePrice int64               `json:"unit_base_price"`
	Selections    []pricing.Selection `json:"selections"`
	Quantity      int                 `json:"quantity"`
	TotalPrice    int64               `json:"total_price"`
}

func (li LineItem) UnitPrice() int64 {
	return pricing.UnitPrice(li.UnitBasePrice, li.Selections)
}

func (li LineItem) Clone() LineItem {
	if li.Selections != nil {
		li.Selections = append([]pricing.Selection(nil), li.Selections...)
	}
	return li
}

// lineTotal prices quantity units, failing instead of overflowing.
func lineTotal(unit int64, quantity int) (int64, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return 0, ErrInvalidQuantity
	}
	if unit > math.MaxInt64/int64(quantity) {
		return 0, ErrAmountTooLarge
	}
	return unit * int64(quantity), nil
}

// fits reports whether replacing line skip (-1 for none) with total keeps the
// subtotal representable.
func (l *Ledger) fits(skip int, total int64) bool {
	sum := total
	for i, it := range l.items {
		if i == skip {
			continue
		}
		if it.TotalPrice > math.MaxInt64-sum {
			return false
		}
		sum += it.TotalPrice
	}
	return true
}

// Ledger is not safe for concurrent use. A session owns one ledger at a time.
type Ledger struct {
	items    []LineItem
	subtotal int64
	newID    func() string
}

func New() *Ledger {
	return &Ledger{newID: uuid.NewString}
}

// Restore rebuilds a ledger from persisted items. Stored totals are ignored and
// recomputed; items with an out-of-range quantity or an unrepresentable total
// are dropped.
func Restore(items []LineItem) *Ledger {
	l := New()
	for _, it := range items {
		total, err := lineTotal(it.UnitPrice(), it.Quantity)
		if err != nil || !l.fits(-1, total) {
			continue
		}
		it = it.Clone()
		if it.ID == "" {
			it.ID = l.newID()
		}
		it.TotalPrice = total
		l.items = append(l.items, it)
		l.recalc()
	}
	l.recalc()
	return l
}

// AddItem merges into an existing line when the product and the set of chosen
// options match, otherwise appends a new line. Prices are frozen at this point.
func (l *Ledger) AddItem(p catalog.Product, quantity int, selections []pricing.Selection) (LineItem, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return LineItem{}, ErrInvalidQuantity
	}
	if !p.Active {
		return LineItem{}, ErrProductUnavailable
	}
	if err := pricing.ValidateSelections(p.VariationGroups, selections); err != nil {
		return LineItem{}, err
	}
	if p.StockControl {
		inCart := 0
		for _, it := range l.items {
			if it.ProductID == p.ID {
				inCart += it.Quantity
			}
		}
		if inCart+quantity > p.StockQuantity {
			return LineItem{}, &OutOfStockError{ProductID: p.ID, Requested: inCart + quantity, Available: p.StockQuantity}
		}
	}

	key := selectionKey(selections)
	for i := range l.items {
		it := &l.items[i]
		if it.ProductID == p.ID && selectionKey(it.Selections) == key {
			merged := it.Quantity + quantity
			total, err := lineTotal(it.UnitPrice(), merged)
			if err != nil {
				return LineItem{}, err
			}
			if !l.fits(i, total) {
				return LineItem{}, ErrAmountTooLarge
			}
			it.Quantity = merged
			it.TotalPrice = total
			l.recalc()
			return it.Clone(), nil
		}
	}

	it := LineItem{
		ID:            l.newID(),
		ProductID:     p.ID,
		ProductName:   p.Name,
		UnitBasePrice: p.Price,
		Selections:    append([]pricing.Selection(nil), selections...),
		Quantity:      quantity,
	}
	total, err := lineTotal(it.UnitPrice(), quantity)
	if err != nil {
		return LineItem{}, err
	}
	if !l.fits(-1, total) {
		return LineItem{}, ErrAmountTooLarge
	}
	it.TotalPrice = total
	l.items = append(l.items, it)
	l.recalc()
	return it.Clone(), nil
}

// SetQuantity reports whether the item exists. A quantity below 1 removes it;
// one above MaxQuantity is rejected and leaves the line untouched.
func (l *Ledger) SetQuantity(itemID string, quantity int) (bool, error) {
	if quantity < 1 {
		return l.RemoveItem(itemID), nil
	}
	for i := range l.items {
		if l.items[i].ID != itemID {
			continue
		}
		total, err := lineTotal(l.items[i].UnitPrice(), quantity)
		if err != nil {
			return true, err
		}
		if !l.fits(i, total) {
			return true, ErrAmountTooLarge
		}
		l.items[i].Quantity = quantity
		l.items[i].TotalPrice = total
		l.recalc()
		return true, nil
	}
	return false, nil
}

func (l *Ledger) RemoveItem(itemID string) bool {
	for i := range l.items {
		if l.items[i].ID == itemID {
			l.items = append(l.items[:i], l.items[i+1:]...)
			l.recalc()
			return true
		}
	}
	return false
}

func (l *Ledger) Clear() {
	l.items = nil
	l.subtotal = 0
}

func (l *Ledger) Item(itemID string) (LineItem, bool) {
	for _, it := range l.items {
		if it.ID == itemID {
			return it.Clone(), true
		}
	}
	return LineItem{}, false
}

func (l *Ledger) Items() []LineItem {
	out := make([]LineItem, len(l.items))
	for i, it := range l.items {
		out[i] = it.Clone()
	}
	return out
}

func (l *Ledger) Subtotal() int64 { return l.subtotal }

// Count is the number of units across all lines.
func (l *Ledger) Count() int {
	n := 0
	for _, it := range l.items {
		n += it.Quantity
	}
	return n
}

func (l *Ledger) Empty() bool { return len(l.items) == 0 }

func (l *Ledger) recalc() {
	var sum int64
	for _, it := range l.items {
		sum += it.TotalPrice
	}
	l.subtotal = sum
}

func selectionKey(sel []pricing.Selection) string {
	pairs := make([]string, 0, len(sel))
	seen := make(map[string]struct{}, len(sel))
	for _, s := range sel {
		k := s.GroupID + "\x00" + s.OptionID
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		pairs = append(pairs, k)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\x01")
}

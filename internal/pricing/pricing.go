// Package pricing computes per-unit prices from a base price and the variation
// options a customer selected.
package pricing

import (
	"errors"
	"fmt"

	"github.com/gordopods/storefront/internal/catalog"
)

var ErrInvalidSelectionCardinality = errors.New("more than one option selected for a single-selection group")

type MissingRequiredGroupError struct {
	GroupID string
}

func (e *MissingRequiredGroupError) Error() string {
	return fmt.Sprintf("required variation group %q has no selection", e.GroupID)
}

type UnknownOptionError struct {
	GroupID  string
	OptionID string
}

func (e *UnknownOptionError) Error() string {
	if e.OptionID == "" {
		return fmt.Sprintf("unknown variation group %q", e.GroupID)
	}
	return fmt.Sprintf("unknown option %q in variation group %q", e.OptionID, e.GroupID)
}

// Selection is one chosen option, denormalized so a cart line keeps its names and
// modifier even if the catalog changes later.
type Selection struct {
	GroupID       string `json:"group_id"`
	GroupName     string `json:"group_name"`
	OptionID      string `json:"option_id"`
	OptionName    string `json:"option_name"`
	PriceModifier int64  `json:"price_modifier"`
}

// Pick is the raw client choice for one group.
type Pick struct {
	GroupID   string   `json:"group_id"`
	OptionIDs []string `json:"option_ids"`
}

// UnitPrice never returns a negative price.
func UnitPrice(base int64, selections []Selection) int64 {
	price := base
	for _, s := range selections {
		price += s.PriceModifier
	}
	if price < 0 {
		return 0
	}
	return price
}

func ValidateSelections(groups []catalog.VariationGroup, selections []Selection) error {
	counts := make(map[string]int, len(groups))
	for _, s := range selections {
		counts[s.GroupID]++
	}
	for _, g := range groups {
		n := counts[g.ID]
		if g.Required && n == 0 {
			return &MissingRequiredGroupError{GroupID: g.ID}
		}
		if !g.MultipleSelection && n > 1 {
			return fmt.Errorf("group %q: %w", g.ID, ErrInvalidSelectionCardinality)
		}
	}
	return nil
}

// Resolve prices picks against the catalog groups. The result follows catalog
// order (group, then option), so equal choices always resolve to equal slices.
func Resolve(groups []catalog.VariationGroup, picks []Pick) ([]Selection, error) {
	chosen := make(map[string]map[string]bool, len(picks))
	for _, p := range picks {
		g, ok := findGroup(groups, p.GroupID)
		if !ok {
			return nil, &UnknownOptionError{GroupID: p.GroupID}
		}
		if chosen[g.ID] == nil {
			chosen[g.ID] = make(map[string]bool, len(p.OptionIDs))
		}
		for _, optID := range p.OptionIDs {
			if _, ok := g.Option(optID); !ok {
				return nil, &UnknownOptionError{GroupID: g.ID, OptionID: optID}
			}
			chosen[g.ID][optID] = true
		}
	}

	var out []Selection
	for _, g := range groups {
		opts := chosen[g.ID]
		if len(opts) == 0 {
			continue
		}
		for _, o := range g.Options {
			if !opts[o.ID] {
				continue
			}
			out = append(out, Selection{
				GroupID:       g.ID,
				GroupName:     g.Name,
				OptionID:      o.ID,
				OptionName:    o.Name,
				PriceModifier: o.PriceModifier,
			})
		}
	}
	return out, nil
}

func findGroup(groups []catalog.VariationGroup, id string) (catalog.VariationGroup, bool) {
	for _, g := range groups {
		if g.ID == id {
			return g, true
		}
	}
	return catalog.VariationGroup{}, false
}

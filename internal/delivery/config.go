// Package delivery resolves the customer's delivery choice into a fee and label.
package delivery

import (
	"errors"
	"fmt"
	"strings"
)

type Method string

const (
	MethodPickup       Method = "pickup"
	MethodFixedRate    Method = "fixed_rate"
	MethodNeighborhood Method = "neighborhood"
)

var ErrUnknownMethod = errors.New("unknown delivery method")

func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodPickup, MethodFixedRate, MethodNeighborhood:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

type Neighborhood struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Fee  int64  `json:"fee"`
}

type PickupConfig struct {
	Enabled      bool   `json:"enabled"`
	Instructions string `json:"instructions"`
}

type FixedRateConfig struct {
	Enabled     bool   `json:"enabled"`
	Fee         int64  `json:"fee"`
	Description string `json:"description"`
}

type NeighborhoodConfig struct {
	Enabled       bool           `json:"enabled"`
	Neighborhoods []Neighborhood `json:"neighborhoods"`
}

// Config is the store's delivery settings document.
type Config struct {
	Pickup            PickupConfig       `json:"pickup"`
	FixedRate         FixedRateConfig    `json:"fixed_rate"`
	NeighborhoodRates NeighborhoodConfig `json:"neighborhood_rates"`
}

func DefaultConfig() Config {
	return Config{Pickup: PickupConfig{Enabled: true}}
}

func (c Config) Neighborhood(id string) (Neighborhood, bool) {
	for _, n := range c.NeighborhoodRates.Neighborhoods {
		if n.ID == id {
			return n, true
		}
	}
	return Neighborhood{}, false
}

func (c Config) Enabled(m Method) bool {
	switch m {
	case MethodPickup:
		return c.Pickup.Enabled
	case MethodFixedRate:
		return c.FixedRate.Enabled
	case MethodNeighborhood:
		return c.NeighborhoodRates.Enabled
	}
	return false
}

// Methods lists enabled methods in display order.
func (c Config) Methods() []Method {
	var out []Method
	for _, m := range []Method{MethodPickup, MethodFixedRate, MethodNeighborhood} {
		if c.Enabled(m) {
			out = append(out, m)
		}
	}
	return out
}

func (c Config) Validate() error {
	if c.FixedRate.Fee < 0 {
		return errors.New("fixed rate fee must not be negative")
	}
	seen := make(map[string]struct{}, len(c.NeighborhoodRates.Neighborhoods))
	for _, n := range c.NeighborhoodRates.Neighborhoods {
		if strings.TrimSpace(n.ID) == "" || strings.TrimSpace(n.Name) == "" {
			return errors.New("neighborhood id and name are required")
		}
		if n.Fee < 0 {
			return fmt.Errorf("neighborhood %q: fee must not be negative", n.ID)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("neighborhood %q is duplicated", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	if c.NeighborhoodRates.Enabled && len(c.NeighborhoodRates.Neighborhoods) == 0 {
		return errors.New("neighborhood delivery enabled without neighborhoods")
	}
	return nil
}

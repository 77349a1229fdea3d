package delivery

import (
	"errors"
	"fmt"
)

type State string

const (
	StateUnselected           State = "unselected"
	StatePickup               State = "pickup"
	StateFixedRate            State = "fixed_rate"
	StateNeighborhoodPending  State = "neighborhood_pending"
	StateNeighborhoodResolved State = "neighborhood_resolved"
)

var (
	ErrMethodUnavailable      = errors.New("delivery method is not available")
	ErrNeighborhoodNotPending = errors.New("neighborhood delivery was not selected")
	ErrUnresolvedDelivery     = errors.New("delivery is not resolved")
)

type UnknownNeighborhoodError struct {
	ID string
}

func (e *UnknownNeighborhoodError) Error() string {
	return fmt.Sprintf("unknown neighborhood %q", e.ID)
}

const (
	LabelPickup   = "Retirada no local"
	LabelDelivery = "Entrega"
)

// Option is the resolved delivery choice stored with an order.
type Option struct {
	Method           Method `json:"method"`
	NeighborhoodID   string `json:"neighborhood_id,omitempty"`
	NeighborhoodName string `json:"neighborhood_name,omitempty"`
	Fee              int64  `json:"fee"`
	Label            string `json:"label"`
}

func (o Option) IsPickup() bool { return o.Method == MethodPickup }

// Quote tracks one checkout's delivery selection. Switching method always drops
// a previously resolved neighborhood.
type Quote struct {
	cfg          Config
	state        State
	neighborhood Neighborhood
}

func NewQuote(cfg Config) *Quote {
	return &Quote{cfg: cfg, state: StateUnselected}
}

func (q *Quote) State() State { return q.state }

func (q *Quote) SelectMethod(m Method) (State, error) {
	switch m {
	case MethodPickup, MethodFixedRate, MethodNeighborhood:
	default:
		return q.state, fmt.Errorf("%w: %q", ErrUnknownMethod, m)
	}
	if !q.cfg.Enabled(m) {
		return q.state, fmt.Errorf("%s: %w", m, ErrMethodUnavailable)
	}

	q.neighborhood = Neighborhood{}
	switch m {
	case MethodPickup:
		q.state = StatePickup
	case MethodFixedRate:
		q.state = StateFixedRate
	case MethodNeighborhood:
		q.state = StateNeighborhoodPending
	}
	return q.state, nil
}

// SelectNeighborhood resolves the fee for id. An unknown id leaves the quote
// pending with no fee.
func (q *Quote) SelectNeighborhood(id string) (State, error) {
	if q.state != StateNeighborhoodPending && q.state != StateNeighborhoodResolved {
		return q.state, ErrNeighborhoodNotPending
	}
	n, ok := q.cfg.Neighborhood(id)
	if !ok {
		q.state = StateNeighborhoodPending
		q.neighborhood = Neighborhood{}
		return q.state, &UnknownNeighborhoodError{ID: id}
	}
	q.neighborhood = n
	q.state = StateNeighborhoodResolved
	return q.state, nil
}

func (q *Quote) CurrentFee() int64 {
	switch q.state {
	case StateFixedRate:
		return q.cfg.FixedRate.Fee
	case StateNeighborhoodResolved:
		return q.neighborhood.Fee
	}
	return 0
}

// RequiresAddress is true once a delivering method was chosen.
func (q *Quote) RequiresAddress() bool {
	switch q.state {
	case StateFixedRate, StateNeighborhoodPending, StateNeighborhoodResolved:
		return true
	}
	return false
}

func (q *Quote) Option() (Option, error) {
	switch q.state {
	case StatePickup:
		return Option{Method: MethodPickup, Label: LabelPickup}, nil
	case StateFixedRate:
		return Option{Method: MethodFixedRate, Fee: q.cfg.FixedRate.Fee, Label: LabelDelivery}, nil
	case StateNeighborhoodResolved:
		return Option{
			Method:           MethodNeighborhood,
			NeighborhoodID:   q.neighborhood.ID,
			NeighborhoodName: q.neighborhood.Name,
			Fee:              q.neighborhood.Fee,
			Label:            LabelDelivery + " - " + q.neighborhood.Name,
		}, nil
	}
	return Option{}, ErrUnresolvedDelivery
}

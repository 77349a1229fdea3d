package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Pickup:    PickupConfig{Enabled: true, Instructions: "Rua das Flores, 10"},
		FixedRate: FixedRateConfig{Enabled: true, Fee: 1000, Description: "Toda a cidade"},
		NeighborhoodRates: NeighborhoodConfig{
			Enabled: true,
			Neighborhoods: []Neighborhood{
				{ID: "centro", Name: "Centro", Fee: 500},
				{ID: "jardins", Name: "Jardins", Fee: 1200},
			},
		},
	}
}

func TestQuote_InitialState(t *testing.T) {
	t.Parallel()

	q := NewQuote(testConfig())
	assert.Equal(t, StateUnselected, q.State())
	assert.Zero(t, q.CurrentFee())

	_, err := q.Option()
	assert.ErrorIs(t, err, ErrUnresolvedDelivery)
}

func TestQuote_SelectMethod(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method Method
		state  State
		fee    int64
	}{
		{MethodPickup, StatePickup, 0},
		{MethodFixedRate, StateFixedRate, 1000},
		{MethodNeighborhood, StateNeighborhoodPending, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.method), func(t *testing.T) {
			t.Parallel()
			q := NewQuote(testConfig())
			st, err := q.SelectMethod(tt.method)
			require.NoError(t, err)
			assert.Equal(t, tt.state, st)
			assert.Equal(t, tt.fee, q.CurrentFee())
		})
	}
}

func TestQuote_UnknownNeighborhood(t *testing.T) {
	t.Parallel()

	q := NewQuote(testConfig())
	_, err := q.SelectMethod(MethodNeighborhood)
	require.NoError(t, err)

	st, err := q.SelectNeighborhood("X")
	var unknown *UnknownNeighborhoodError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "X", unknown.ID)
	assert.Equal(t, StateNeighborhoodPending, st)
	assert.Zero(t, q.CurrentFee())
}

func TestQuote_ResolveNeighborhood(t *testing.T) {
	t.Parallel()

	q := NewQuote(testConfig())
	_, err := q.SelectMethod(MethodNeighborhood)
	require.NoError(t, err)

	st, err := q.SelectNeighborhood("centro")
	require.NoError(t, err)
	assert.Equal(t, StateNeighborhoodResolved, st)
	assert.Equal(t, int64(500), q.CurrentFee())

	opt, err := q.Option()
	require.NoError(t, err)
	assert.Equal(t, Option{
		Method:           MethodNeighborhood,
		NeighborhoodID:   "centro",
		NeighborhoodName: "Centro",
		Fee:              500,
		Label:            "Entrega - Centro",
	}, opt)

	_, err = q.SelectNeighborhood("jardins")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), q.CurrentFee())

	_, err = q.SelectNeighborhood("nowhere")
	require.Error(t, err)
	assert.Zero(t, q.CurrentFee(), "a failed re-resolution must not keep the old fee")
}

func TestQuote_SwitchMethodDropsNeighborhood(t *testing.T) {
	t.Parallel()

	q := NewQuote(testConfig())
	_, err := q.SelectMethod(MethodNeighborhood)
	require.NoError(t, err)
	_, err = q.SelectNeighborhood("jardins")
	require.NoError(t, err)

	_, err = q.SelectMethod(MethodPickup)
	require.NoError(t, err)
	assert.Zero(t, q.CurrentFee())

	_, err = q.SelectMethod(MethodNeighborhood)
	require.NoError(t, err)
	assert.Equal(t, StateNeighborhoodPending, q.State())
	assert.Zero(t, q.CurrentFee())
}

func TestQuote_SelectNeighborhoodWithoutMethod(t *testing.T) {
	t.Parallel()

	q := NewQuote(testConfig())
	_, err := q.SelectNeighborhood("centro")
	assert.ErrorIs(t, err, ErrNeighborhoodNotPending)

	_, err = q.SelectMethod(MethodFixedRate)
	require.NoError(t, err)
	_, err = q.SelectNeighborhood("centro")
	assert.ErrorIs(t, err, ErrNeighborhoodNotPending)
	assert.Equal(t, int64(1000), q.CurrentFee())
}

func TestQuote_DisabledAndUnknownMethods(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.FixedRate.Enabled = false
	q := NewQuote(cfg)

	_, err := q.SelectMethod(MethodFixedRate)
	assert.ErrorIs(t, err, ErrMethodUnavailable)
	assert.Equal(t, StateUnselected, q.State())

	_, err = q.SelectMethod(Method("drone"))
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestParseMethod(t *testing.T) {
	t.Parallel()

	m, err := ParseMethod(" Pickup ")
	require.NoError(t, err)
	assert.Equal(t, MethodPickup, m)

	_, err = ParseMethod("teleport")
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, testConfig().Validate())
	assert.NoError(t, DefaultConfig().Validate())

	dup := testConfig()
	dup.NeighborhoodRates.Neighborhoods = append(dup.NeighborhoodRates.Neighborhoods, Neighborhood{ID: "centro", Name: "Centro 2"})
	assert.Error(t, dup.Validate())

	neg := testConfig()
	neg.FixedRate.Fee = -1
	assert.Error(t, neg.Validate())

	empty := testConfig()
	empty.NeighborhoodRates.Neighborhoods = nil
	assert.Error(t, empty.Validate())

	assert.Equal(t, []Method{MethodPickup, MethodFixedRate, MethodNeighborhood}, testConfig().Methods())
}

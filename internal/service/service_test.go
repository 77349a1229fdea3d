package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/gordopods/storefront/internal/catalog"
	"github.com/gordopods/storefront/internal/delivery"
	"github.com/gordopods/storefront/internal/money"
	"github.com/gordopods/storefront/internal/order"
	"github.com/gordopods/storefront/internal/pricing"
	"github.com/gordopods/storefront/internal/repo"
	"github.com/gordopods/storefront/internal/store"
	"github.com/gordopods/storefront/pkg/db"
)

type published struct {
	topic, key string
	event      any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) PublishEvent(_ context.Context, topic, key string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{topic, key, event})
	return p.err
}

type recordingNotifier struct {
	destination, message string
}

func (n *recordingNotifier) Notify(_ context.Context, destination, message string) error {
	n.destination, n.message = destination, message
	return nil
}

type fakeIndex struct {
	ids []string
	err error
}

func (f *fakeIndex) IndexProduct(context.Context, catalog.Product) error { return nil }
func (f *fakeIndex) DeleteProduct(context.Context, string) error         { return nil }
func (f *fakeIndex) Search(context.Context, string, int, int) (int64, []string, error) {
	return int64(len(f.ids)), f.ids, f.err
}

type testEnv struct {
	repo      *repo.GormRepo
	store     store.Store
	catalog   *CatalogService
	carts     *CartService
	settings  *SettingsService
	checkout  *CheckoutService
	orders    *OrderService
	auth      *AuthService
	publisher *recordingPublisher
	notifier  *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb, err := db.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	require.NoError(t, repo.Migrate(context.Background(), gdb))

	r := repo.New(gdb)
	st := store.NewGormStore(gdb, "local")
	pub := &recordingPublisher{}
	notifier := &recordingNotifier{}

	env := &testEnv{repo: r, store: st, publisher: pub, notifier: notifier}
	env.catalog = &CatalogService{Repo: r}
	env.carts = &CartService{Store: st, Catalog: r}
	env.settings = &SettingsService{Store: st}
	env.checkout = &CheckoutService{
		Carts:         env.carts,
		Settings:      env.settings,
		Orders:        r,
		Assembler:     order.NewAssembler(),
		Publisher:     pub,
		Notifier:      notifier,
		EventsTopic:   "order_events",
		StoreWhatsApp: "11999990000",
		Locale:        money.PtBR,
	}
	env.orders = &OrderService{Repo: r, Publisher: pub, EventsTopic: "order_events"}
	env.auth = &AuthService{Repo: r, JWTSecret: []byte("test-secret"), AccessTTL: time.Hour}
	return env
}

const testSession = "session-0001"

func (e *testEnv) seedProduct(t *testing.T, mutate func(*catalog.Product)) catalog.Product {
	t.Helper()
	p := catalog.Product{
		ID:     uuid.NewString(),
		Name:   "Pod Gordo",
		Price:  4990,
		Active: true,
		VariationGroups: []catalog.VariationGroup{{
			ID: "size", Name: "Tamanho", Required: true,
			Options: []catalog.VariationOption{
				{ID: "p", Name: "P"},
				{ID: "m", Name: "M", PriceModifier: 500},
			},
		}},
	}
	if mutate != nil {
		mutate(&p)
	}
	created, err := e.repo.CreateProduct(context.Background(), p)
	require.NoError(t, err)
	return created
}

func (e *testEnv) seedDelivery(t *testing.T) {
	t.Helper()
	_, err := e.settings.SaveDelivery(context.Background(), delivery.Config{
		Pickup:    delivery.PickupConfig{Enabled: true},
		FixedRate: delivery.FixedRateConfig{Enabled: true, Fee: 1000},
		NeighborhoodRates: delivery.NeighborhoodConfig{
			Enabled:       true,
			Neighborhoods: []delivery.Neighborhood{{ID: "centro", Name: "Centro", Fee: 700}},
		},
	})
	require.NoError(t, err)
}

func sizeM() []pricing.Pick {
	return []pricing.Pick{{GroupID: "size", OptionIDs: []string{"m"}}}
}

var errBoom = errors.New("boom")

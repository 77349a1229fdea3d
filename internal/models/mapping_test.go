package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordopods/storefront/internal/cart"
	"github.com/gordopods/storefront/internal/catalog"
	"github.com/gordopods/storefront/internal/delivery"
	"github.com/gordopods/storefront/internal/order"
	"github.com/gordopods/storefront/internal/pricing"
)

func TestProductMapping(t *testing.T) {
	t.Parallel()

	p := catalog.Product{
		ID:            "p1",
		CategoryID:    "c1",
		Name:          "Pod",
		Price:         4990,
		StockControl:  true,
		StockQuantity: 3,
		Active:        true,
		Order:         2,
		Images: []catalog.ProductImage{
			{ID: "i1", URL: "https://cdn/1.jpg", Order: 0},
			{ID: "i2", URL: "https://cdn/2.jpg", Order: 1, IsMain: true},
		},
		VariationGroups: []catalog.VariationGroup{{
			ID: "size", Name: "Tamanho", Required: true,
			Options: []catalog.VariationOption{{ID: "m", Name: "M", PriceModifier: 500}},
		}},
	}

	row := ProductFromDomain(p)
	require.Len(t, row.Images, 2)
	assert.Equal(t, "p1", row.Images[0].ProductID)
	assert.Equal(t, 2, row.SortOrder)

	back := row.ToDomain()
	assert.Equal(t, p, back)
}

func TestProductMapping_AssignsImageIDs(t *testing.T) {
	t.Parallel()

	row := ProductFromDomain(catalog.Product{ID: "p1", Images: []catalog.ProductImage{{URL: "a"}}})
	require.Len(t, row.Images, 1)
	assert.NotEmpty(t, row.Images[0].ID)

	back := row.ToDomain()
	assert.True(t, back.Images[0].IsMain, "a single image becomes the main one")
}

func TestOrderMapping(t *testing.T) {
	t.Parallel()

	o := order.Order{
		ID:     "o1",
		Number: "240315-183005-0042",
		Customer: order.Customer{
			Name:  "Maria",
			Phone: "11999990000",
			Address: order.Address{
				Street: "Rua A", Number: "1", District: "Centro",
			},
		},
		Items: []cart.LineItem{{
			ID:            "line",
			ProductID:     "p1",
			ProductName:   "Pod",
			UnitBasePrice: 4990,
			Selections:    []pricing.Selection{{GroupID: "size", OptionID: "m", PriceModifier: 500}},
			Quantity:      2,
			TotalPrice:    10980,
		}},
		Subtotal:  10980,
		Delivery:  delivery.Option{Method: delivery.MethodNeighborhood, NeighborhoodID: "centro", NeighborhoodName: "Centro", Fee: 700, Label: "Entrega - Centro"},
		Total:     11680,
		Status:    order.StatusNew,
		CreatedAt: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	row := OrderFromDomain(o)
	assert.Equal(t, "neighborhood", row.DeliveryMethod)
	assert.Equal(t, "Centro", row.Address.District)
	require.Len(t, row.Items, 1)
	assert.Equal(t, "o1", row.Items[0].OrderID)

	back := row.ToDomain()
	back.Items[0].ID = "line"
	assert.Equal(t, o, back)
}

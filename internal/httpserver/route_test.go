package httpserver

import (
	"math"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordopods/storefront/internal/catalog"
	"github.com/gordopods/storefront/internal/delivery"
	"github.com/gordopods/storefront/internal/order"
	"github.com/gordopods/storefront/internal/pricing"
	"github.com/gordopods/storefront/internal/service"
	"github.com/gordopods/storefront/internal/transport"
)

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusOK, env.doJSONRequest(http.MethodGet, "/health/live", nil, nil).Code)
	assert.Equal(t, http.StatusOK, env.doJSONRequest(http.MethodGet, "/health/ready", nil, nil).Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodPost, "/admin/login", transport.LoginRequest{Username: testAdmin, Password: "nope"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout_ClearsAccessCookie(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodPost, "/admin/logout", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestAdminRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodGet, "/admin/orders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes_RequireCSRF(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t)

	rec := env.doJSONRequest(http.MethodPost, "/admin/categories", transport.CategoryRequest{Name: "Pods"}, nil, s.cookies...)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.admin(s, http.MethodPost, "/admin/categories", transport.CategoryRequest{Name: "Pods"})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func createProduct(t *testing.T, env *testEnv, s adminSession, req transport.CreateProductRequest) catalog.Product {
	t.Helper()
	rec := env.admin(s, http.MethodPost, "/admin/products", req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[catalog.Product](t, rec)
}

func podRequest() transport.CreateProductRequest {
	return transport.CreateProductRequest{
		Name:  "Pod Gordo",
		Price: "49,90",
		Images: []transport.ImageRequest{
			{URL: "https://cdn.example.com/a.jpg"},
			{URL: "https://cdn.example.com/b.jpg"},
		},
		VariationGroups: []transport.VariationGroupRequest{{
			ID: "size", Name: "Tamanho", Required: true,
			Options: []transport.VariationOptionRequest{
				{ID: "p", Name: "P"},
				{ID: "m", Name: "M", PriceModifier: "5,00"},
			},
		}},
	}
}

func TestCatalog_AdminLifecycle(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t)

	p := createProduct(t, env, s, podRequest())
	assert.Equal(t, int64(4990), p.Price)
	require.Len(t, p.Images, 2)
	assert.True(t, p.Images[0].IsMain)

	rec := env.admin(s, http.MethodPost, "/admin/products/"+p.ID+"/images/"+p.Images[1].ID+"/main", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[catalog.Product](t, rec)
	img, ok := updated.MainImage()
	require.True(t, ok)
	assert.Equal(t, p.Images[1].ID, img.ID)

	rec = env.admin(s, http.MethodPatch, "/admin/products/"+p.ID, transport.PatchProductRequest{Active: ptr(false)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.doJSONRequest(http.MethodGet, "/catalog/products/"+p.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.admin(s, http.MethodGet, "/admin/products/"+p.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.admin(s, http.MethodDelete, "/admin/products/"+p.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.admin(s, http.MethodDelete, "/admin/products/"+p.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalog_CreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t)

	req := podRequest()
	req.Price = "abc"
	rec := env.admin(s, http.MethodPost, "/admin/products", req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalog_PublicListing(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t)

	createProduct(t, env, s, podRequest())
	hidden := podRequest()
	hidden.Name = "Escondido"
	hidden.Active = ptr(false)
	createProduct(t, env, s, hidden)

	rec := env.doJSONRequest(http.MethodGet, "/catalog/products?page=1&size=10", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[transport.ProductList](t, rec)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "Pod Gordo", list.Data[0].Name)
	assert.Equal(t, int64(1), list.Meta.Total)

	rec = env.doJSONRequest(http.MethodGet, "/catalog/products/search?q=gordo", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[transport.ProductList](t, rec).Data, 1)

	rec = env.doJSONRequest(http.MethodGet, "/catalog/products/search?q=", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCart_Flow(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t)
	p := createProduct(t, env, s, podRequest())

	add := transport.AddCartItemRequest{
		ProductID:  p.ID,
		Quantity:   2,
		Selections: []pricing.Pick{{GroupID: "size", OptionIDs: []string{"m"}}},
	}
	rec := env.doJSONRequest(http.MethodPost, "/cart/"+testSession+"/items", add, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cartResp := decode[transport.CartResponse](t, rec)
	require.Len(t, cartResp.Items, 1)
	assert.Equal(t, int64(10980), cartResp.Subtotal)
	assert.Equal(t, "R$ 109,80", cartResp.SubtotalFormatted)

	itemID := cartResp.Items[0].ID
	rec = env.doJSONRequest(http.MethodPatch, "/cart/"+testSession+"/items/"+itemID, transport.SetQuantityRequest{Quantity: 1}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(5490), decode[transport.CartResponse](t, rec).Subtotal)

	rec = env.doJSONRequest(http.MethodDelete, "/cart/"+testSession+"/items/"+itemID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[transport.CartResponse](t, rec).Count)

	rec = env.doJSONRequest(http.MethodDelete, "/cart/"+testSession, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

var sizeMPick = []pricing.Pick{{GroupID: "size", OptionIDs: []string{"m"}}}

func TestCart_Errors(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t)
	p := createProduct(t, env, s, podRequest())

	cases := []struct {
		name    string
		session string
		req     transport.AddCartItemRequest
		code    int
	}{
		{"bad session", "x", transport.AddCartItemRequest{ProductID: p.ID, Quantity: 1}, http.StatusBadRequest},
		{"zero quantity", testSession, transport.AddCartItemRequest{ProductID: p.ID, Quantity: 0}, http.StatusBadRequest},
		{"missing required group", testSession, transport.AddCartItemRequest{ProductID: p.ID, Quantity: 1}, http.StatusBadRequest},
		{"unknown product", testSession, transport.AddCartItemRequest{ProductID: "nope", Quantity: 1}, http.StatusNotFound},
		{"quantity above cap", testSession, transport.AddCartItemRequest{ProductID: p.ID, Quantity: 1000, Selections: sizeMPick}, http.StatusBadRequest},
		{"overflowing quantity", testSession, transport.AddCartItemRequest{ProductID: p.ID, Quantity: math.MaxInt64/5490 + 1, Selections: sizeMPick}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.doJSONRequest(http.MethodPost, "/cart/"+tc.session+"/items", tc.req, nil)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
		})
	}
}

func TestCheckout_EndToEnd(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t)
	p := createProduct(t, env, s, podRequest())

	rec := env.admin(s, http.MethodPut, "/admin/settings/delivery", delivery.Config{
		FixedRate: delivery.FixedRateConfig{Enabled: true, Fee: 1000},
		NeighborhoodRates: delivery.NeighborhoodConfig{
			Enabled:       true,
			Neighborhoods: []delivery.Neighborhood{{ID: "centro", Name: "Centro", Fee: 700}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.doJSONRequest(http.MethodGet, "/settings/delivery", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[delivery.Config](t, rec).Pickup.Enabled)

	add := transport.AddCartItemRequest{
		ProductID:  p.ID,
		Quantity:   2,
		Selections: []pricing.Pick{{GroupID: "size", OptionIDs: []string{"m"}}},
	}
	require.Equal(t, http.StatusOK, env.doJSONRequest(http.MethodPost, "/cart/"+testSession+"/items", add, nil).Code)

	rec = env.doJSONRequest(http.MethodPost, "/checkout/"+testSession+"/quote", transport.DeliveryRequest{Method: "neighborhood", NeighborhoodID: "centro"}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	quote := decode[transport.QuoteResponse](t, rec)
	assert.Equal(t, int64(700), quote.Fee)
	assert.Equal(t, int64(11680), quote.Total)

	rec = env.doJSONRequest(http.MethodPost, "/checkout/"+testSession+"/quote", transport.DeliveryRequest{Method: "pickup"}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/checkout/"+testSession, transport.CheckoutRequest{
		Delivery: transport.DeliveryRequest{Method: "neighborhood", NeighborhoodID: "centro"},
	}, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/checkout/"+testSession, transport.CheckoutRequest{
		Customer: order.Customer{
			Name:  "Ana",
			Phone: "11988887777",
			Address: order.Address{
				Street: "Rua A", Number: "10", District: "Centro",
			},
		},
		Delivery: transport.DeliveryRequest{Method: "neighborhood", NeighborhoodID: "centro"},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[transport.CheckoutResponse](t, rec)
	assert.Equal(t, int64(11680), res.Order.Total)
	assert.Equal(t, order.StatusNew, res.Order.Status)
	assert.True(t, strings.HasPrefix(res.WhatsAppURL, "https://wa.me/5511999990000?text="))
	assert.Contains(t, res.Summary, res.Order.Number)

	rec = env.doJSONRequest(http.MethodGet, "/cart/"+testSession, nil, nil)
	assert.Zero(t, decode[transport.CartResponse](t, rec).Count)

	rec = env.admin(s, http.MethodGet, "/admin/orders?status=new", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	list := decode[transport.OrderList](t, rec)
	require.Len(t, list.Data, 1)

	path := "/admin/orders/" + res.Order.ID
	rec = env.admin(s, http.MethodPatch, path+"/status", transport.UpdateStatusRequest{Status: "shipped"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.admin(s, http.MethodPatch, path+"/status", transport.UpdateStatusRequest{Status: "processing"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, order.StatusProcessing, decode[order.Order](t, rec).Status)

	rec = env.admin(s, http.MethodPatch, path+"/status", transport.UpdateStatusRequest{Status: "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.admin(s, http.MethodPost, path+"/whatsapp-sent", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[order.Order](t, rec).WhatsAppSent)

	rec = env.admin(s, http.MethodGet, "/admin/orders/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettings_Appearance(t *testing.T) {
	env := newTestEnv(t)
	s := env.login(t)

	rec := env.doJSONRequest(http.MethodGet, "/settings/appearance", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Gordopods", decode[service.Appearance](t, rec).StoreName)

	rec = env.admin(s, http.MethodPut, "/admin/settings/appearance", service.Appearance{StoreName: " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.admin(s, http.MethodPut, "/admin/settings/appearance", service.Appearance{StoreName: "Gordopods SP", WhatsAppNumber: "11911112222"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/settings/appearance", nil, nil)
	assert.Equal(t, "Gordopods SP", decode[service.Appearance](t, rec).StoreName)
}

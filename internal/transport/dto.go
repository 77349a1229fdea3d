package transport

import (
	"github.com/gordopods/storefront/internal/cart"
	"github.com/gordopods/storefront/internal/catalog"
	"github.com/gordopods/storefront/internal/order"
	"github.com/gordopods/storefront/internal/pricing"
	"github.com/gordopods/storefront/internal/util"
)

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Active      *bool  `json:"active"`
}

type PatchCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	Active      *bool   `json:"active"`
}

// Prices are accepted as text ("49,90") and stored in cents.
type VariationOptionRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceModifier string `json:"price_modifier"`
}

type VariationGroupRequest struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	Required          bool                     `json:"required"`
	MultipleSelection bool                     `json:"multiple_selection"`
	Options           []VariationOptionRequest `json:"options"`
}

type ImageRequest struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	IsMain bool   `json:"is_main"`
	Order  int    `json:"order"`
}

type CreateProductRequest struct {
	CategoryID      string                  `json:"category_id"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	Price           string                  `json:"price"`
	Images          []ImageRequest          `json:"images"`
	VariationGroups []VariationGroupRequest `json:"variation_groups"`
	StockControl    bool                    `json:"stock_control"`
	StockQuantity   int                     `json:"stock_quantity"`
	Active          *bool                   `json:"active"`
	Featured        bool                    `json:"featured"`
	Order           int                     `json:"order"`
}

type PatchProductRequest struct {
	CategoryID      *string                  `json:"category_id"`
	Name            *string                  `json:"name"`
	Description     *string                  `json:"description"`
	Price           *string                  `json:"price"`
	Images          *[]ImageRequest          `json:"images"`
	VariationGroups *[]VariationGroupRequest `json:"variation_groups"`
	StockControl    *bool                    `json:"stock_control"`
	StockQuantity   *int                     `json:"stock_quantity"`
	Active          *bool                    `json:"active"`
	Featured        *bool                    `json:"featured"`
	Order           *int                     `json:"order"`
}

type ProductList struct {
	Data []catalog.Product `json:"data"`
	Meta util.Meta         `json:"meta"`
}

type AddCartItemRequest struct {
	ProductID  string         `json:"product_id"`
	Quantity   int            `json:"quantity"`
	Selections []pricing.Pick `json:"selections"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items             []cart.LineItem `json:"items"`
	Subtotal          int64           `json:"subtotal"`
	SubtotalFormatted string          `json:"subtotal_formatted"`
	Count             int             `json:"count"`
}

type DeliveryRequest struct {
	Method         string `json:"method"`
	NeighborhoodID string `json:"neighborhood_id"`
}

type QuoteResponse struct {
	Fee      int64  `json:"fee"`
	Label    string `json:"label"`
	Subtotal int64  `json:"subtotal"`
	Total    int64  `json:"total"`
}

type CheckoutRequest struct {
	Customer order.Customer  `json:"customer"`
	Delivery DeliveryRequest `json:"delivery"`
	Notes    string          `json:"notes"`
}

type CheckoutResponse struct {
	Order       order.Order `json:"order"`
	Summary     string      `json:"summary"`
	WhatsAppURL string      `json:"whatsapp_url"`
}

type OrderList struct {
	Data []order.Order `json:"data"`
	Meta util.Meta     `json:"meta"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	CSRFToken string `json:"csrf_token,omitempty"`
	ExpiresAt int64  `json:"expires_at"`
}

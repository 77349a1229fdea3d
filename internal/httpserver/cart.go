package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gordopods/storefront/internal/cart"
	"github.com/gordopods/storefront/internal/money"
	"github.com/gordopods/storefront/internal/service"
	"github.com/gordopods/storefront/internal/transport"
	"github.com/gordopods/storefront/pkg/logging"
)

type CartHTTP struct {
	Svc    *service.CartService
	Locale money.Locale
}

func (h *CartHTTP) response(l *cart.Ledger) transport.CartResponse {
	return transport.CartResponse{
		Items:             l.Items(),
		Subtotal:          l.Subtotal(),
		SubtotalFormatted: money.Format(l.Subtotal(), h.Locale),
		Count:             l.Count(),
	}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	ledger, err := h.Svc.Get(ctx, c.Param("session"))
	if err != nil {
		return failure(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, h.response(ledger))
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	var req transport.AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "add_cart_item_error", err)
	}

	ledger, err := h.Svc.AddItem(ctx, c.Param("session"), req.ProductID, req.Quantity, req.Selections)
	if err != nil {
		return failure(l, "add_cart_item_error", err)
	}

	l.Info("add_cart_item_success", "product_id", req.ProductID, "quantity", req.Quantity)
	return c.JSON(http.StatusOK, h.response(ledger))
}

func (h *CartHTTP) SetQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.set_quantity")

	var req transport.SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "set_quantity_error", err)
	}

	ledger, err := h.Svc.SetQuantity(ctx, c.Param("session"), c.Param("item"), req.Quantity)
	if err != nil {
		return failure(l, "set_quantity_error", err)
	}
	return c.JSON(http.StatusOK, h.response(ledger))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	ledger, err := h.Svc.RemoveItem(ctx, c.Param("session"), c.Param("item"))
	if err != nil {
		return failure(l, "remove_cart_item_error", err)
	}
	return c.JSON(http.StatusOK, h.response(ledger))
}

func (h *CartHTTP) Clear(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Svc.Clear(ctx, c.Param("session")); err != nil {
		return failure(l, "clear_cart_error", err)
	}

	l.Info("clear_cart_success")
	return c.NoContent(http.StatusNoContent)
}

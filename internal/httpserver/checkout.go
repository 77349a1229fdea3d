package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gordopods/storefront/internal/service"
	"github.com/gordopods/storefront/internal/transport"
	"github.com/gordopods/storefront/pkg/logging"
)

type CheckoutHTTP struct {
	Svc *service.CheckoutService
}

func (h *CheckoutHTTP) Quote(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.quote")

	var req transport.DeliveryRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "quote_error", err)
	}

	resp, err := h.Svc.Quote(ctx, c.Param("session"), req)
	if err != nil {
		return failure(l, "quote_error", err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CheckoutHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout.place")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "checkout_error", err)
	}

	res, err := h.Svc.Checkout(ctx, c.Param("session"), req)
	if err != nil {
		return failure(l, "checkout_error", err)
	}

	l.Info("checkout_success", "order_id", res.Order.ID, "order_number", res.Order.Number)
	return c.JSON(http.StatusCreated, transport.CheckoutResponse{
		Order:       res.Order,
		Summary:     res.Summary,
		WhatsAppURL: res.WhatsAppURL,
	})
}

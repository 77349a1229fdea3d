package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gordopods/storefront/internal/service"
	"github.com/gordopods/storefront/internal/transport"
	"github.com/gordopods/storefront/internal/util"
	"github.com/gordopods/storefront/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.List(ctx, c.QueryParam("status"), offset, limit)
	if err != nil {
		return failure(l, "list_orders_error", err)
	}

	return c.JSON(http.StatusOK, transport.OrderList{
		Data: items,
		Meta: util.NewMeta(page, offset, limit, total),
	})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	o, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		return failure(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_status_error", err)
	}

	o, err := h.Svc.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return failure(l, "update_status_error", err)
	}

	l.Info("update_status_success", "order_id", o.ID, "status", o.Status)
	return c.JSON(http.StatusOK, o)
}

func (h *OrderHTTP) MarkWhatsAppSent(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.whatsapp_sent")

	o, err := h.Svc.MarkWhatsAppSent(ctx, c.Param("id"))
	if err != nil {
		return failure(l, "whatsapp_sent_error", err)
	}
	return c.JSON(http.StatusOK, o)
}

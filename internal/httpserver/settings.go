package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gordopods/storefront/internal/delivery"
	"github.com/gordopods/storefront/internal/service"
	"github.com/gordopods/storefront/pkg/logging"
)

type SettingsHTTP struct {
	Svc *service.SettingsService
}

func (h *SettingsHTTP) GetDelivery(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.get_delivery")

	cfg, err := h.Svc.Delivery(ctx)
	if err != nil {
		return failure(l, "get_delivery_error", err)
	}
	return c.JSON(http.StatusOK, cfg)
}

func (h *SettingsHTTP) PutDelivery(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.put_delivery")

	var req delivery.Config
	if err := c.Bind(&req); err != nil {
		return badBody(l, "put_delivery_error", err)
	}
	saved, err := h.Svc.SaveDelivery(ctx, req)
	if err != nil {
		return failure(l, "put_delivery_error", err)
	}

	l.Info("put_delivery_success")
	return c.JSON(http.StatusOK, saved)
}

func (h *SettingsHTTP) GetAppearance(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.get_appearance")

	a, err := h.Svc.Appearance(ctx)
	if err != nil {
		return failure(l, "get_appearance_error", err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *SettingsHTTP) PutAppearance(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "settings.put_appearance")

	var req service.Appearance
	if err := c.Bind(&req); err != nil {
		return badBody(l, "put_appearance_error", err)
	}
	saved, err := h.Svc.SaveAppearance(ctx, req)
	if err != nil {
		return failure(l, "put_appearance_error", err)
	}

	l.Info("put_appearance_success")
	return c.JSON(http.StatusOK, saved)
}

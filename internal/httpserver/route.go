package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/gordopods/storefront/pkg/middleware/auth"
	"github.com/gordopods/storefront/pkg/middleware/csrf"
)

type Deps struct {
	Catalog  *CatalogHTTP
	Cart     *CartHTTP
	Checkout *CheckoutHTTP
	Orders   *OrderHTTP
	Settings *SettingsHTTP
	Auth     *AuthHTTP

	JWTSecret []byte
	CSRF      csrf.Config
	Ready     func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	catalog := e.Group("/catalog")
	catalog.GET("/categories", d.Catalog.ListCategories)
	catalog.GET("/products/search", d.Catalog.SearchProducts)
	catalog.GET("/products", d.Catalog.GetProducts)
	catalog.GET("/products/:id", d.Catalog.GetProduct)

	e.GET("/settings/delivery", d.Settings.GetDelivery)
	e.GET("/settings/appearance", d.Settings.GetAppearance)

	cart := e.Group("/cart/:session")
	cart.GET("", d.Cart.GetCart)
	cart.DELETE("", d.Cart.Clear)
	cart.POST("/items", d.Cart.AddItem)
	cart.PATCH("/items/:item", d.Cart.SetQuantity)
	cart.DELETE("/items/:item", d.Cart.RemoveItem)

	e.POST("/checkout/:session/quote", d.Checkout.Quote)
	e.POST("/checkout/:session", d.Checkout.Checkout)

	e.POST("/admin/login", d.Auth.Login)
	e.POST("/admin/logout", d.Auth.Logout)

	authMW := middleware.NewAdminMiddleware(d.JWTSecret)
	admin := e.Group("/admin", authMW.RequireAdmin, csrf.Middleware(d.CSRF))

	admin.GET("/orders", d.Orders.ListOrders)
	admin.GET("/orders/:id", d.Orders.GetOrder)
	admin.PATCH("/orders/:id/status", d.Orders.UpdateStatus)
	admin.POST("/orders/:id/whatsapp-sent", d.Orders.MarkWhatsAppSent)

	admin.GET("/categories", d.Catalog.AdminCategories)
	admin.POST("/categories", d.Catalog.CreateCategory)
	admin.PATCH("/categories/:id", d.Catalog.PatchCategory)
	admin.DELETE("/categories/:id", d.Catalog.DeleteCategory)

	admin.GET("/products", d.Catalog.AdminProducts)
	admin.GET("/products/:id", d.Catalog.AdminGetProduct)
	admin.POST("/products", d.Catalog.CreateProduct)
	admin.PATCH("/products/:id", d.Catalog.PatchProduct)
	admin.DELETE("/products/:id", d.Catalog.DeleteProduct)
	admin.POST("/products/:id/images/:image/main", d.Catalog.SetMainImage)

	admin.PUT("/settings/delivery", d.Settings.PutDelivery)
	admin.PUT("/settings/appearance", d.Settings.PutAppearance)
}

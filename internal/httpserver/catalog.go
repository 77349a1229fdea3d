package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gordopods/storefront/internal/repo"
	"github.com/gordopods/storefront/internal/service"
	"github.com/gordopods/storefront/internal/transport"
	"github.com/gordopods/storefront/internal/util"
	"github.com/gordopods/storefront/pkg/logging"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_categories")

	items, err := h.Svc.ListCategories(ctx, false)
	if err != nil {
		return failure(l, "list_categories_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_category")

	var req transport.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_category_error", err)
	}
	created, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		return failure(l, "create_category_error", err)
	}

	l.Info("create_category_success", "category_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) PatchCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch_category")

	var req transport.PatchCategoryRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "patch_category_error", err)
	}
	updated, err := h.Svc.PatchCategory(ctx, c.Param("id"), req)
	if err != nil {
		return failure(l, "patch_category_error", err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CatalogHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_category")

	if err := h.Svc.DeleteCategory(ctx, c.Param("id")); err != nil {
		return failure(l, "delete_category_error", err)
	}
	l.Info("delete_category_success", "category_id", c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	p, err := h.Svc.GetProduct(ctx, c.Param("id"), false)
	if err != nil {
		return failure(l, "get_product_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	f := repo.ProductFilter{
		CategoryID:   c.QueryParam("category"),
		ActiveOnly:   true,
		FeaturedOnly: c.QueryParam("featured") == "true",
	}
	total, items, err := h.Svc.ListProducts(ctx, f, offset, limit)
	if err != nil {
		return failure(l, "get_products_error", err)
	}

	return c.JSON(http.StatusOK, transport.ProductList{
		Data: items,
		Meta: util.NewMeta(page, offset, limit, total),
	})
}

func (h *CatalogHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.search_products")

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		l.Warn("search_products_error", "status", http.StatusBadRequest, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.SearchProducts(ctx, q, offset, limit)
	if err != nil {
		return failure(l, "search_products_error", err)
	}

	return c.JSON(http.StatusOK, transport.ProductList{
		Data: items,
		Meta: util.NewMeta(page, offset, limit, total),
	})
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_product_error", err)
	}
	created, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return failure(l, "create_product_error", err)
	}

	l.Info("create_product_success", "product_id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch_product")

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "patch_product_error", err)
	}
	updated, err := h.Svc.PatchProduct(ctx, c.Param("id"), req)
	if err != nil {
		return failure(l, "patch_product_error", err)
	}

	l.Info("patch_product_success", "product_id", updated.ID)
	return c.JSON(http.StatusOK, updated)
}

func (h *CatalogHTTP) SetMainImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.set_main_image")

	updated, err := h.Svc.SetMainImage(ctx, c.Param("id"), c.Param("image"))
	if err != nil {
		return failure(l, "set_main_image_error", err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_product")

	if err := h.Svc.DeleteProduct(ctx, c.Param("id")); err != nil {
		return failure(l, "delete_product_error", err)
	}

	l.Info("delete_product_success", "product_id", c.Param("id"))
	return c.NoContent(http.StatusNoContent)
}

// AdminProducts lists products including inactive ones.
func (h *CatalogHTTP) AdminProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.admin_products")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.ListProducts(ctx, repo.ProductFilter{CategoryID: c.QueryParam("category")}, offset, limit)
	if err != nil {
		return failure(l, "admin_products_error", err)
	}
	return c.JSON(http.StatusOK, transport.ProductList{
		Data: items,
		Meta: util.NewMeta(page, offset, limit, total),
	})
}

func (h *CatalogHTTP) AdminCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.admin_categories")

	items, err := h.Svc.ListCategories(ctx, true)
	if err != nil {
		return failure(l, "admin_categories_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) AdminGetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.admin_get_product")

	p, err := h.Svc.GetProduct(ctx, c.Param("id"), true)
	if err != nil {
		return failure(l, "admin_get_product_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

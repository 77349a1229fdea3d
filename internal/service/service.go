package service

import (
	"context"
	"errors"

	"github.com/gordopods/storefront/internal/catalog"
	"github.com/gordopods/storefront/internal/models"
	"github.com/gordopods/storefront/internal/order"
	"github.com/gordopods/storefront/internal/repo"
)

var (
	ErrValidation   = errors.New("validation")   // 400
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrNotFound     = errors.New("not found")    // 404
	ErrConflict     = errors.New("conflict")     // 409
)

type CatalogRepository interface {
	ListCategories(ctx context.Context, activeOnly bool) ([]catalog.Category, error)
	GetCategory(ctx context.Context, id string) (catalog.Category, error)
	CreateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error)
	SaveCategory(ctx context.Context, c catalog.Category) error
	DeleteCategory(ctx context.Context, id string) error

	GetProduct(ctx context.Context, id string) (catalog.Product, error)
	GetProductsByIDs(ctx context.Context, ids []string) ([]catalog.Product, error)
	ListProducts(ctx context.Context, f repo.ProductFilter, offset, limit int) (int64, []catalog.Product, error)
	CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error)
	SaveProduct(ctx context.Context, p catalog.Product) error
	DeleteProduct(ctx context.Context, id string) error
	SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []catalog.Product, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, o order.Order) error
	GetOrder(ctx context.Context, id string) (order.Order, error)
	ListOrders(ctx context.Context, status order.Status, offset, limit int) (int64, []order.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, from, to order.Status) error
	MarkWhatsAppSent(ctx context.Context, id string) error
}

type AdminRepository interface {
	FindAdmin(ctx context.Context, username string) (*models.AdminUser, error)
	CreateAdminIfNotExists(ctx context.Context, u *models.AdminUser) error
}

var (
	_ CatalogRepository = (*repo.GormRepo)(nil)
	_ OrderRepository   = (*repo.GormRepo)(nil)
	_ AdminRepository   = (*repo.GormRepo)(nil)
)

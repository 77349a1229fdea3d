package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gordopods/storefront/internal/models"
	"github.com/gordopods/storefront/internal/order"
)

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// CreateOrder stores the order and takes its units out of stock-controlled
// products in one transaction.
func (r *GormRepo) CreateOrder(ctx context.Context, o order.Order) error {
	row := models.OrderFromDomain(o)
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, it := range row.Items {
			var p models.Product
			err := tx.Select("id", "stock_control").
				Where("id = ?", it.ProductID).
				First(&p).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if !p.StockControl {
				continue
			}
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", it.ProductID, it.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", it.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}
		return tx.Create(&row).Error
	})
}

func (r *GormRepo) GetOrder(ctx context.Context, id string) (order.Order, error) {
	var row models.Order
	if err := r.DB.WithContext(ctx).Preload("Items", preloadItems).Where("id = ?", id).First(&row).Error; err != nil {
		return order.Order{}, err
	}
	return row.ToDomain(), nil
}

func (r *GormRepo) ListOrders(ctx context.Context, status order.Status, offset, limit int) (int64, []order.Order, error) {
	base := func() *gorm.DB {
		q := r.DB.WithContext(ctx).Model(&models.Order{})
		if status != "" {
			q = q.Where("status = ?", string(status))
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var rows []models.Order
	if err := base().Preload("Items", preloadItems).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return 0, nil, err
	}

	out := make([]order.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return total, out, nil
}

// UpdateOrderStatus only applies when the stored status still equals from.
// Cancelling puts the order's units back into stock-controlled products in the
// same transaction.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id string, from, to order.Status) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", id, string(from)).
			Update("status", string(to))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return missingOrStale(tx, id)
		}
		if to != order.StatusCancelled || from == order.StatusCancelled {
			return nil
		}

		var items []models.OrderItem
		if err := tx.Select("product_id", "quantity").Where("order_id = ?", id).Find(&items).Error; err != nil {
			return err
		}
		for _, it := range items {
			err := tx.Model(&models.Product{}).
				Where("id = ? AND stock_control = ?", it.ProductID, true).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", it.Quantity)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepo) MarkWhatsAppSent(ctx context.Context, id string) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("whatsapp_sent", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func missingOrStale(tx *gorm.DB, id string) error {
	var n int64
	if err := tx.Model(&models.Order{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return ErrStaleWrite
}

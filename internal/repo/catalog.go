package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/gordopods/storefront/internal/catalog"
	"github.com/gordopods/storefront/internal/models"
)

type ProductFilter struct {
	CategoryID   string
	ActiveOnly   bool
	FeaturedOnly bool
}

func (f ProductFilter) apply(q *gorm.DB) *gorm.DB {
	if f.CategoryID != "" {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.ActiveOnly {
		q = q.Where("active = ?", true)
	}
	if f.FeaturedOnly {
		q = q.Where("featured = ?", true)
	}
	return q
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

func (r *GormRepo) ListCategories(ctx context.Context, activeOnly bool) ([]catalog.Category, error) {
	q := r.DB.WithContext(ctx).Model(&models.Category{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var rows []models.Category
	if err := q.Order("sort_order ASC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]catalog.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out, nil
}

func (r *GormRepo) GetCategory(ctx context.Context, id string) (catalog.Category, error) {
	var row models.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return catalog.Category{}, err
	}
	return row.ToDomain(), nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, c catalog.Category) (catalog.Category, error) {
	row := models.CategoryFromDomain(c)
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return catalog.Category{}, err
	}
	return row.ToDomain(), nil
}

func (r *GormRepo) SaveCategory(ctx context.Context, c catalog.Category) error {
	row := models.CategoryFromDomain(c)
	res := r.DB.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", c.ID).
		Select("name", "description", "sort_order", "active").
		Updates(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCategory leaves its products uncategorized.
func (r *GormRepo) DeleteCategory(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Update("category_id", "").Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Category{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	var row models.Product
	if err := r.DB.WithContext(ctx).Preload("Images", preloadImages).Where("id = ?", id).First(&row).Error; err != nil {
		return catalog.Product{}, err
	}
	return row.ToDomain(), nil
}

// GetProductsByIDs keeps the order of ids and skips the missing ones.
func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []string) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Product
	if err := r.DB.WithContext(ctx).Preload("Images", preloadImages).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	out := make([]catalog.Product, 0, len(rows))
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			out = append(out, row.ToDomain())
		}
	}
	return out, nil
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter, offset, limit int) (int64, []catalog.Product, error) {
	var total int64
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.Product{})).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var rows []models.Product
	if err := f.apply(r.DB.WithContext(ctx).Model(&models.Product{})).
		Preload("Images", preloadImages).
		Order("sort_order ASC").Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return 0, nil, err
	}

	out := make([]catalog.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return total, out, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	row := models.ProductFromDomain(p)
	if err := r.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return catalog.Product{}, err
	}
	return row.ToDomain(), nil
}

// SaveProduct overwrites the product and replaces its image set.
func (r *GormRepo) SaveProduct(ctx context.Context, p catalog.Product) error {
	row := models.ProductFromDomain(p)
	images := row.Images
	row.Images = nil

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ?", p.ID).
			Select("category_id", "name", "description", "price", "variation_groups",
				"stock_control", "stock_quantity", "active", "featured", "sort_order").
			Updates(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("product_id = ?", p.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SearchProducts is a plain substring match used when the search index is down.
func (r *GormRepo) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []catalog.Product, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(q))) + "%"
	where := "active = ? AND (LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')"

	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Where(where, true, pattern, pattern).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var rows []models.Product
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where(where, true, pattern, pattern).
		Preload("Images", preloadImages).
		Order("featured DESC").Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return 0, nil, err
	}

	out := make([]catalog.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return total, out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

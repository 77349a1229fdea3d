package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gordopods/storefront/internal/catalog"
	"github.com/gordopods/storefront/internal/money"
	"github.com/gordopods/storefront/internal/repo"
	"github.com/gordopods/storefront/internal/search"
	"github.com/gordopods/storefront/internal/transport"
	"github.com/gordopods/storefront/pkg/logging"
)

type CatalogService struct {
	Repo  CatalogRepository
	Index search.Index
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}

func (s *CatalogService) ListCategories(ctx context.Context, includeInactive bool) ([]catalog.Category, error) {
	return s.Repo.ListCategories(ctx, !includeInactive)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CategoryRequest) (catalog.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return catalog.Category{}, fmt.Errorf("%w: name required", ErrValidation)
	}
	c := catalog.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Order:       req.Order,
		Active:      req.Active == nil || *req.Active,
	}
	return s.Repo.CreateCategory(ctx, c)
}

func (s *CatalogService) PatchCategory(ctx context.Context, id string, req transport.PatchCategoryRequest) (catalog.Category, error) {
	c, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		return catalog.Category{}, notFound(err, "category")
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return catalog.Category{}, fmt.Errorf("%w: name required", ErrValidation)
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		c.Description = strings.TrimSpace(*req.Description)
	}
	if req.Order != nil {
		c.Order = *req.Order
	}
	if req.Active != nil {
		c.Active = *req.Active
	}
	if err := s.Repo.SaveCategory(ctx, c); err != nil {
		return catalog.Category{}, notFound(err, "category")
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	return notFound(s.Repo.DeleteCategory(ctx, id), "category")
}

// GetProduct hides inactive products from the storefront.
func (s *CatalogService) GetProduct(ctx context.Context, id string, includeInactive bool) (catalog.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return catalog.Product{}, notFound(err, "product")
	}
	if !p.Active && !includeInactive {
		return catalog.Product{}, fmt.Errorf("%w: product", ErrNotFound)
	}
	return p, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter, offset, limit int) (int64, []catalog.Product, error) {
	return s.Repo.ListProducts(ctx, f, offset, limit)
}

// SearchProducts asks the search index first and falls back to the database.
func (s *CatalogService) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []catalog.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.search")

	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, fmt.Errorf("%w: query required", ErrValidation)
	}
	if s.Index != nil {
		total, ids, err := s.Index.Search(ctx, q, offset, limit)
		if err == nil {
			items, err := s.Repo.GetProductsByIDs(ctx, ids)
			if err != nil {
				return 0, nil, err
			}
			active := items[:0]
			for _, p := range items {
				if p.Active {
					active = append(active, p)
				}
			}
			return total, active, nil
		}
		l.Warn("search_index_error", "fallback", "database", "error", err)
	}
	return s.Repo.SearchProducts(ctx, q, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (catalog.Product, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return catalog.Product{}, err
	}
	groups, err := buildGroups(req.VariationGroups)
	if err != nil {
		return catalog.Product{}, err
	}
	p := catalog.Product{
		ID:              uuid.NewString(),
		CategoryID:      req.CategoryID,
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		Price:           price,
		Images:          buildImages(req.Images),
		VariationGroups: groups,
		StockControl:    req.StockControl,
		StockQuantity:   req.StockQuantity,
		Active:          req.Active == nil || *req.Active,
		Featured:        req.Featured,
		Order:           req.Order,
	}
	if err := s.validateProduct(ctx, p); err != nil {
		return catalog.Product{}, err
	}

	created, err := s.Repo.CreateProduct(ctx, p)
	if err != nil {
		return catalog.Product{}, err
	}
	s.reindex(ctx, created)
	return created, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, id string, req transport.PatchProductRequest) (catalog.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return catalog.Product{}, notFound(err, "product")
	}

	if req.CategoryID != nil {
		p.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if p.Price, err = parsePrice(*req.Price); err != nil {
			return catalog.Product{}, err
		}
	}
	if req.Images != nil {
		p.Images = buildImages(*req.Images)
	}
	if req.VariationGroups != nil {
		if p.VariationGroups, err = buildGroups(*req.VariationGroups); err != nil {
			return catalog.Product{}, err
		}
	}
	if req.StockControl != nil {
		p.StockControl = *req.StockControl
	}
	if req.StockQuantity != nil {
		p.StockQuantity = *req.StockQuantity
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if req.Featured != nil {
		p.Featured = *req.Featured
	}
	if req.Order != nil {
		p.Order = *req.Order
	}
	if err := s.validateProduct(ctx, p); err != nil {
		return catalog.Product{}, err
	}

	if err := s.Repo.SaveProduct(ctx, p); err != nil {
		return catalog.Product{}, notFound(err, "product")
	}
	s.reindex(ctx, p)
	return p, nil
}

func (s *CatalogService) SetMainImage(ctx context.Context, productID, imageID string) (catalog.Product, error) {
	p, err := s.Repo.GetProduct(ctx, productID)
	if err != nil {
		return catalog.Product{}, notFound(err, "product")
	}
	images, err := catalog.SetMainImage(p.Images, imageID)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("%w: image", ErrNotFound)
	}
	p.Images = images
	if err := s.Repo.SaveProduct(ctx, p); err != nil {
		return catalog.Product{}, notFound(err, "product")
	}
	return p, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return notFound(err, "product")
	}
	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			logging.FromContext(ctx).Warn("search_index_error", "product_id", id, "error", err)
		}
	}
	return nil
}

func (s *CatalogService) reindex(ctx context.Context, p catalog.Product) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexProduct(ctx, p); err != nil {
		logging.FromContext(ctx).Warn("search_index_error", "product_id", p.ID, "error", err)
	}
}

func (s *CatalogService) validateProduct(ctx context.Context, p catalog.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if p.StockQuantity < 0 {
		return fmt.Errorf("%w: stock quantity must be >= 0", ErrValidation)
	}
	if p.CategoryID != "" {
		if _, err := s.Repo.GetCategory(ctx, p.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: unknown category", ErrValidation)
			}
			return err
		}
	}
	return nil
}

func parsePrice(s string) (int64, error) {
	v, err := money.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("%w: price: %v", ErrValidation, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return v, nil
}

func buildImages(reqs []transport.ImageRequest) []catalog.ProductImage {
	images := make([]catalog.ProductImage, 0, len(reqs))
	for _, r := range reqs {
		if strings.TrimSpace(r.URL) == "" {
			continue
		}
		id := r.ID
		if id == "" {
			id = uuid.NewString()
		}
		images = append(images, catalog.ProductImage{ID: id, URL: strings.TrimSpace(r.URL), IsMain: r.IsMain, Order: r.Order})
	}
	return catalog.NormalizeImages(images)
}

func buildGroups(reqs []transport.VariationGroupRequest) ([]catalog.VariationGroup, error) {
	groups := make([]catalog.VariationGroup, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for _, gr := range reqs {
		name := strings.TrimSpace(gr.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: variation group name required", ErrValidation)
		}
		if len(gr.Options) == 0 {
			return nil, fmt.Errorf("%w: variation group %q has no options", ErrValidation, name)
		}
		g := catalog.VariationGroup{
			ID:                gr.ID,
			Name:              name,
			Required:          gr.Required,
			MultipleSelection: gr.MultipleSelection,
		}
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		if _, dup := seen[g.ID]; dup {
			return nil, fmt.Errorf("%w: duplicated variation group %q", ErrValidation, g.ID)
		}
		seen[g.ID] = struct{}{}

		optSeen := make(map[string]struct{}, len(gr.Options))
		for _, or := range gr.Options {
			oname := strings.TrimSpace(or.Name)
			if oname == "" {
				return nil, fmt.Errorf("%w: option name required in group %q", ErrValidation, name)
			}
			var mod int64
			if strings.TrimSpace(or.PriceModifier) != "" {
				v, err := money.Parse(or.PriceModifier)
				if err != nil {
					return nil, fmt.Errorf("%w: option %q price: %v", ErrValidation, oname, err)
				}
				mod = v
			}
			o := catalog.VariationOption{ID: or.ID, Name: oname, PriceModifier: mod}
			if o.ID == "" {
				o.ID = uuid.NewString()
			}
			if _, dup := optSeen[o.ID]; dup {
				return nil, fmt.Errorf("%w: duplicated option %q", ErrValidation, o.ID)
			}
			optSeen[o.ID] = struct{}{}
			g.Options = append(g.Options, o)
		}
		groups = append(groups, g)
	}
	return groups, nil
}

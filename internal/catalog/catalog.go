// Package catalog holds the product catalog domain model consumed by the cart.
package catalog

import (
	"errors"
	"sort"
)

var ErrImageNotFound = errors.New("image not found")

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Active      bool   `json:"active"`
}

type VariationOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceModifier int64  `json:"price_modifier"`
}

type VariationGroup struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Required          bool              `json:"required"`
	MultipleSelection bool              `json:"multiple_selection"`
	Options           []VariationOption `json:"options"`
}

func (g VariationGroup) Option(id string) (VariationOption, bool) {
	for _, o := range g.Options {
		if o.ID == id {
			return o, true
		}
	}
	return VariationOption{}, false
}

type ProductImage struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	IsMain bool   `json:"is_main"`
	Order  int    `json:"order"`
}

type Product struct {
	ID              string           `json:"id"`
	CategoryID      string           `json:"category_id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Price           int64            `json:"price"`
	Images          []ProductImage   `json:"images"`
	VariationGroups []VariationGroup `json:"variation_groups"`
	StockControl    bool             `json:"stock_control"`
	StockQuantity   int              `json:"stock_quantity"`
	Active          bool             `json:"active"`
	Featured        bool             `json:"featured"`
	Order           int              `json:"order"`
}

func (p Product) Group(id string) (VariationGroup, bool) {
	for _, g := range p.VariationGroups {
		if g.ID == id {
			return g, true
		}
	}
	return VariationGroup{}, false
}

func (p Product) MainImage() (ProductImage, bool) {
	for _, img := range p.Images {
		if img.IsMain {
			return img, true
		}
	}
	return ProductImage{}, false
}

// SetMainImage marks imageID as the only main image of the product.
func SetMainImage(images []ProductImage, imageID string) ([]ProductImage, error) {
	found := false
	out := make([]ProductImage, len(images))
	for i, img := range images {
		img.IsMain = img.ID == imageID
		if img.IsMain {
			found = true
		}
		out[i] = img
	}
	if !found {
		return images, ErrImageNotFound
	}
	return out, nil
}

// NormalizeImages sorts by Order, renumbers from zero and keeps exactly one main
// image: the first flagged one, or the first image when none is flagged.
func NormalizeImages(images []ProductImage) []ProductImage {
	if len(images) == 0 {
		return nil
	}
	out := make([]ProductImage, len(images))
	copy(out, images)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })

	mainIdx := 0
	for i, img := range out {
		if img.IsMain {
			mainIdx = i
			break
		}
	}
	for i := range out {
		out[i].Order = i
		out[i].IsMain = i == mainIdx
	}
	return out
}

package models

import (
	"github.com/google/uuid"

	"github.com/gordopods/storefront/internal/cart"
	"github.com/gordopods/storefront/internal/catalog"
	"github.com/gordopods/storefront/internal/delivery"
	"github.com/gordopods/storefront/internal/order"
	"github.com/gordopods/storefront/internal/pricing"
)

func CategoryFromDomain(c catalog.Category) Category {
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		SortOrder:   c.Order,
		Active:      c.Active,
	}
}

func (c Category) ToDomain() catalog.Category {
	return catalog.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Order:       c.SortOrder,
		Active:      c.Active,
	}
}

func ProductFromDomain(p catalog.Product) Product {
	row := Product{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockControl:  p.StockControl,
		StockQuantity: p.StockQuantity,
		Active:        p.Active,
		Featured:      p.Featured,
		SortOrder:     p.Order,
	}
	for _, img := range p.Images {
		if img.ID == "" {
			img.ID = uuid.NewString()
		}
		row.Images = append(row.Images, ProductImage{
			ID:        img.ID,
			ProductID: p.ID,
			URL:       img.URL,
			IsMain:    img.IsMain,
			SortOrder: img.Order,
		})
	}
	for _, g := range p.VariationGroups {
		vg := VariationGroup{
			ID:                g.ID,
			Name:              g.Name,
			Required:          g.Required,
			MultipleSelection: g.MultipleSelection,
		}
		for _, o := range g.Options {
			vg.Options = append(vg.Options, VariationOption{ID: o.ID, Name: o.Name, PriceModifier: o.PriceModifier})
		}
		row.VariationGroups = append(row.VariationGroups, vg)
	}
	return row
}

func (p Product) ToDomain() catalog.Product {
	out := catalog.Product{
		ID:            p.ID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockControl:  p.StockControl,
		StockQuantity: p.StockQuantity,
		Active:        p.Active,
		Featured:      p.Featured,
		Order:         p.SortOrder,
	}
	for _, img := range p.Images {
		out.Images = append(out.Images, catalog.ProductImage{
			ID:     img.ID,
			URL:    img.URL,
			IsMain: img.IsMain,
			Order:  img.SortOrder,
		})
	}
	out.Images = catalog.NormalizeImages(out.Images)
	for _, g := range p.VariationGroups {
		vg := catalog.VariationGroup{
			ID:                g.ID,
			Name:              g.Name,
			Required:          g.Required,
			MultipleSelection: g.MultipleSelection,
		}
		for _, o := range g.Options {
			vg.Options = append(vg.Options, catalog.VariationOption{ID: o.ID, Name: o.Name, PriceModifier: o.PriceModifier})
		}
		out.VariationGroups = append(out.VariationGroups, vg)
	}
	return out
}

func OrderFromDomain(o order.Order) Order {
	a := o.Customer.Address
	row := Order{
		ID:            o.ID,
		Number:        o.Number,
		CustomerName:  o.Customer.Name,
		CustomerPhone: o.Customer.Phone,
		CustomerEmail: o.Customer.Email,
		Address: Address{
			Street:     a.Street,
			Number:     a.Number,
			Complement: a.Complement,
			District:   a.District,
			City:       a.City,
			Reference:  a.Reference,
		},
		Subtotal:         o.Subtotal,
		DeliveryMethod:   string(o.Delivery.Method),
		NeighborhoodID:   o.Delivery.NeighborhoodID,
		NeighborhoodName: o.Delivery.NeighborhoodName,
		DeliveryFee:      o.Delivery.Fee,
		DeliveryLabel:    o.Delivery.Label,
		Total:            o.Total,
		Notes:            o.Notes,
		Status:           string(o.Status),
		WhatsAppSent:     o.WhatsAppSent,
		CreatedAt:        o.CreatedAt,
	}
	for i, it := range o.Items {
		row.Items = append(row.Items, OrderItem{
			ID:            uuid.NewString(),
			OrderID:       o.ID,
			Position:      i,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			UnitBasePrice: it.UnitBasePrice,
			Selections:    SelectionsFromDomain(it.Selections),
			Quantity:      it.Quantity,
			TotalPrice:    it.TotalPrice,
		})
	}
	return row
}

// ToDomain keeps the stored line id of each item so admins can reference it.
func (o Order) ToDomain() order.Order {
	out := order.Order{
		ID:     o.ID,
		Number: o.Number,
		Customer: order.Customer{
			Name:  o.CustomerName,
			Phone: o.CustomerPhone,
			Email: o.CustomerEmail,
			Address: order.Address{
				Street:     o.Address.Street,
				Number:     o.Address.Number,
				Complement: o.Address.Complement,
				District:   o.Address.District,
				City:       o.Address.City,
				Reference:  o.Address.Reference,
			},
		},
		Subtotal: o.Subtotal,
		Delivery: delivery.Option{
			Method:           delivery.Method(o.DeliveryMethod),
			NeighborhoodID:   o.NeighborhoodID,
			NeighborhoodName: o.NeighborhoodName,
			Fee:              o.DeliveryFee,
			Label:            o.DeliveryLabel,
		},
		Total:        o.Total,
		Notes:        o.Notes,
		Status:       order.Status(o.Status),
		CreatedAt:    o.CreatedAt,
		WhatsAppSent: o.WhatsAppSent,
	}
	out.Items = make([]cart.LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		out.Items = append(out.Items, cart.LineItem{
			ID:            it.ID,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			UnitBasePrice: it.UnitBasePrice,
			Selections:    SelectionsToDomain(it.Selections),
			Quantity:      it.Quantity,
			TotalPrice:    it.TotalPrice,
		})
	}
	return out
}

func SelectionsFromDomain(sel []pricing.Selection) []Selection {
	if len(sel) == 0 {
		return nil
	}
	out := make([]Selection, len(sel))
	for i, s := range sel {
		out[i] = Selection{
			GroupID:       s.GroupID,
			GroupName:     s.GroupName,
			OptionID:      s.OptionID,
			OptionName:    s.OptionName,
			PriceModifier: s.PriceModifier,
		}
	}
	return out
}

func SelectionsToDomain(sel []Selection) []pricing.Selection {
	if len(sel) == 0 {
		return nil
	}
	out := make([]pricing.Selection, len(sel))
	for i, s := range sel {
		out[i] = pricing.Selection{
			GroupID:       s.GroupID,
			GroupName:     s.GroupName,
			OptionID:      s.OptionID,
			OptionName:    s.OptionName,
			PriceModifier: s.PriceModifier,
		}
	}
	return out
}

package models

import (
	"time"
)

type Category struct {
	ID          string    `gorm:"primaryKey;size:36"            json:"id"`
	Name        string    `gorm:"not null"                      json:"name"`
	Description string    `gorm:"not null;default:''"           json:"description"`
	SortOrder   int       `gorm:"not null;default:0;index"      json:"sort_order"`
	Active      bool      `gorm:"not null;default:true"         json:"active"`
	CreatedAt   time.Time `gorm:"not null"                      json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null"                      json:"updated_at"`
}

type Product struct {
	ID              string           `gorm:"primaryKey;size:36"                  json:"id"`
	CategoryID      string           `gorm:"size:36;index"                       json:"category_id"`
	Name            string           `gorm:"not null"                            json:"name"`
	Description     string           `gorm:"not null;default:''"                 json:"description"`
	Price           int64            `gorm:"not null;check:price >= 0"           json:"price"`
	Images          []ProductImage   `gorm:"constraint:OnDelete:CASCADE"         json:"images"`
	VariationGroups []VariationGroup `gorm:"serializer:json"                     json:"variation_groups"`
	StockControl    bool             `gorm:"not null;default:false"              json:"stock_control"`
	StockQuantity   int              `gorm:"not null;default:0"                  json:"stock_quantity"`
	Active          bool             `gorm:"not null;default:true;index"         json:"active"`
	Featured        bool             `gorm:"not null;default:false"              json:"featured"`
	SortOrder       int              `gorm:"not null;default:0"                  json:"sort_order"`
	CreatedAt       time.Time        `gorm:"not null"                            json:"created_at"`
	UpdatedAt       time.Time        `gorm:"not null"                            json:"updated_at"`
}

type ProductImage struct {
	ID        string `gorm:"primaryKey;size:36"        json:"id"`
	ProductID string `gorm:"size:36;index;not null"    json:"product_id"`
	URL       string `gorm:"not null"                  json:"url"`
	IsMain    bool   `gorm:"not null;default:false"    json:"is_main"`
	SortOrder int    `gorm:"not null;default:0"        json:"sort_order"`
}

// VariationGroup and VariationOption are stored as a JSON column on products.
type VariationGroup struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Required          bool              `json:"required"`
	MultipleSelection bool              `json:"multiple_selection"`
	Options           []VariationOption `json:"options"`
}

type VariationOption struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceModifier int64  `json:"price_modifier"`
}

type Order struct {
	ID               string      `gorm:"primaryKey;size:36"                 json:"id"`
	Number           string      `gorm:"uniqueIndex;not null"               json:"number"`
	CustomerName     string      `gorm:"not null"                           json:"customer_name"`
	CustomerPhone    string      `gorm:"not null"                           json:"customer_phone"`
	CustomerEmail    string      `gorm:"not null;default:''"                json:"customer_email"`
	Address          Address     `gorm:"embedded;embeddedPrefix:address_"   json:"address"`
	Items            []OrderItem `gorm:"constraint:OnDelete:CASCADE"        json:"items"`
	Subtotal         int64       `gorm:"not null"                           json:"subtotal"`
	DeliveryMethod   string      `gorm:"not null"                           json:"delivery_method"`
	NeighborhoodID   string      `gorm:"not null;default:''"                json:"neighborhood_id"`
	NeighborhoodName string      `gorm:"not null;default:''"                json:"neighborhood_name"`
	DeliveryFee      int64       `gorm:"not null;default:0"                 json:"delivery_fee"`
	DeliveryLabel    string      `gorm:"not null"                           json:"delivery_label"`
	Total            int64       `gorm:"not null"                           json:"total"`
	Notes            string      `gorm:"not null;default:''"                json:"notes"`
	Status           string      `gorm:"not null;index"                     json:"status"`
	WhatsAppSent     bool        `gorm:"column:whatsapp_sent;not null;default:false" json:"whatsapp_sent"`
	CreatedAt        time.Time   `gorm:"not null;index"                     json:"created_at"`
	UpdatedAt        time.Time   `gorm:"not null"                           json:"updated_at"`
}

type Address struct {
	Street     string `gorm:"not null;default:''" json:"street"`
	Number     string `gorm:"not null;default:''" json:"number"`
	Complement string `gorm:"not null;default:''" json:"complement"`
	District   string `gorm:"not null;default:''" json:"district"`
	City       string `gorm:"not null;default:''" json:"city"`
	Reference  string `gorm:"not null;default:''" json:"reference"`
}

type OrderItem struct {
	ID            string      `gorm:"primaryKey;size:36"              json:"id"`
	OrderID       string      `gorm:"size:36;index;not null"          json:"order_id"`
	Position      int         `gorm:"not null;default:0"              json:"position"`
	ProductID     string      `gorm:"size:36;not null"                json:"product_id"`
	ProductName   string      `gorm:"not null"                        json:"product_name"`
	UnitBasePrice int64       `gorm:"not null"                        json:"unit_base_price"`
	Selections    []Selection `gorm:"serializer:json"                 json:"selections"`
	Quantity      int         `gorm:"not null;check:quantity > 0"     json:"quantity"`
	TotalPrice    int64       `gorm:"not null"                        json:"total_price"`
}

type Selection struct {
	GroupID       string `json:"group_id"`
	GroupName     string `json:"group_name"`
	OptionID      string `json:"option_id"`
	OptionName    string `json:"option_name"`
	PriceModifier int64  `json:"price_modifier"`
}

// Entry is one document of the key-value store (cart sessions, settings).
type Entry struct {
	Key       string    `gorm:"primaryKey;size:191" json:"key"`
	Value     string    `gorm:"not null"            json:"value"`
	UpdatedAt time.Time `gorm:"not null"            json:"updated_at"`
}

type AdminUser struct {
	ID           string    `gorm:"primaryKey;size:36"      json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"    json:"username"`
	PasswordHash string    `gorm:"not null"                json:"-"`
	Role         string    `gorm:"not null"                json:"role"`
	CreatedAt    time.Time `gorm:"not null"                json:"created_at"`
}

func (Entry) TableName() string { return "kv_entries" }

// All lists every table for AutoMigrate.
func All() []any {
	return []any{
		&Category{},
		&Product{},
		&ProductImage{},
		&Order{},
		&OrderItem{},
		&Entry{},
		&AdminUser{},
	}
}

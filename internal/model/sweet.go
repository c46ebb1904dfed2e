package model

import "time"

// Sweet is a sellable catalog item. QuantityInStock never goes below zero;
// every mutation re-checks the bound inside the owning transaction.
type Sweet struct {
	ID              uint      `gorm:"column:sweet_id;primaryKey" json:"sweet_id"`
	Name            string    `gorm:"column:sweet_name;type:varchar(255);not null" json:"sweet_name"`
	Category        string    `gorm:"column:sweet_category;type:varchar(100);not null" json:"sweet_category"`
	Price           float64   `gorm:"column:sweet_price;not null" json:"sweet_price"`
	QuantityInStock int       `gorm:"column:quantity_in_stock;default:0" json:"quantity_in_stock"`
	Description     string    `gorm:"column:sweet_description;type:text" json:"sweet_description"`
	CreatedAt       time.Time `gorm:"column:sweet_created_at;autoCreateTime" json:"sweet_created_at"`
	UpdatedAt       time.Time `gorm:"column:sweet_updated_at;autoUpdateTime" json:"sweet_updated_at"`
}

// TableName specifies the table name for GORM
func (Sweet) TableName() string {
	return "sweet_products"
}

// SweetPatch carries a partial update. Only non-nil fields are applied,
// absent fields keep their previous values.
type SweetPatch struct {
	Name            *string  `json:"sweet_name"`
	Category        *string  `json:"sweet_category"`
	Price           *float64 `json:"sweet_price" validate:"omitempty,gt=0"`
	QuantityInStock *int     `json:"quantity_in_stock" validate:"omitempty,gte=0"`
	Description     *string  `json:"sweet_description"`
}

// Apply copies the present patch fields onto the sweet.
func (p *SweetPatch) Apply(s *Sweet) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.QuantityInStock != nil {
		s.QuantityInStock = *p.QuantityInStock
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
}

// PurchaseResult is the snapshot returned after a successful purchase.
type PurchaseResult struct {
	Message           string  `json:"message"`
	SweetID           uint    `json:"sweet_id"`
	SweetName         string  `json:"sweet_name"`
	PreviousQuantity  int     `json:"previous_quantity"`
	NewQuantity       int     `json:"new_quantity"`
	QuantityPurchased int     `json:"quantity_purchased"`
	TotalPrice        float64 `json:"total_price"`
	DiscountedPrice   float64 `json:"discounted_price"`
}

// RestockResult is the snapshot returned after a successful restock.
type RestockResult struct {
	Message          string `json:"message"`
	SweetID          uint   `json:"sweet_id"`
	SweetName        string `json:"sweet_name"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
	QuantityAdded    int    `json:"quantity_added"`
}

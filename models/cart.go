package models

import "time"

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    string     `gorm:"uniqueIndex;not null" json:"usuario"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem snapshots the product's name and price at add-time. Snapshots are
// never refreshed when the catalog changes; only stock checks read live data.
type CartItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	CartID    uint    `gorm:"index" json:"-"`
	ProductID uint    `gorm:"not null" json:"productoId"`
	Name      string  `gorm:"not null" json:"nombre"`
	Price     float64 `gorm:"not null" json:"precio"`
	Quantity  int     `gorm:"not null" json:"cantidad"`
}

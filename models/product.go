package models

import "time"

type Product struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"not null" json:"nombre"`
	Description   string     `gorm:"not null" json:"descripcion"`
	Price         float64    `gorm:"not null" json:"precio"`
	Stock         int        `gorm:"not null" json:"stock"`
	Image         string     `json:"imagen,omitempty"`
	Category      string     `json:"categoria"`
	DiscountPrice *float64   `json:"precioDescuento,omitempty"`
	DiscountPct   *float64   `json:"porcentajeDescuento,omitempty"`
	DiscountStart *time.Time `json:"fechaInicioDescuento,omitempty"`
	DiscountEnd   *time.Time `json:"fechaFinDescuento,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// RecomputeDiscount derives the discounted price. It must run on every write
// path before the product is saved: the discounted price exists only while
// the discount window contains now, and is never client-settable.
func (p *Product) RecomputeDiscount(now time.Time) {
	if p.DiscountPct != nil && *p.DiscountPct > 0 &&
		p.DiscountStart != nil && p.DiscountEnd != nil &&
		!p.DiscountStart.After(now) && !p.DiscountEnd.Before(now) {
		discounted := p.Price * (1 - *p.DiscountPct/100)
		if discounted < 0 {
			discounted = 0
		}
		p.DiscountPrice = &discounted
		return
	}
	p.DiscountPrice = nil
}

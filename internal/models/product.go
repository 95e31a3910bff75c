package models

import (
	"github.com/shopspring/decimal"
)

// Product is a sellable item with a unit price and available stock.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Descripcion string          `gorm:"size:200;not null" json:"descripcion"`
	Precio      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;check:ck_producto_precio_nonneg,precio >= 0" json:"precio"`
	Stock       int             `gorm:"not null;default:0;check:ck_producto_stock_nonneg,stock >= 0" json:"stock"`

	Detalles []InvoiceLine `gorm:"foreignKey:ProductoID" json:"-"`
}

func (Product) TableName() string { return "productos" }

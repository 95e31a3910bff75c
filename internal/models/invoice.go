package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a committed sale for a client. Total is derived from the
// lines and stored so listings and reports never need the detail rows.
type Invoice struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	ClienteID uint            `gorm:"index;not null" json:"cliente_id"`
	Cliente   *Client         `gorm:"foreignKey:ClienteID;constraint:OnDelete:RESTRICT" json:"cliente,omitempty"`
	Fecha     time.Time       `gorm:"not null" json:"fecha"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;check:ck_factura_total_nonneg,total >= 0" json:"total"`

	Detalles []InvoiceLine `gorm:"foreignKey:FacturaID;constraint:OnDelete:CASCADE" json:"detalles,omitempty"`
}

func (Invoice) TableName() string { return "facturas" }

// RecalcularTotal recomputes the stored total from the loaded lines.
func (f *Invoice) RecalcularTotal() {
	total := decimal.Zero
	for _, d := range f.Detalles {
		total = total.Add(d.Subtotal)
	}
	f.Total = total
}

// InvoiceLine is one product+quantity entry within an invoice. The unit
// price is snapshotted from the product at the moment of sale.
type InvoiceLine struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	FacturaID      uint            `gorm:"index;not null" json:"factura_id"`
	ProductoID     uint            `gorm:"index;not null" json:"producto_id"`
	Producto       *Product        `gorm:"foreignKey:ProductoID;constraint:OnDelete:RESTRICT" json:"producto,omitempty"`
	Cantidad       int             `gorm:"not null;default:1;check:ck_detalle_cantidad_pos,cantidad > 0" json:"cantidad"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;check:ck_detalle_pu_nonneg,precio_unitario >= 0" json:"precio_unitario"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;check:ck_detalle_subtotal_nonneg,subtotal >= 0" json:"subtotal"`
}

func (InvoiceLine) TableName() string { return "detalle_factura" }

// CalcularSubtotal sets Subtotal = Cantidad × PrecioUnitario.
func (d *InvoiceLine) CalcularSubtotal() {
	d.Subtotal = d.PrecioUnitario.Mul(decimal.NewFromInt(int64(d.Cantidad)))
}

package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/santiagosossaa1/facturas/internal/models"
)

// InvoiceFilter narrows invoice listings and reports. Nil dates mean
// "no bound"; Hasta covers the entire end day.
type InvoiceFilter struct {
	ClienteID uint
	Desde     *time.Time
	Hasta     *time.Time
}

// ParseDate parses a YYYY-MM-DD query value. Invalid or empty input
// yields nil, which the filters treat as "not set".
func ParseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// ReportService answers the read-only listing and aggregation queries.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// ListInvoices returns the filtered invoices, newest first.
func (s *ReportService) ListInvoices(ctx context.Context, f InvoiceFilter) ([]models.Invoice, error) {
	q := s.db.WithContext(ctx).Model(&models.Invoice{}).Preload("Cliente")
	q = applyFilter(q, f)
	var facturas []models.Invoice
	if err := q.Order("fecha DESC, id DESC").Find(&facturas).Error; err != nil {
		return nil, err
	}
	return facturas, nil
}

// Ventas returns the filtered invoices together with their count and
// the grand total over the filtered set.
func (s *ReportService) Ventas(ctx context.Context, f InvoiceFilter) ([]models.Invoice, int, decimal.Decimal, error) {
	facturas, err := s.ListInvoices(ctx, f)
	if err != nil {
		return nil, 0, decimal.Zero, err
	}
	total := decimal.Zero
	for _, fac := range facturas {
		total = total.Add(fac.Total)
	}
	return facturas, len(facturas), total, nil
}

// Counts reports the row count of every business table.
func (s *ReportService) Counts(ctx context.Context) (clientes, productos, facturas, detalles int64, err error) {
	conn := s.db.WithContext(ctx)
	if err = conn.Model(&models.Client{}).Count(&clientes).Error; err != nil {
		return
	}
	if err = conn.Model(&models.Product{}).Count(&productos).Error; err != nil {
		return
	}
	if err = conn.Model(&models.Invoice{}).Count(&facturas).Error; err != nil {
		return
	}
	err = conn.Model(&models.InvoiceLine{}).Count(&detalles).Error
	return
}

func applyFilter(q *gorm.DB, f InvoiceFilter) *gorm.DB {
	if f.ClienteID != 0 {
		q = q.Where("cliente_id = ?", f.ClienteID)
	}
	if f.Desde != nil {
		q = q.Where("fecha >= ?", *f.Desde)
	}
	if f.Hasta != nil {
		// Inclusive of the entire end day.
		q = q.Where("fecha < ?", f.Hasta.AddDate(0, 0, 1))
	}
	return q
}

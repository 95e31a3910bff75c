package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/santiagosossaa1/facturas/internal/models"
)

// Validation and business-rule errors surfaced to the handlers, which
// map them onto user-facing warnings.
var (
	ErrNoClient        = errors.New("no client selected")
	ErrUnknownClient   = errors.New("unknown client")
	ErrNoItems         = errors.New("no invoice items")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrUnknownProduct  = errors.New("unknown product in selection")
)

// Shortage describes one product whose requested quantity exceeds stock.
type Shortage struct {
	Descripcion string
	Stock       int
	Pedido      int
}

func (s Shortage) String() string {
	return fmt.Sprintf("%s (stock %d, pedido %d)", s.Descripcion, s.Stock, s.Pedido)
}

// StockError collects every shortage found in one submission so the
// user sees the whole problem at once.
type StockError struct {
	Faltantes []Shortage
}

func (e *StockError) Error() string {
	parts := make([]string, len(e.Faltantes))
	for i, f := range e.Faltantes {
		parts[i] = f.String()
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

// Detail joins the shortages for display after a localized prefix.
func (e *StockError) Detail() string {
	parts := make([]string, len(e.Faltantes))
	for i, f := range e.Faltantes {
		parts[i] = f.String()
	}
	return strings.Join(parts, ", ")
}

// LineInput is one submitted (product, quantity) row.
type LineInput struct {
	ProductoID uint
	Cantidad   int
}

// InvoiceService owns the invoice creation workflow.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// Create validates and commits a sale as a single transaction:
// duplicate product rows are aggregated, stock is checked for the
// aggregated quantities, unit prices are snapshotted, stock is
// decremented and the stored total is the sum of the line subtotals.
// On any error nothing is persisted.
func (s *InvoiceService) Create(ctx context.Context, clienteID uint, items []LineInput) (*models.Invoice, error) {
	if clienteID == 0 {
		return nil, ErrNoClient
	}
	for _, it := range items {
		if it.Cantidad <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	// Aggregate duplicate products, keeping first-appearance order so
	// the resulting lines are deterministic.
	agg := make(map[uint]int, len(items))
	order := make([]uint, 0, len(items))
	for _, it := range items {
		if _, seen := agg[it.ProductoID]; !seen {
			order = append(order, it.ProductoID)
		}
		agg[it.ProductoID] += it.Cantidad
	}

	var invoice models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cliente models.Client
		if err := tx.First(&cliente, clienteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownClient
			}
			return err
		}

		var productos []models.Product
		if err := tx.Where("id IN ?", order).Find(&productos).Error; err != nil {
			return err
		}
		byID := make(map[uint]*models.Product, len(productos))
		for i := range productos {
			byID[productos[i].ID] = &productos[i]
		}
		if len(byID) != len(order) {
			return ErrUnknownProduct
		}

		var stockErr StockError
		for _, pid := range order {
			p := byID[pid]
			if agg[pid] > p.Stock {
				stockErr.Faltantes = append(stockErr.Faltantes, Shortage{
					Descripcion: p.Descripcion,
					Stock:       p.Stock,
					Pedido:      agg[pid],
				})
			}
		}
		if len(stockErr.Faltantes) > 0 {
			return &stockErr
		}

		invoice = models.Invoice{ClienteID: clienteID, Fecha: time.Now().UTC()}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		for _, pid := range order {
			p := byID[pid]
			linea := models.InvoiceLine{
				FacturaID:      invoice.ID,
				ProductoID:     pid,
				Cantidad:       agg[pid],
				PrecioUnitario: p.Precio,
			}
			linea.CalcularSubtotal()
			if err := tx.Create(&linea).Error; err != nil {
				return err
			}
			invoice.Detalles = append(invoice.Detalles, linea)

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", pid, agg[pid]).
				Update("stock", gorm.Expr("stock - ?", agg[pid]))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Lost a race since the read above; reject the sale.
				return &StockError{Faltantes: []Shortage{{
					Descripcion: p.Descripcion,
					Stock:       p.Stock,
					Pedido:      agg[pid],
				}}}
			}
		}

		invoice.RecalcularTotal()
		return tx.Model(&models.Invoice{}).
			Where("id = ?", invoice.ID).
			Update("total", invoice.Total).Error
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Get loads an invoice with its lines, products and client.
func (s *InvoiceService) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Detalles.Producto").
		First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

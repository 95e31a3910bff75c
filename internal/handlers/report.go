package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/santiagosossaa1/facturas/internal/models"
	"github.com/santiagosossaa1/facturas/internal/services"
	"github.com/santiagosossaa1/facturas/internal/view"
)

type ReportHandler struct {
	db      *gorm.DB
	reports *services.ReportService
}

func NewReportHandler(db *gorm.DB, reports *services.ReportService) *ReportHandler {
	return &ReportHandler{db: db, reports: reports}
}

// Sales shows invoices in an optional date range with their total.
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	desde := r.URL.Query().Get("desde")
	hasta := r.URL.Query().Get("hasta")

	facturas, cantidad, total, err := h.reports.Ventas(r.Context(), services.InvoiceFilter{
		Desde: services.ParseDate(desde),
		Hasta: services.ParseDate(hasta),
	})
	if err != nil {
		http.Error(w, "failed to build sales report", http.StatusInternalServerError)
		return
	}

	_ = view.Render(w, r, "reportes/ventas.html", map[string]any{
		"Facturas": facturas,
		"Cantidad": cantidad,
		"Total":    total,
		"Filtros":  map[string]string{"desde": desde, "hasta": hasta},
	})
}

// InvoicesByClient lists one client's invoices in an optional date
// range. Without a selected client the page shows the picker with an
// empty result set.
func (h *ReportHandler) InvoicesByClient(w http.ResponseWriter, r *http.Request) {
	clienteID, _ := strconv.Atoi(r.URL.Query().Get("cliente_id"))
	desde := r.URL.Query().Get("desde")
	hasta := r.URL.Query().Get("hasta")

	var clientes []models.Client
	h.db.Order("nombre ASC").Find(&clientes)

	var facturas []models.Invoice
	total := decimal.Zero
	if clienteID > 0 {
		var err error
		facturas, _, total, err = h.reports.Ventas(r.Context(), services.InvoiceFilter{
			ClienteID: uint(clienteID),
			Desde:     services.ParseDate(desde),
			Hasta:     services.ParseDate(hasta),
		})
		if err != nil {
			http.Error(w, "failed to build client report", http.StatusInternalServerError)
			return
		}
	}

	_ = view.Render(w, r, "reportes/facturas_clientes.html", map[string]any{
		"Clientes":  clientes,
		"Facturas":  facturas,
		"Total":     total,
		"ClienteID": clienteID,
		"Filtros":   map[string]string{"desde": desde, "hasta": hasta},
	})
}

// Counts is a plain-text sanity check of the row counts per table.
func (h *ReportHandler) Counts(w http.ResponseWriter, r *http.Request) {
	clientes, productos, facturas, detalles, err := h.reports.Counts(r.Context())
	if err != nil {
		http.Error(w, "failed to count rows", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "OK | clientes=%d, productos=%d, facturas=%d, detalles=%d",
		clientes, productos, facturas, detalles)
}

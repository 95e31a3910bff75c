package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gorm.io/gorm"

	"github.com/santiagosossaa1/facturas/internal/flash"
	"github.com/santiagosossaa1/facturas/internal/i18n"
	"github.com/santiagosossaa1/facturas/internal/models"
	"github.com/santiagosossaa1/facturas/internal/services"
	"github.com/santiagosossaa1/facturas/internal/view"
)

// invoiceRows is the number of line slots on the new-invoice form.
const invoiceRows = 5

type InvoiceHandler struct {
	db      *gorm.DB
	svc     *services.InvoiceService
	reports *services.ReportService
}

func NewInvoiceHandler(db *gorm.DB, svc *services.InvoiceService, reports *services.ReportService) *InvoiceHandler {
	return &InvoiceHandler{db: db, svc: svc, reports: reports}
}

// New renders the multi-row invoice form and, on POST, runs the
// creation workflow. Every validation failure re-renders the form with
// the submitted values preserved.
func (h *InvoiceHandler) New(w http.ResponseWriter, r *http.Request) {
	var clientes []models.Client
	var productos []models.Product
	h.db.Order("nombre ASC").Find(&clientes)
	h.db.Order("descripcion ASC").Find(&productos)

	prev := map[string]string{"cliente_id": r.FormValue("cliente_id")}
	for i := 1; i <= invoiceRows; i++ {
		prev[fmt.Sprintf("product_id_%d", i)] = r.FormValue(fmt.Sprintf("product_id_%d", i))
		prev[fmt.Sprintf("cantidad_%d", i)] = r.FormValue(fmt.Sprintf("cantidad_%d", i))
	}
	data := map[string]any{
		"Clientes":  clientes,
		"Productos": productos,
		"Rows":      rowNumbers(),
		"Prev":      prev,
	}

	if r.Method == http.MethodGet {
		_ = view.Render(w, r, "facturas/nueva.html", data)
		return
	}

	clienteID, _ := strconv.Atoi(r.FormValue("cliente_id"))
	var items []services.LineInput
	for i := 1; i <= invoiceRows; i++ {
		pid, _ := strconv.Atoi(r.FormValue(fmt.Sprintf("product_id_%d", i)))
		qty, _ := strconv.Atoi(r.FormValue(fmt.Sprintf("cantidad_%d", i)))
		if pid != 0 && qty != 0 {
			items = append(items, services.LineInput{ProductoID: uint(pid), Cantidad: qty})
		}
	}

	factura, err := h.svc.Create(r.Context(), uint(clienteID), items)
	if err != nil {
		lang := i18n.FromContext(r.Context())
		var stockErr *services.StockError
		switch {
		case errors.Is(err, services.ErrNoClient):
			data["Warning"] = i18n.T(lang, "select_client")
		case errors.Is(err, services.ErrInvalidQuantity):
			data["Warning"] = i18n.T(lang, "quantity_positive")
		case errors.Is(err, services.ErrNoItems):
			data["Warning"] = i18n.T(lang, "add_one_product")
		case errors.Is(err, services.ErrUnknownProduct):
			data["Warning"] = i18n.T(lang, "unknown_product")
		case errors.Is(err, services.ErrUnknownClient):
			data["Warning"] = i18n.T(lang, "unknown_client")
		case errors.As(err, &stockErr):
			data["Warning"] = i18n.T(lang, "insufficient_stock") + stockErr.Detail()
		default:
			http.Error(w, "failed to create invoice", http.StatusInternalServerError)
			return
		}
		_ = view.Render(w, r, "facturas/nueva.html", data)
		return
	}

	flash.Add(w, r, flash.Success, i18n.T(i18n.FromContext(r.Context()), "invoice_created"))
	http.Redirect(w, r, fmt.Sprintf("/facturas/%d", factura.ID), http.StatusSeeOther)
}

// Detail shows one invoice with its lines.
func (h *InvoiceHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return
	}
	factura, err := h.svc.Get(r.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to load invoice", http.StatusInternalServerError)
		return
	}
	_ = view.Render(w, r, "facturas/detalle.html", map[string]any{"Factura": factura})
}

// List shows invoices filtered by optional client and date range.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	clienteID, _ := strconv.Atoi(r.URL.Query().Get("cliente_id"))
	desde := r.URL.Query().Get("desde")
	hasta := r.URL.Query().Get("hasta")

	filter := services.InvoiceFilter{
		ClienteID: uint(clienteID),
		Desde:     services.ParseDate(desde),
		Hasta:     services.ParseDate(hasta),
	}
	facturas, err := h.reports.ListInvoices(r.Context(), filter)
	if err != nil {
		http.Error(w, "failed to list invoices", http.StatusInternalServerError)
		return
	}

	var clientes []models.Client
	h.db.Order("nombre ASC").Find(&clientes)

	_ = view.Render(w, r, "facturas/list.html", map[string]any{
		"Facturas": facturas,
		"Clientes": clientes,
		"Filtros": map[string]string{
			"cliente_id": r.URL.Query().Get("cliente_id"),
			"desde":      desde,
			"hasta":      hasta,
		},
	})
}

func rowNumbers() []int {
	rows := make([]int, invoiceRows)
	for i := range rows {
		rows[i] = i + 1
	}
	return rows
}

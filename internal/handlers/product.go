package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/santiagosossaa1/facturas/internal/flash"
	"github.com/santiagosossaa1/facturas/internal/i18n"
	"github.com/santiagosossaa1/facturas/internal/models"
	"github.com/santiagosossaa1/facturas/internal/validation"
	"github.com/santiagosossaa1/facturas/internal/view"
)

// ProductoForm mirrors the product form. Precio is kept as the raw
// string so an invalid value can be re-rendered as typed.
type ProductoForm struct {
	Descripcion string `validate:"required,max=200"`
	Precio      string
	Stock       int `validate:"gte=0"`

	precio decimal.Decimal
}

func productoFormFromRequest(r *http.Request) (ProductoForm, validation.Violations) {
	form := ProductoForm{
		Descripcion: strings.TrimSpace(r.FormValue("descripcion")),
		Precio:      strings.TrimSpace(r.FormValue("precio")),
	}
	form.Stock, _ = strconv.Atoi(strings.TrimSpace(r.FormValue("stock")))

	v := validation.Struct(form)
	if stock := strings.TrimSpace(r.FormValue("stock")); stock == "" {
		v["stock"] = "required"
	} else if _, err := strconv.Atoi(stock); err != nil {
		v["stock"] = "out_of_range"
	}
	precio, err := decimal.NewFromString(form.Precio)
	switch {
	case form.Precio == "":
		v["precio"] = "required"
	case err != nil || !precio.IsPositive():
		v["precio"] = "must_be_positive"
	default:
		form.precio = precio.Round(2)
	}
	return form, v
}

type ProductHandler struct {
	db *gorm.DB
}

func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var productos []models.Product
	if err := h.db.Order("id DESC").Find(&productos).Error; err != nil {
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		return
	}
	_ = view.Render(w, r, "productos/list.html", map[string]any{"Productos": productos})
}

func (h *ProductHandler) New(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		_ = view.Render(w, r, "productos/form.html", map[string]any{"Modo": "nuevo"})
		return
	}

	form, v := productoFormFromRequest(r)
	if !v.Empty() {
		_ = view.Render(w, r, "productos/form.html", map[string]any{
			"Modo": "nuevo", "Form": form, "Errors": v,
		})
		return
	}

	producto := models.Product{
		Descripcion: form.Descripcion,
		Precio:      form.precio,
		Stock:       form.Stock,
	}
	if err := h.db.Create(&producto).Error; err != nil {
		http.Error(w, "failed to create product", http.StatusInternalServerError)
		return
	}
	flash.Add(w, r, flash.Success, i18n.T(i18n.FromContext(r.Context()), "product_created"))
	http.Redirect(w, r, "/productos", http.StatusSeeOther)
}

func (h *ProductHandler) Edit(w http.ResponseWriter, r *http.Request) {
	producto, ok := h.find(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		form := ProductoForm{
			Descripcion: producto.Descripcion,
			Precio:      producto.Precio.StringFixed(2),
			Stock:       producto.Stock,
		}
		_ = view.Render(w, r, "productos/form.html", map[string]any{
			"Modo": "editar", "Form": form, "Producto": producto,
		})
		return
	}

	form, v := productoFormFromRequest(r)
	if !v.Empty() {
		_ = view.Render(w, r, "productos/form.html", map[string]any{
			"Modo": "editar", "Form": form, "Producto": producto, "Errors": v,
		})
		return
	}

	producto.Descripcion = form.Descripcion
	producto.Precio = form.precio
	producto.Stock = form.Stock
	if err := h.db.Save(producto).Error; err != nil {
		http.Error(w, "failed to update product", http.StatusInternalServerError)
		return
	}
	flash.Add(w, r, flash.Success, i18n.T(i18n.FromContext(r.Context()), "product_updated"))
	http.Redirect(w, r, "/productos", http.StatusSeeOther)
}

// Delete refuses to remove a product referenced by any invoice line.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	producto, ok := h.find(w, r)
	if !ok {
		return
	}

	var detalles int64
	if err := h.db.Model(&models.InvoiceLine{}).Where("producto_id = ?", producto.ID).Count(&detalles).Error; err != nil {
		http.Error(w, "failed to check invoice lines", http.StatusInternalServerError)
		return
	}
	lang := i18n.FromContext(r.Context())
	if detalles > 0 {
		flash.Add(w, r, flash.Warning, i18n.T(lang, "product_in_use"))
		http.Redirect(w, r, "/productos", http.StatusSeeOther)
		return
	}

	if err := h.db.Delete(producto).Error; err != nil {
		http.Error(w, "failed to delete product", http.StatusInternalServerError)
		return
	}
	flash.Add(w, r, flash.Success, i18n.T(lang, "product_deleted"))
	http.Redirect(w, r, "/productos", http.StatusSeeOther)
}

func (h *ProductHandler) find(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return nil, false
	}
	var producto models.Product
	if err := h.db.First(&producto, id).Error; err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return &producto, true
}

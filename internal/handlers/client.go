package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/santiagosossaa1/facturas/internal/flash"
	"github.com/santiagosossaa1/facturas/internal/i18n"
	"github.com/santiagosossaa1/facturas/internal/models"
	"github.com/santiagosossaa1/facturas/internal/validation"
	"github.com/santiagosossaa1/facturas/internal/view"
)

// ClienteForm mirrors the client form fields and their constraints.
type ClienteForm struct {
	Nombre    string `validate:"required,max=120"`
	Direccion string `validate:"max=200"`
	Telefono  string `validate:"max=50"`
	Email     string `validate:"omitempty,email,max=120"`
}

func clienteFormFromRequest(r *http.Request) ClienteForm {
	return ClienteForm{
		Nombre:    strings.TrimSpace(r.FormValue("nombre")),
		Direccion: strings.TrimSpace(r.FormValue("direccion")),
		Telefono:  strings.TrimSpace(r.FormValue("telefono")),
		Email:     strings.ToLower(strings.TrimSpace(r.FormValue("email"))),
	}
}

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	var clientes []models.Client
	if err := h.db.Order("id DESC").Find(&clientes).Error; err != nil {
		http.Error(w, "failed to list clients", http.StatusInternalServerError)
		return
	}
	_ = view.Render(w, r, "clientes/list.html", map[string]any{"Clientes": clientes})
}

func (h *ClientHandler) New(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		_ = view.Render(w, r, "clientes/form.html", map[string]any{"Modo": "nuevo"})
		return
	}

	form := clienteFormFromRequest(r)
	if v := validation.Struct(form); !v.Empty() {
		_ = view.Render(w, r, "clientes/form.html", map[string]any{
			"Modo": "nuevo", "Form": form, "Errors": v,
		})
		return
	}

	cliente := models.Client{
		Nombre:    form.Nombre,
		Direccion: form.Direccion,
		Telefono:  form.Telefono,
		Email:     form.Email,
	}
	if err := h.db.Create(&cliente).Error; err != nil {
		http.Error(w, "failed to create client", http.StatusInternalServerError)
		return
	}
	flash.Add(w, r, flash.Success, i18n.T(i18n.FromContext(r.Context()), "client_created"))
	http.Redirect(w, r, "/clientes", http.StatusSeeOther)
}

func (h *ClientHandler) Edit(w http.ResponseWriter, r *http.Request) {
	cliente, ok := h.find(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		form := ClienteForm{
			Nombre:    cliente.Nombre,
			Direccion: cliente.Direccion,
			Telefono:  cliente.Telefono,
			Email:     cliente.Email,
		}
		_ = view.Render(w, r, "clientes/form.html", map[string]any{
			"Modo": "editar", "Form": form, "Cliente": cliente,
		})
		return
	}

	form := clienteFormFromRequest(r)
	if v := validation.Struct(form); !v.Empty() {
		_ = view.Render(w, r, "clientes/form.html", map[string]any{
			"Modo": "editar", "Form": form, "Cliente": cliente, "Errors": v,
		})
		return
	}

	cliente.Nombre = form.Nombre
	cliente.Direccion = form.Direccion
	cliente.Telefono = form.Telefono
	cliente.Email = form.Email
	if err := h.db.Save(cliente).Error; err != nil {
		http.Error(w, "failed to update client", http.StatusInternalServerError)
		return
	}
	flash.Add(w, r, flash.Success, i18n.T(i18n.FromContext(r.Context()), "client_updated"))
	http.Redirect(w, r, "/clientes", http.StatusSeeOther)
}

// Delete refuses to remove a client that still has invoices.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cliente, ok := h.find(w, r)
	if !ok {
		return
	}

	var facturas int64
	if err := h.db.Model(&models.Invoice{}).Where("cliente_id = ?", cliente.ID).Count(&facturas).Error; err != nil {
		http.Error(w, "failed to check invoices", http.StatusInternalServerError)
		return
	}
	lang := i18n.FromContext(r.Context())
	if facturas > 0 {
		flash.Add(w, r, flash.Warning, i18n.T(lang, "client_has_invoices"))
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}

	if err := h.db.Delete(cliente).Error; err != nil {
		http.Error(w, "failed to delete client", http.StatusInternalServerError)
		return
	}
	flash.Add(w, r, flash.Success, i18n.T(lang, "client_deleted"))
	http.Redirect(w, r, "/clientes", http.StatusSeeOther)
}

func (h *ClientHandler) find(w http.ResponseWriter, r *http.Request) (*models.Client, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		http.NotFound(w, r)
		return nil, false
	}
	var cliente models.Client
	if err := h.db.First(&cliente, id).Error; err != nil {
		http.NotFound(w, r)
		return nil, false
	}
	return &cliente, true
}

package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/santiagosossaa1/facturas/internal/auth"
	"github.com/santiagosossaa1/facturas/internal/i18n"
	"github.com/santiagosossaa1/facturas/internal/models"
	"github.com/santiagosossaa1/facturas/internal/view"
)

type AuthHandler struct {
	db       *gorm.DB
	sessions *auth.Sessions
}

func NewAuthHandler(db *gorm.DB, sessions *auth.Sessions) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions}
}

// Login renders the form on GET and verifies credentials on POST.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		_ = view.Render(w, r, "login.html", nil)
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil || !user.CheckPassword(password) {
		_ = view.Render(w, r, "login.html", map[string]any{
			"Error": i18n.T(i18n.FromContext(r.Context()), "invalid_credentials"),
			"Email": email,
		})
		return
	}

	h.sessions.Create(w, user.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session and returns to the login page.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Index is the landing page for authenticated users.
func (h *AuthHandler) Index(w http.ResponseWriter, r *http.Request) {
	_ = view.Render(w, r, "index.html", nil)
}

// Package server wires the handlers, middleware and health endpoints
// into the root http.Handler.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/santiagosossaa1/facturas/internal/auth"
	"github.com/santiagosossaa1/facturas/internal/handlers"
	"github.com/santiagosossaa1/facturas/internal/i18n"
	"github.com/santiagosossaa1/facturas/internal/models"
	"github.com/santiagosossaa1/facturas/internal/services"
)

// New constructs the root handler with all routes and middleware applied.
func New(db *gorm.DB, sessions *auth.Sessions, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	invoiceSvc := services.NewInvoiceService(db)
	reportSvc := services.NewReportService(db)

	authHandler := handlers.NewAuthHandler(db, sessions)
	clientHandler := handlers.NewClientHandler(db)
	productHandler := handlers.NewProductHandler(db)
	invoiceHandler := handlers.NewInvoiceHandler(db, invoiceSvc, reportSvc)
	reportHandler := handlers.NewReportHandler(db, reportSvc)

	user := requireAuth(db)
	admin := func(h http.HandlerFunc) http.Handler { return user(requireRole(models.RoleAdmin)(h)) }

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /login", authHandler.Login)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /logout", authHandler.Logout)

	mux.Handle("GET /{$}", user(authHandler.Index))

	// Client and product maintenance is reserved for administrators.
	mux.Handle("GET /clientes", admin(clientHandler.List))
	mux.Handle("GET /clientes/nuevo", admin(clientHandler.New))
	mux.Handle("POST /clientes/nuevo", admin(clientHandler.New))
	mux.Handle("GET /clientes/{id}/editar", admin(clientHandler.Edit))
	mux.Handle("POST /clientes/{id}/editar", admin(clientHandler.Edit))
	mux.Handle("POST /clientes/{id}/eliminar", admin(clientHandler.Delete))

	mux.Handle("GET /productos", admin(productHandler.List))
	mux.Handle("GET /productos/nuevo", admin(productHandler.New))
	mux.Handle("POST /productos/nuevo", admin(productHandler.New))
	mux.Handle("GET /productos/{id}/editar", admin(productHandler.Edit))
	mux.Handle("POST /productos/{id}/editar", admin(productHandler.Edit))
	mux.Handle("POST /productos/{id}/eliminar", admin(productHandler.Delete))

	mux.Handle("GET /facturas", user(invoiceHandler.List))
	mux.Handle("GET /facturas/nueva", user(invoiceHandler.New))
	mux.Handle("POST /facturas/nueva", user(invoiceHandler.New))
	mux.Handle("GET /facturas/{id}", user(invoiceHandler.Detail))

	mux.Handle("GET /reportes/ventas", admin(reportHandler.Sales))
	mux.Handle("GET /reportes/facturas-por-cliente", admin(reportHandler.InvoicesByClient))

	mux.Handle("GET /debug/conteos", admin(reportHandler.Counts))

	return sessions.Middleware(withLang(withLogging(log, withRecover(mux))))
}

// requireAuth loads the session user from the database and puts the
// record in the context. Anonymous or stale sessions go to /login.
func requireAuth(db *gorm.DB) func(http.HandlerFunc) http.Handler {
	return func(next http.HandlerFunc) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid, ok := auth.UserIDFromContext(r.Context())
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			var u models.User
			if err := db.First(&u, uid).Error; err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), &u)))
		})
	}
}

// requireRole rejects users without the given role. It must run after
// requireAuth so the user record is in the context.
func requireRole(role string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			u, ok := auth.UserFromContext(r.Context())
			if !ok || u.Role != role {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next(w, r)
		}
	}
}

// withLang resolves the request language. Explicit overrides must name
// a cataloged language; anything else falls back to header detection.
func withLang(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
		if q := r.URL.Query().Get("lang"); i18n.Supported(q) {
			lang = q
		} else if c, err := r.Cookie("lang"); err == nil && i18n.Supported(c.Value) {
			lang = c.Value
		}
		next.ServeHTTP(w, r.WithContext(i18n.WithLang(r.Context(), lang)))
	})
}

func withLogging(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// writeJSON answers the health probes; every page route renders HTML.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

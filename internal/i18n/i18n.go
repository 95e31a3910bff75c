package i18n

import (
	"context"
	"strings"
)

// DefaultLang is used when no preference can be detected.
const DefaultLang = "es"

type ctxKey struct{}

// WithLang stores the resolved language in the context.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// FromContext returns the language stored in the context, or the default.
func FromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(ctxKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLang
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	for _, part := range strings.Split(h, ",") {
		code := strings.SplitN(strings.TrimSpace(part), ";", 2)[0]
		if i := strings.Index(code, "-"); i > 0 {
			code = code[:i]
		}
		if _, ok := catalog[code]; ok {
			return code
		}
	}
	return DefaultLang
}

// Supported reports whether a language code has a catalog.
func Supported(lang string) bool {
	_, ok := catalog[lang]
	return ok
}

// T translates a message code. Unknown languages fall back to Spanish;
// unknown codes fall back to the code itself.
func T(lang, code string) string {
	if msgs, ok := catalog[lang]; ok {
		if s, ok := msgs[code]; ok {
			return s
		}
	}
	if s, ok := catalog[DefaultLang][code]; ok {
		return s
	}
	return code
}

var catalog = map[string]map[string]string{
	"es": {
		"invalid_credentials": "Credenciales inválidas",
		"client_created":      "Cliente creado correctamente.",
		"client_updated":      "Cliente actualizado.",
		"client_deleted":      "Cliente eliminado.",
		"client_has_invoices": "No se puede eliminar: el cliente tiene facturas asociadas.",
		"product_created":     "Producto creado correctamente.",
		"product_updated":     "Producto actualizado.",
		"product_deleted":     "Producto eliminado.",
		"product_in_use":      "No se puede eliminar: el producto está usado en facturas.",
		"select_client":       "Selecciona un cliente.",
		"quantity_positive":   "La cantidad debe ser mayor que 0.",
		"add_one_product":     "Agrega al menos un producto.",
		"unknown_product":     "Producto inexistente en la selección.",
		"unknown_client":      "Cliente inexistente.",
		"insufficient_stock":  "Stock insuficiente para: ",
		"invoice_created":     "Factura creada correctamente.",
		"form_invalid":        "Revisa los campos del formulario.",
		"required":            "Requerido",
		"must_be_positive":    "Debe ser > 0",
		"out_of_range":        "Fuera de rango",
		"invalid_email":       "Email inválido",
	},
	"en": {
		"invalid_credentials": "Invalid credentials",
		"client_created":      "Client created successfully.",
		"client_updated":      "Client updated.",
		"client_deleted":      "Client deleted.",
		"client_has_invoices": "Cannot delete: the client has associated invoices.",
		"product_created":     "Product created successfully.",
		"product_updated":     "Product updated.",
		"product_deleted":     "Product deleted.",
		"product_in_use":      "Cannot delete: the product is used in invoices.",
		"select_client":       "Select a client.",
		"quantity_positive":   "Quantity must be greater than 0.",
		"add_one_product":     "Add at least one product.",
		"unknown_product":     "Unknown product in the selection.",
		"unknown_client":      "Unknown client.",
		"insufficient_stock":  "Insufficient stock for: ",
		"invoice_created":     "Invoice created successfully.",
		"form_invalid":        "Check the form fields.",
		"required":            "Required",
		"must_be_positive":    "Must be > 0",
		"out_of_range":        "Out of range",
		"invalid_email":       "Invalid email",
	},
}

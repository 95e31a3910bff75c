package i18n

import (
	"context"
	"testing"
)

func TestDetectLanguage(t *testing.T) {
	if DetectLanguage("en-US,en;q=0.9") != "en" {
		t.Fatalf("expected en")
	}
	if DetectLanguage("EN-gb") != "en" {
		t.Fatalf("expected en for EN-gb")
	}
	if DetectLanguage("es-AR,es;q=0.8") != "es" {
		t.Fatalf("expected es")
	}
	if DetectLanguage("") != "es" {
		t.Fatalf("expected default es")
	}
	if DetectLanguage("fr-FR") != "es" {
		t.Fatalf("expected es fallback for unsupported language")
	}
}

func TestTranslations(t *testing.T) {
	if T("en", "required") != "Required" {
		t.Fatalf("expected Required")
	}
	if T("es", "required") != "Requerido" {
		t.Fatalf("expected Requerido")
	}
	// unknown code -> fallback to code
	if T("en", "__nope__") != "__nope__" {
		t.Fatalf("expected fallback to code")
	}
	// unknown language -> fallback to es translation if it exists
	if T("pt", "required") != "Requerido" {
		t.Fatalf("expected es fallback for pt lang")
	}
}

func TestSupported(t *testing.T) {
	if !Supported("es") || !Supported("en") {
		t.Fatalf("expected es and en to be supported")
	}
	for _, lang := range []string{"", "fr", "ES", "klingon"} {
		if Supported(lang) {
			t.Fatalf("expected %q to be unsupported", lang)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := WithLang(context.Background(), "en")
	if FromContext(ctx) != "en" {
		t.Fatalf("expected en from context")
	}
	if FromContext(context.Background()) != DefaultLang {
		t.Fatalf("expected default lang for empty context")
	}
}

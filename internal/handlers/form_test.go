package handlers

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClienteFormTrimsAndLowercases(t *testing.T) {
	r := httptest.NewRequest("POST", "/clientes/nuevo", strings.NewReader(url.Values{
		"nombre": {"  ACME  "},
		"email":  {" Ventas@ACME.com "},
	}.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form := clienteFormFromRequest(r)
	require.Equal(t, "ACME", form.Nombre)
	require.Equal(t, "ventas@acme.com", form.Email)
}

func TestProductoFormValidation(t *testing.T) {
	cases := []struct {
		name   string
		values url.Values
		field  string
		code   string
	}{
		{"missing price", url.Values{"descripcion": {"X"}, "stock": {"1"}}, "precio", "required"},
		{"negative price", url.Values{"descripcion": {"X"}, "precio": {"-2"}, "stock": {"1"}}, "precio", "must_be_positive"},
		{"bad price", url.Values{"descripcion": {"X"}, "precio": {"abc"}, "stock": {"1"}}, "precio", "must_be_positive"},
		{"missing stock", url.Values{"descripcion": {"X"}, "precio": {"1.00"}}, "stock", "required"},
		{"bad stock", url.Values{"descripcion": {"X"}, "precio": {"1.00"}, "stock": {"x"}}, "stock", "out_of_range"},
		{"missing description", url.Values{"precio": {"1.00"}, "stock": {"1"}}, "descripcion", "required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/productos/nuevo", strings.NewReader(tc.values.Encode()))
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			_, v := productoFormFromRequest(r)
			require.Equal(t, tc.code, v.Get(tc.field))
		})
	}
}

func TestProductoFormRoundsPrice(t *testing.T) {
	r := httptest.NewRequest("POST", "/productos/nuevo", strings.NewReader(url.Values{
		"descripcion": {"X"},
		"precio":      {"19.999"},
		"stock":       {"5"},
	}.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	form, v := productoFormFromRequest(r)
	require.True(t, v.Empty(), "violations: %v", v)
	require.Equal(t, "20.00", form.precio.StringFixed(2))
}

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port == "" {
		t.Fatalf("expected default port")
	}
	if cfg.Database.DSN == "" {
		t.Fatalf("expected default DSN")
	}
	if cfg.App.SessionSecret == "" {
		t.Fatalf("expected default session secret")
	}
}

func TestIsPostgres(t *testing.T) {
	tests := []struct {
		dsn  string
		want bool
	}{
		{"postgres://u:p@localhost:5432/facturas?sslmode=disable", true},
		{"postgresql://localhost/facturas", true},
		{"host=localhost user=facturas dbname=facturas", true},
		{"instance/app.db", false},
		{"file::memory:?cache=shared", false},
	}
	for _, tt := range tests {
		d := DatabaseConfig{DSN: tt.dsn}
		if got := d.IsPostgres(); got != tt.want {
			t.Errorf("IsPostgres(%q) = %v, want %v", tt.dsn, got, tt.want)
		}
	}
}

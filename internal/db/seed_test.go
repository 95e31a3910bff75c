package db

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/santiagosossaa1/facturas/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

func TestSeedIsIdempotent(t *testing.T) {
	conn := openTestDB(t)
	if err := Seed(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := Seed(conn); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	var users int64
	conn.Model(&models.User{}).Count(&users)
	if users != 2 {
		t.Fatalf("expected 2 seeded users, got %d", users)
	}

	var admin models.User
	if err := conn.Where("email = ?", "administrador@facturas.com").First(&admin).Error; err != nil {
		t.Fatalf("admin missing: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}
	if !admin.CheckPassword("admin") {
		t.Fatalf("expected seeded admin password to verify")
	}

	var clients, products int64
	conn.Model(&models.Client{}).Count(&clients)
	conn.Model(&models.Product{}).Count(&products)
	if clients != 1 || products != 1 {
		t.Fatalf("expected 1 demo client and product, got %d/%d", clients, products)
	}
}

func TestResetKeepsUsers(t *testing.T) {
	conn := openTestDB(t)
	if err := Seed(conn); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := Reset(conn); err != nil {
		t.Fatalf("reset: %v", err)
	}

	var users, clients, products, invoices int64
	conn.Model(&models.User{}).Count(&users)
	conn.Model(&models.Client{}).Count(&clients)
	conn.Model(&models.Product{}).Count(&products)
	conn.Model(&models.Invoice{}).Count(&invoices)
	if users != 2 {
		t.Fatalf("expected users to survive reset, got %d", users)
	}
	if clients != 0 || products != 0 || invoices != 0 {
		t.Fatalf("expected business tables to be empty")
	}
}

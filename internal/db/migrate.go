package db

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/santiagosossaa1/facturas/internal/models"
)

// Migrate applies the GORM schema migrations for all tables.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Product{},
		&models.Invoice{},
		&models.InvoiceLine{},
	); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// Seed inserts the demo accounts and sample records the app ships with.
// It is idempotent: existing rows are left alone.
func Seed(conn *gorm.DB) error {
	if err := seedUser(conn, "administrador@facturas.com", "admin", models.RoleAdmin); err != nil {
		return err
	}
	if err := seedUser(conn, "usuario@facturas.com", "user", models.RoleUser); err != nil {
		return err
	}

	var client models.Client
	if err := conn.First(&client).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		if err := conn.Create(&models.Client{Nombre: "Cliente demo", Email: "cliente@demo.com"}).Error; err != nil {
			return fmt.Errorf("seeding client: %w", err)
		}
	} else if err != nil {
		return err
	}

	var product models.Product
	if err := conn.First(&product).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		demo := models.Product{
			Descripcion: "Producto demo",
			Precio:      decimal.RequireFromString("100.00"),
			Stock:       10,
		}
		if err := conn.Create(&demo).Error; err != nil {
			return fmt.Errorf("seeding product: %w", err)
		}
	} else if err != nil {
		return err
	}
	return nil
}

func seedUser(conn *gorm.DB, email, password, role string) error {
	var count int64
	if err := conn.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	u := models.User{Email: email, Role: role}
	if err := u.SetPassword(password); err != nil {
		return err
	}
	if err := conn.Create(&u).Error; err != nil {
		return fmt.Errorf("seeding user %s: %w", email, err)
	}
	return nil
}

// Reset deletes all business data but keeps the user accounts. Tables
// are cleared child-first so the foreign keys never block the wipe.
func Reset(conn *gorm.DB) error {
	for _, table := range []string{"detalle_factura", "facturas", "productos", "clientes"} {
		if err := conn.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/santiagosossaa1/facturas/internal/models"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.User{}, &models.Client{}, &models.Product{},
		&models.Invoice{}, &models.InvoiceLine{},
	))
	return conn
}

func seedClientAndProduct(t *testing.T, conn *gorm.DB, precio string, stock int) (models.Client, models.Product) {
	t.Helper()
	cliente := models.Client{Nombre: "Cliente demo"}
	require.NoError(t, conn.Create(&cliente).Error)
	producto := models.Product{
		Descripcion: "Producto demo",
		Precio:      decimal.RequireFromString(precio),
		Stock:       stock,
	}
	require.NoError(t, conn.Create(&producto).Error)
	return cliente, producto
}

func TestCreateComputesTotalsAndDecrementsStock(t *testing.T) {
	conn := setupServiceDB(t)
	cliente, producto := seedClientAndProduct(t, conn, "100.00", 10)
	svc := NewInvoiceService(conn)

	inv, err := svc.Create(context.Background(), cliente.ID, []LineInput{
		{ProductoID: producto.ID, Cantidad: 3},
	})
	require.NoError(t, err)
	require.Len(t, inv.Detalles, 1)
	require.True(t, inv.Detalles[0].Subtotal.Equal(decimal.RequireFromString("300.00")),
		"subtotal = %s", inv.Detalles[0].Subtotal)
	require.True(t, inv.Total.Equal(decimal.RequireFromString("300.00")),
		"total = %s", inv.Total)

	var fresh models.Product
	require.NoError(t, conn.First(&fresh, producto.ID).Error)
	require.Equal(t, 7, fresh.Stock)

	// Stored total matches the sum of stored line subtotals.
	var stored models.Invoice
	require.NoError(t, conn.Preload("Detalles").First(&stored, inv.ID).Error)
	sum := decimal.Zero
	for _, d := range stored.Detalles {
		sum = sum.Add(d.Subtotal)
	}
	require.True(t, stored.Total.Equal(sum))
}

func TestCreateAggregatesDuplicateProductRows(t *testing.T) {
	conn := setupServiceDB(t)
	cliente, producto := seedClientAndProduct(t, conn, "10.00", 20)
	svc := NewInvoiceService(conn)

	inv, err := svc.Create(context.Background(), cliente.ID, []LineInput{
		{ProductoID: producto.ID, Cantidad: 2},
		{ProductoID: producto.ID, Cantidad: 5},
	})
	require.NoError(t, err)
	require.Len(t, inv.Detalles, 1, "duplicate rows must merge into one line")
	require.Equal(t, 7, inv.Detalles[0].Cantidad)

	var fresh models.Product
	require.NoError(t, conn.First(&fresh, producto.ID).Error)
	require.Equal(t, 13, fresh.Stock)
}

func TestCreateRejectsAggregateExceedingStock(t *testing.T) {
	conn := setupServiceDB(t)
	cliente, producto := seedClientAndProduct(t, conn, "10.00", 10)
	svc := NewInvoiceService(conn)

	// 5 + 6 = 11 > 10: whole operation rejected, nothing persisted.
	_, err := svc.Create(context.Background(), cliente.ID, []LineInput{
		{ProductoID: producto.ID, Cantidad: 5},
		{ProductoID: producto.ID, Cantidad: 6},
	})
	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Faltantes, 1)
	require.Equal(t, 11, stockErr.Faltantes[0].Pedido)

	var fresh models.Product
	require.NoError(t, conn.First(&fresh, producto.ID).Error)
	require.Equal(t, 10, fresh.Stock, "stock must be untouched")

	var invoices, lines int64
	conn.Model(&models.Invoice{}).Count(&invoices)
	conn.Model(&models.InvoiceLine{}).Count(&lines)
	require.Zero(t, invoices)
	require.Zero(t, lines)
}

func TestCreateCollectsAllShortages(t *testing.T) {
	conn := setupServiceDB(t)
	cliente, p1 := seedClientAndProduct(t, conn, "5.00", 1)
	p2 := models.Product{Descripcion: "Otro", Precio: decimal.RequireFromString("2.50"), Stock: 2}
	require.NoError(t, conn.Create(&p2).Error)
	svc := NewInvoiceService(conn)

	_, err := svc.Create(context.Background(), cliente.ID, []LineInput{
		{ProductoID: p1.ID, Cantidad: 3},
		{ProductoID: p2.ID, Cantidad: 9},
	})
	var stockErr *StockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Faltantes, 2, "every shortage reported in one pass")
}

func TestCreateSnapshotsUnitPrice(t *testing.T) {
	conn := setupServiceDB(t)
	cliente, producto := seedClientAndProduct(t, conn, "50.00", 10)
	svc := NewInvoiceService(conn)

	inv, err := svc.Create(context.Background(), cliente.ID, []LineInput{
		{ProductoID: producto.ID, Cantidad: 1},
	})
	require.NoError(t, err)

	// A later price change must not affect the stored line.
	require.NoError(t, conn.Model(&models.Product{}).Where("id = ?", producto.ID).
		Update("precio", decimal.RequireFromString("99.00")).Error)

	var line models.InvoiceLine
	require.NoError(t, conn.Where("factura_id = ?", inv.ID).First(&line).Error)
	require.True(t, line.PrecioUnitario.Equal(decimal.RequireFromString("50.00")))
}

func TestCreateValidation(t *testing.T) {
	conn := setupServiceDB(t)
	cliente, producto := seedClientAndProduct(t, conn, "10.00", 5)
	svc := NewInvoiceService(conn)
	ctx := context.Background()

	_, err := svc.Create(ctx, 0, []LineInput{{ProductoID: producto.ID, Cantidad: 1}})
	require.ErrorIs(t, err, ErrNoClient)

	_, err = svc.Create(ctx, cliente.ID, nil)
	require.ErrorIs(t, err, ErrNoItems)

	_, err = svc.Create(ctx, cliente.ID, []LineInput{{ProductoID: producto.ID, Cantidad: 0}})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Create(ctx, cliente.ID, []LineInput{{ProductoID: 9999, Cantidad: 1}})
	require.ErrorIs(t, err, ErrUnknownProduct)

	_, err = svc.Create(ctx, 9999, []LineInput{{ProductoID: producto.ID, Cantidad: 1}})
	require.True(t, errors.Is(err, ErrUnknownClient))
}

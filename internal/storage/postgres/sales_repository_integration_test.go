package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

func strPtr(s string) *string { return &s }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedIntegrationData(t *testing.T, repo domain.SalesRepository) {
	t.Helper()

	err := repo.SeedDemoData(
		[]domain.NewCustomer{
			{FirstName: "Max", LastName: "Mustermann", City: strPtr("Karlsruhe")},
			{FirstName: "Emanuel", LastName: "Wambold", City: strPtr("Woerth am Rhein")},
			{FirstName: "Fremder", MiddleName: strPtr("Unbekannter"), LastName: "Kunde", City: strPtr("Geheimstadt")},
			{FirstName: "Keine", LastName: "Stadt"},
		},
		[]domain.NewOrder{
			{CustomerID: 1, Amount: money("299.99"), Status: domain.OrderStatusCancelled, OrderDate: "2026-01-26"},
			{CustomerID: 1, Amount: money("450.00"), Status: domain.OrderStatusArrived, OrderDate: "2026-01-25"},
			{CustomerID: 2, Amount: money("0.50"), Status: domain.OrderStatusShipped, OrderDate: "2025-12-31"},
			{CustomerID: 3, Amount: money("1250.75"), Status: domain.OrderStatusPending, OrderDate: "2028-01-20"},
			{CustomerID: 4, Amount: money("75.75"), Status: domain.OrderStatusArrived, OrderDate: "2026-01-30"},
		},
	)
	require.NoError(t, err)
}

func countRows(t *testing.T, store *Store, table string) int64 {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int64
	// Имя таблицы приходит только из тестового кода.
	require.NoError(t, store.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count))
	return count
}

func TestSalesRepository_PostgresAddOrder(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewSalesRepository(store)
	seedIntegrationData(t, repo)

	orderID, err := repo.AddOrder(domain.NewOrder{
		CustomerID: 1,
		Amount:     money("42.50"),
		Status:     domain.OrderStatusShipped,
		OrderDate:  "2026-02-14",
	})
	require.NoError(t, err)
	require.Equal(t, int64(6), orderID, "identity must continue after seed")

	// Статус и дата по умолчанию назначаются на стороне БД.
	defaultedID, err := repo.AddOrder(domain.NewOrder{CustomerID: 2, Amount: money("1.00")})
	require.NoError(t, err)
	require.Equal(t, int64(7), defaultedID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var (
		status    string
		orderDate time.Time
	)
	require.NoError(t, store.DB().QueryRowContext(ctx, `
		SELECT status::text, order_date FROM orders WHERE id = $1
	`, defaultedID).Scan(&status, &orderDate))
	require.Equal(t, string(domain.OrderStatusPending), status)
	require.Equal(t, time.Now().UTC().Format(domain.DateLayout), orderDate.Format(domain.DateLayout))
}

func TestSalesRepository_PostgresAddOrderErrors(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewSalesRepository(store)
	seedIntegrationData(t, repo)

	// Несуществующий клиент: нарушение внешнего ключа после отката.
	_, err := repo.AddOrder(domain.NewOrder{CustomerID: 99, Amount: money("5.00")})
	require.Error(t, err)
	require.True(t, domain.IsReference(err), "got %v", err)

	// Отрицательная сумма: CHECK-ограничение, число строк не меняется.
	before := countRows(t, store, "orders")
	_, err = repo.AddOrder(domain.NewOrder{CustomerID: 1, Amount: money("-1.00")})
	require.Error(t, err)
	require.True(t, domain.IsConstraint(err), "got %v", err)
	require.Equal(t, before, countRows(t, store, "orders"))

	// Невалидный статус: отказ enum на стороне БД.
	_, err = repo.AddOrder(domain.NewOrder{CustomerID: 1, Amount: money("5.00"), Status: "delivered"})
	require.Error(t, err)
	require.True(t, domain.IsConstraint(err), "got %v", err)

	// Кривая дата отклоняется валидатором до обращения к БД.
	_, err = repo.AddOrder(domain.NewOrder{CustomerID: 1, Amount: money("5.00"), OrderDate: "14.02.2026"})
	require.Error(t, err)
	require.True(t, domain.IsValidation(err), "got %v", err)
}

func TestSalesRepository_PostgresCreateCustomerWithFirstOrder(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewSalesRepository(store)
	seedIntegrationData(t, repo)

	customerID, orderID, err := repo.CreateCustomerWithFirstOrder(
		domain.NewCustomer{FirstName: "Neuer", LastName: "Kunde"},
		domain.FirstOrder{Amount: money("99.99")},
	)
	require.NoError(t, err)
	require.Equal(t, int64(5), customerID)
	require.Equal(t, int64(6), orderID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var linked int64
	require.NoError(t, store.DB().QueryRowContext(ctx, `
		SELECT customer_id FROM orders WHERE id = $1
	`, orderID).Scan(&linked))
	require.Equal(t, customerID, linked, "generated customer id must be threaded into the order insert")
}

func TestSalesRepository_PostgresCreateCustomerAtomicRollback(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewSalesRepository(store)
	seedIntegrationData(t, repo)

	customersBefore := countRows(t, store, "customers")
	ordersBefore := countRows(t, store, "orders")

	// Сбой второй вставки (CHECK по сумме) откатывает и вставку клиента.
	_, _, err := repo.CreateCustomerWithFirstOrder(
		domain.NewCustomer{FirstName: "Neuer", LastName: "Kunde"},
		domain.FirstOrder{Amount: money("-99.99")},
	)
	require.Error(t, err)
	require.True(t, domain.IsConstraint(err), "got %v", err)

	require.Equal(t, customersBefore, countRows(t, store, "customers"))
	require.Equal(t, ordersBefore, countRows(t, store, "orders"))
}

func TestSalesRepository_PostgresResetRestartsIdentity(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewSalesRepository(store)
	seedIntegrationData(t, repo)

	require.NoError(t, repo.Reset())
	require.Equal(t, int64(0), countRows(t, store, "customers"))
	require.Equal(t, int64(0), countRows(t, store, "orders"))

	customerID, orderID, err := repo.CreateCustomerWithFirstOrder(
		domain.NewCustomer{FirstName: "Erster", LastName: "Kunde"},
		domain.FirstOrder{Amount: money("1.00")},
	)
	require.NoError(t, err)
	require.Equal(t, int64(1), customerID, "sequence must restart after reset")
	require.Equal(t, int64(1), orderID)
}

func TestSalesRepository_PostgresCascadeDelete(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewSalesRepository(store)
	seedIntegrationData(t, repo)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := store.DB().ExecContext(ctx, `DELETE FROM customers WHERE id = 1`)
	require.NoError(t, err)

	// Заказы клиента 1 удалены каскадом, чужие остались.
	require.Equal(t, int64(3), countRows(t, store, "orders"))
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/sales/internal/domain"
	"github.com/vladislavdragonenkov/sales/internal/validation"
)

type reportEngine struct {
	db *sql.DB
}

// NewReportEngine создаёт PostgreSQL-реализацию ReportEngine.
// Все отчёты — чистые запросы к текущему состоянию, без побочных эффектов.
func NewReportEngine(store *Store) domain.ReportEngine {
	return &reportEngine{db: store.DB()}
}

// RevenueByCustomer читает customer_revenue_view: клиент без заказов попадает в
// отчёт с нулевым количеством и нулевой выручкой, а не выпадает из него.
func (e *reportEngine) RevenueByCustomer() ([]domain.CustomerRevenue, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := e.db.QueryContext(ctx, `
		SELECT customer_id, name, city, orders, revenue
		FROM customer_revenue_view
		ORDER BY revenue DESC, customer_id ASC
	`)
	if err != nil {
		return nil, translateStorageError("revenue by customer", err)
	}
	defer rows.Close()

	report := make([]domain.CustomerRevenue, 0)
	for rows.Next() {
		var row domain.CustomerRevenue
		if err := rows.Scan(&row.CustomerID, &row.Name, &row.City, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan customer revenue row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, translateStorageError("revenue by customer", err)
	}

	return report, nil
}

// RevenueByCity считает заказы и выручку города только по перечисленным статусам.
// Набор городов от фильтра не зависит: город, чьи заказы целиком вне фильтра,
// остаётся в отчёте с нулями — это обеспечивают LEFT JOIN и FILTER.
func (e *reportEngine) RevenueByCity(included []domain.OrderStatus) ([]domain.CityRevenue, error) {
	if len(included) == 0 {
		return nil, &domain.ValidationError{Param: "included_statuses", Expected: "non-empty status set", Value: included}
	}
	args := make([]any, 0, len(included))
	placeholders := make([]string, 0, len(included))
	for i, s := range included {
		if !s.Valid() {
			return nil, &domain.ValidationError{Param: "included_statuses", Expected: "order status", Value: s}
		}
		args = append(args, string(s))
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	inList := strings.Join(placeholders, ", ")

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT
			COALESCE(c.city, '%[1]s') AS city,
			COUNT(o.id) FILTER (WHERE o.status::text IN (%[2]s)) AS city_orders,
			COALESCE(SUM(o.amount) FILTER (WHERE o.status::text IN (%[2]s)), 0) AS city_revenue
		FROM customers c
		LEFT JOIN orders o ON o.customer_id = c.id
		GROUP BY COALESCE(c.city, '%[1]s')
		ORDER BY city_revenue DESC, city ASC
	`, domain.UnknownCity, inList)

	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateStorageError("revenue by city", err)
	}
	defer rows.Close()

	report := make([]domain.CityRevenue, 0)
	for rows.Next() {
		var row domain.CityRevenue
		if err := rows.Scan(&row.City, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan city revenue row: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, translateStorageError("revenue by city", err)
	}

	return report, nil
}

// RevenueByStatus возвращает ровно по одной строке на каждый статус перечисления.
// Данные дают только встречающиеся статусы, поэтому остальные дозаполняются
// нулями по AllOrderStatuses — отчёт никогда не сжимается до непустых корзин.
func (e *reportEngine) RevenueByStatus() ([]domain.StatusRevenue, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := e.db.QueryContext(ctx, `
		SELECT status::text, COUNT(id), COALESCE(SUM(amount), 0)
		FROM orders
		GROUP BY status
	`)
	if err != nil {
		return nil, translateStorageError("revenue by status", err)
	}
	defer rows.Close()

	present := make(map[domain.OrderStatus]domain.StatusRevenue)
	for rows.Next() {
		var (
			status string
			row    domain.StatusRevenue
		)
		if err := rows.Scan(&status, &row.Orders, &row.Revenue); err != nil {
			return nil, fmt.Errorf("scan status revenue row: %w", err)
		}
		row.Status = domain.OrderStatus(status)
		present[row.Status] = row
	}
	if err := rows.Err(); err != nil {
		return nil, translateStorageError("revenue by status", err)
	}

	report := make([]domain.StatusRevenue, 0, len(domain.AllOrderStatuses()))
	for _, status := range domain.AllOrderStatuses() {
		row, ok := present[status]
		if !ok {
			row = domain.StatusRevenue{Status: status, Orders: 0, Revenue: decimal.Zero}
		}
		report = append(report, row)
	}

	return report, nil
}

// RevenueBetween суммирует заказы с датой в диапазоне [startDate, endDate]
// включительно, независимо от статуса.
func (e *reportEngine) RevenueBetween(startDate, endDate string) (decimal.Decimal, error) {
	if err := validation.DateRange(startDate, endDate); err != nil {
		return decimal.Zero, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var revenue decimal.Decimal
	err := e.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM orders
		WHERE order_date BETWEEN $1::date AND $2::date
	`, startDate, endDate).Scan(&revenue)
	if err != nil {
		return decimal.Zero, translateStorageError("revenue between dates", err)
	}

	return revenue, nil
}

var _ domain.ReportEngine = (*reportEngine)(nil)

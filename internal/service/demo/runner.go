// Пакет demo связывает репозиторий и движок отчётов в единый сценарий:
// заливка демонстрационных данных, две операции записи и четыре отчёта.
package demo

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sales/internal/domain"
	"github.com/vladislavdragonenkov/sales/internal/metrics"
)

const (
	demoAddOrderCustomerID = 1
	demoAddOrderAmount     = "42.50"
	demoFirstOrderAmount   = "99.99"

	demoRangeStart = "2025-12-01"
	demoRangeEnd   = "2026-01-25"
)

// Runner выполняет демонстрационный сценарий поверх любой пары реализаций
// SalesRepository/ReportEngine — PostgreSQL или in-memory.
type Runner struct {
	repo    domain.SalesRepository
	reports domain.ReportEngine
	metrics *metrics.SalesMetrics
	logger  *log.Entry
	out     io.Writer
}

// NewRunner создаёт сценарий. Каждому запуску присваивается собственный run_id
// для корреляции записей лога.
func NewRunner(repo domain.SalesRepository, reports domain.ReportEngine, m *metrics.SalesMetrics, logger *log.Entry, out io.Writer) *Runner {
	if logger == nil {
		logger = log.New().WithField("component", "demo")
	}
	return &Runner{
		repo:    repo,
		reports: reports,
		metrics: m,
		logger:  logger.WithField("run_id", uuid.NewString()),
		out:     out,
	}
}

// Run прогоняет сценарий целиком: seed, записи, отчёты.
func (r *Runner) Run() error {
	customers := demoCustomers()
	orders := demoOrders()

	if err := r.write("seed_demo_data", func() error {
		return r.repo.SeedDemoData(customers, orders)
	}); err != nil {
		return err
	}
	r.logger.WithFields(log.Fields{
		"customers": len(customers),
		"orders":    len(orders),
	}).Info("демоданные залиты заново")
	fmt.Fprintf(r.out, "Demo data has been reset for (%d customers, %d orders)\n\n", len(customers), len(orders))

	var newOrderID int64
	if err := r.write("add_order", func() error {
		var err error
		newOrderID, err = r.repo.AddOrder(domain.NewOrder{
			CustomerID: demoAddOrderCustomerID,
			Amount:     decimal.RequireFromString(demoAddOrderAmount),
		})
		return err
	}); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "NEW ORDER: ID %d for customer %d\n", newOrderID, demoAddOrderCustomerID)

	var customerID, orderID int64
	if err := r.write("create_customer_with_first_order", func() error {
		var err error
		customerID, orderID, err = r.repo.CreateCustomerWithFirstOrder(
			domain.NewCustomer{FirstName: "Neuer", LastName: "Kunde"},
			domain.FirstOrder{Amount: decimal.RequireFromString(demoFirstOrderAmount)},
		)
		return err
	}); err != nil {
		return err
	}
	fmt.Fprintf(r.out, "NEW ORDER: ID %d for the newly created customer with ID %d\n", orderID, customerID)

	return r.printReports()
}

func (r *Runner) printReports() error {
	started := time.Now()
	customerReport, err := r.reports.RevenueByCustomer()
	if err != nil {
		return r.reportFailed("revenue_by_customer", err)
	}
	r.metrics.ReportObserved("revenue_by_customer", time.Since(started))
	fmt.Fprintln(r.out, "\nCUSTOMER SALES REPORT:")
	for _, row := range customerReport {
		fmt.Fprintln(r.out, formatCustomerRevenue(row))
	}

	started = time.Now()
	cityReport, err := r.reports.RevenueByCity([]domain.OrderStatus{
		domain.OrderStatusShipped,
		domain.OrderStatusArrived,
	})
	if err != nil {
		return r.reportFailed("revenue_by_city", err)
	}
	r.metrics.ReportObserved("revenue_by_city", time.Since(started))
	fmt.Fprintln(r.out, "\nCITY SALES REPORT - only 'shipped' and 'arrived' orders included:")
	for _, row := range cityReport {
		fmt.Fprintln(r.out, formatCityRevenue(row))
	}

	started = time.Now()
	statusReport, err := r.reports.RevenueByStatus()
	if err != nil {
		return r.reportFailed("revenue_by_status", err)
	}
	r.metrics.ReportObserved("revenue_by_status", time.Since(started))
	fmt.Fprintln(r.out, "\nSTATUS SALES REPORT:")
	for _, row := range statusReport {
		fmt.Fprintln(r.out, formatStatusRevenue(row))
	}

	started = time.Now()
	rangeRevenue, err := r.reports.RevenueBetween(demoRangeStart, demoRangeEnd)
	if err != nil {
		return r.reportFailed("revenue_between", err)
	}
	r.metrics.ReportObserved("revenue_between", time.Since(started))
	fmt.Fprintf(r.out, "\nREVENUE BETWEEN %s AND %s:\n", demoRangeStart, demoRangeEnd)
	fmt.Fprintf(r.out, "   Total revenue: %s\n", formatMoney(rangeRevenue))

	r.logger.Info("демонстрационный сценарий завершён")
	return nil
}

// write выполняет операцию записи с учётом метрик и логированием ошибки.
func (r *Runner) write(operation string, fn func() error) error {
	r.metrics.WriteStarted(operation)
	if err := fn(); err != nil {
		r.metrics.WriteFailed(operation)
		r.logger.WithError(err).WithField("operation", operation).Error("операция записи не выполнена")
		return err
	}
	return nil
}

func (r *Runner) reportFailed(name string, err error) error {
	r.logger.WithError(err).WithField("report", name).Error("отчёт не построен")
	return err
}

// Пакет memory — in-memory двойник PostgreSQL-хранилища для локальной
// разработки и тестов. Семантика повторяет схему: внешний ключ, CHECK по сумме,
// закрытый enum статусов, сброс последовательностей при очистке и NULL-safe
// агрегация в отчётах.
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/sales/internal/domain"
	"github.com/vladislavdragonenkov/sales/internal/validation"
)

// SalesStore реализует domain.SalesRepository и domain.ReportEngine в памяти.
type SalesStore struct {
	mu             sync.RWMutex
	customers      []domain.Customer
	orders         []domain.Order
	nextCustomerID int64
	nextOrderID    int64

	// now подменяется в тестах; по умолчанию текущая дата для order_date.
	now func() time.Time
}

// NewSalesStore возвращает пустое in-memory хранилище.
func NewSalesStore() *SalesStore {
	return &SalesStore{
		nextCustomerID: 1,
		nextOrderID:    1,
		now:            time.Now,
	}
}

// SetClock задаёт источник текущей даты (для детерминированных тестов).
func (s *SalesStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddOrder вставляет заказ существующего клиента. Проверки повторяют
// ограничения схемы и возвращают те же типы ошибок, что и PostgreSQL-реализация.
func (s *SalesStore) AddOrder(order domain.NewOrder) (int64, error) {
	if err := validateNewOrder(order); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prepared, err := s.prepareOrder("add order", order)
	if err != nil {
		return 0, err
	}

	s.orders = append(s.orders, prepared)
	s.nextOrderID++
	return prepared.ID, nil
}

// CreateCustomerWithFirstOrder атомарно создаёт клиента и его первый заказ:
// если заказ отклонён, клиент не сохраняется.
func (s *SalesStore) CreateCustomerWithFirstOrder(customer domain.NewCustomer, order domain.FirstOrder) (int64, int64, error) {
	if err := validateNewCustomer(customer); err != nil {
		return 0, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := domain.Customer{
		ID:         s.nextCustomerID,
		FirstName:  customer.FirstName,
		MiddleName: copyOptional(customer.MiddleName),
		LastName:   customer.LastName,
		City:       copyOptional(customer.City),
		CreatedAt:  s.now().UTC(),
	}
	s.customers = append(s.customers, created)
	s.nextCustomerID++

	prepared, err := s.prepareOrder("create customer with first order", domain.NewOrder{
		CustomerID: created.ID,
		Amount:     order.Amount,
		Status:     order.Status,
		OrderDate:  order.OrderDate,
	})
	if err != nil {
		// Откат вставки клиента: обе строки либо существуют, либо нет.
		s.customers = s.customers[:len(s.customers)-1]
		s.nextCustomerID--
		return 0, 0, err
	}

	s.orders = append(s.orders, prepared)
	s.nextOrderID++
	return created.ID, prepared.ID, nil
}

// SeedDemoData сбрасывает хранилище и заливает демонстрационные данные.
// Любая отклонённая строка оставляет хранилище в прежнем состоянии.
func (s *SalesStore) SeedDemoData(customers []domain.NewCustomer, orders []domain.NewOrder) error {
	for i, c := range customers {
		if err := validateNewCustomer(c); err != nil {
			return fmt.Errorf("seed customer %d: %w", i+1, err)
		}
	}
	for i, o := range orders {
		if err := validateNewOrder(o); err != nil {
			return fmt.Errorf("seed order %d: %w", i+1, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &SalesStore{nextCustomerID: 1, nextOrderID: 1, now: s.now}
	for _, c := range customers {
		staged.customers = append(staged.customers, domain.Customer{
			ID:         staged.nextCustomerID,
			FirstName:  c.FirstName,
			MiddleName: copyOptional(c.MiddleName),
			LastName:   c.LastName,
			City:       copyOptional(c.City),
			CreatedAt:  s.now().UTC(),
		})
		staged.nextCustomerID++
	}
	for _, o := range orders {
		prepared, err := staged.prepareOrder("seed demo data", o)
		if err != nil {
			return err
		}
		staged.orders = append(staged.orders, prepared)
		staged.nextOrderID++
	}

	s.customers = staged.customers
	s.orders = staged.orders
	s.nextCustomerID = staged.nextCustomerID
	s.nextOrderID = staged.nextOrderID
	return nil
}

// Reset очищает хранилище и возвращает последовательности к единице.
func (s *SalesStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customers = nil
	s.orders = nil
	s.nextCustomerID = 1
	s.nextOrderID = 1
	return nil
}

// prepareOrder применяет значения по умолчанию и проверяет ограничения схемы.
// Вызывается под мьютексом записи; счётчики не двигает.
func (s *SalesStore) prepareOrder(op string, order domain.NewOrder) (domain.Order, error) {
	if !s.customerExists(order.CustomerID) {
		return domain.Order{}, &domain.ReferenceError{
			Op:         op,
			Constraint: "orders_customer_id_fkey",
			Detail:     fmt.Sprintf("customer %d does not exist", order.CustomerID),
		}
	}
	if order.Amount.IsNegative() {
		return domain.Order{}, &domain.ConstraintError{
			Op:         op,
			Constraint: "orders_amount_check",
			Detail:     fmt.Sprintf("amount %s violates amount >= 0", order.Amount),
		}
	}

	status := order.Status
	if status == "" {
		status = domain.OrderStatusPending
	}
	if !status.Valid() {
		return domain.Order{}, &domain.ConstraintError{
			Op:         op,
			Constraint: "order_status",
			Detail:     fmt.Sprintf("invalid input value for order_status: %q", status),
		}
	}

	orderDate := truncateToDate(s.now().UTC())
	if order.OrderDate != "" {
		parsed, err := validation.ParseDate("order_date", order.OrderDate)
		if err != nil {
			return domain.Order{}, err
		}
		orderDate = parsed
	}

	return domain.Order{
		ID:         s.nextOrderID,
		CustomerID: order.CustomerID,
		Amount:     order.Amount,
		Status:     status,
		OrderDate:  orderDate,
	}, nil
}

func (s *SalesStore) customerExists(id int64) bool {
	for _, c := range s.customers {
		if c.ID == id {
			return true
		}
	}
	return false
}

// RevenueByCustomer повторяет customer_revenue_view: клиент без заказов
// присутствует с нулями; сортировка по убыванию выручки, затем по id.
func (s *SalesStore) RevenueByCustomer() ([]domain.CustomerRevenue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := make([]domain.CustomerRevenue, 0, len(s.customers))
	for _, c := range s.customers {
		row := domain.CustomerRevenue{
			CustomerID: c.ID,
			Name:       c.DisplayName(),
			City:       c.DisplayCity(),
			Revenue:    decimal.Zero,
		}
		for _, o := range s.orders {
			if o.CustomerID != c.ID {
				continue
			}
			row.Orders++
			row.Revenue = row.Revenue.Add(o.Amount)
		}
		report = append(report, row)
	}

	sort.SliceStable(report, func(i, j int) bool {
		if cmp := report[i].Revenue.Cmp(report[j].Revenue); cmp != 0 {
			return cmp > 0
		}
		return report[i].CustomerID < report[j].CustomerID
	})
	return report, nil
}

// RevenueByCity учитывает только заказы в перечисленных статусах, но сами
// города берёт из клиентов: город без подходящих заказов остаётся с нулями.
func (s *SalesStore) RevenueByCity(included []domain.OrderStatus) ([]domain.CityRevenue, error) {
	if len(included) == 0 {
		return nil, &domain.ValidationError{Param: "included_statuses", Expected: "non-empty status set", Value: included}
	}
	filter := make(map[domain.OrderStatus]bool, len(included))
	for _, status := range included {
		if !status.Valid() {
			return nil, &domain.ValidationError{Param: "included_statuses", Expected: "order status", Value: status}
		}
		filter[status] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	byCity := make(map[string]*domain.CityRevenue)
	for _, c := range s.customers {
		city := c.DisplayCity()
		if _, ok := byCity[city]; !ok {
			byCity[city] = &domain.CityRevenue{City: city, Revenue: decimal.Zero}
		}
		row := byCity[city]
		for _, o := range s.orders {
			if o.CustomerID != c.ID || !filter[o.Status] {
				continue
			}
			row.Orders++
			row.Revenue = row.Revenue.Add(o.Amount)
		}
	}

	report := make([]domain.CityRevenue, 0, len(byCity))
	for _, row := range byCity {
		report = append(report, *row)
	}
	sort.SliceStable(report, func(i, j int) bool {
		if cmp := report[i].Revenue.Cmp(report[j].Revenue); cmp != 0 {
			return cmp > 0
		}
		return report[i].City < report[j].City
	})
	return report, nil
}

// RevenueByStatus всегда возвращает по строке на каждый статус перечисления.
func (s *SalesStore) RevenueByStatus() ([]domain.StatusRevenue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := make([]domain.StatusRevenue, 0, len(domain.AllOrderStatuses()))
	for _, status := range domain.AllOrderStatuses() {
		row := domain.StatusRevenue{Status: status, Revenue: decimal.Zero}
		for _, o := range s.orders {
			if o.Status != status {
				continue
			}
			row.Orders++
			row.Revenue = row.Revenue.Add(o.Amount)
		}
		report = append(report, row)
	}
	return report, nil
}

// RevenueBetween суммирует заказы с датой в [startDate, endDate] включительно.
func (s *SalesStore) RevenueBetween(startDate, endDate string) (decimal.Decimal, error) {
	if err := validation.DateRange(startDate, endDate); err != nil {
		return decimal.Zero, err
	}
	start, _ := validation.ParseDate("start_date", startDate)
	end, _ := validation.ParseDate("end_date", endDate)

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, o := range s.orders {
		day := truncateToDate(o.OrderDate)
		if day.Before(start) || day.After(end) {
			continue
		}
		total = total.Add(o.Amount)
	}
	return total, nil
}

func validateNewOrder(o domain.NewOrder) error {
	if err := validation.Param("customer_id", o.CustomerID, validation.KindInteger, false); err != nil {
		return err
	}
	if err := validation.Param("amount", o.Amount, validation.KindDecimal, false); err != nil {
		return err
	}
	if o.OrderDate != "" {
		if err := validation.Param("order_date", o.OrderDate, validation.KindDate, true); err != nil {
			return err
		}
	}
	return nil
}

func validateNewCustomer(c domain.NewCustomer) error {
	if err := validation.Param("first_name", c.FirstName, validation.KindText, false); err != nil {
		return err
	}
	if err := validation.Param("last_name", c.LastName, validation.KindText, false); err != nil {
		return err
	}
	if err := validation.Param("middle_name", c.MiddleName, validation.KindText, true); err != nil {
		return err
	}
	return validation.Param("city", c.City, validation.KindText, true)
}

func copyOptional(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var (
	_ domain.SalesRepository = (*SalesStore)(nil)
	_ domain.ReportEngine    = (*SalesStore)(nil)
)

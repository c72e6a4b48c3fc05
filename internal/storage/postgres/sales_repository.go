package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/sales/internal/domain"
	"github.com/vladislavdragonenkov/sales/internal/validation"
)

const (
	opTimeout = 5 * time.Second

	// Пустой статус и пустая дата уходят в БД как NULL и подменяются
	// значениями по умолчанию прямо в операторе.
	insertOrderSQL = `
		INSERT INTO orders (customer_id, amount, status, order_date)
		VALUES ($1, $2, COALESCE($3::order_status, 'pending'), COALESCE($4::date, CURRENT_DATE))
		RETURNING id
	`
	insertCustomerSQL = `
		INSERT INTO customers (first_name, middle_name, last_name, city)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	truncateSQL = `TRUNCATE TABLE orders, customers RESTART IDENTITY CASCADE`
)

type salesRepository struct {
	db *sql.DB
}

// NewSalesRepository создаёт PostgreSQL-реализацию SalesRepository.
func NewSalesRepository(store *Store) domain.SalesRepository {
	return &salesRepository{db: store.DB()}
}

// AddOrder вставляет один заказ в рамках транзакции и возвращает его id.
// Существование клиента проверяет внешний ключ: нарушение вернётся как
// ReferenceError уже после отката.
func (r *salesRepository) AddOrder(order domain.NewOrder) (int64, error) {
	if err := validateNewOrder(order); err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, translateStorageError("add order", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var orderID int64
	err = tx.QueryRowContext(ctx, insertOrderSQL,
		order.CustomerID, order.Amount, nullableStatus(order.Status), nullableDate(order.OrderDate),
	).Scan(&orderID)
	if err != nil {
		return 0, translateStorageError("add order", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, translateStorageError("add order", err)
	}

	return orderID, nil
}

// CreateCustomerWithFirstOrder атомарно создаёт клиента и его первый заказ.
// Сгенерированный первой вставкой id клиента явно протягивается в параметры
// второй вставки внутри той же транзакции: после коммита существуют обе строки,
// после отката — ни одной. Никакой читатель не увидит клиента без заказа.
func (r *salesRepository) CreateCustomerWithFirstOrder(customer domain.NewCustomer, order domain.FirstOrder) (customerID, orderID int64, err error) {
	if err = validateNewCustomer(customer); err != nil {
		return 0, 0, err
	}
	if err = validateFirstOrder(order); err != nil {
		return 0, 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, translateStorageError("create customer with first order", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, insertCustomerSQL,
		customer.FirstName, customer.MiddleName, customer.LastName, customer.City,
	).Scan(&customerID)
	if err != nil {
		return 0, 0, translateStorageError("create customer with first order", err)
	}

	err = tx.QueryRowContext(ctx, insertOrderSQL,
		customerID, order.Amount, nullableStatus(order.Status), nullableDate(order.OrderDate),
	).Scan(&orderID)
	if err != nil {
		return 0, 0, translateStorageError("create customer with first order", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, translateStorageError("create customer with first order", err)
	}

	return customerID, orderID, nil
}

// SeedDemoData очищает таблицы со сбросом последовательностей и заливает
// демонстрационные строки одной транзакцией. CustomerID в заказах указывает на
// позицию клиента (с единицы), которая после RESTART IDENTITY совпадает с id.
func (r *salesRepository) SeedDemoData(customers []domain.NewCustomer, orders []domain.NewOrder) (err error) {
	for i, c := range customers {
		if err = validateNewCustomer(c); err != nil {
			return fmt.Errorf("seed customer %d: %w", i+1, err)
		}
	}
	for i, o := range orders {
		if err = validateNewOrder(o); err != nil {
			return fmt.Errorf("seed order %d: %w", i+1, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return translateStorageError("seed demo data", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, truncateSQL); err != nil {
		return translateStorageError("seed demo data", err)
	}

	for _, c := range customers {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO customers (first_name, middle_name, last_name, city)
			VALUES ($1, $2, $3, $4)
		`, c.FirstName, c.MiddleName, c.LastName, c.City); err != nil {
			return translateStorageError("seed demo data", err)
		}
	}

	for _, o := range orders {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO orders (customer_id, amount, status, order_date)
			VALUES ($1, $2, COALESCE($3::order_status, 'pending'), COALESCE($4::date, CURRENT_DATE))
		`, o.CustomerID, o.Amount, nullableStatus(o.Status), nullableDate(o.OrderDate)); err != nil {
			return translateStorageError("seed demo data", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return translateStorageError("seed demo data", err)
	}

	return nil
}

// Reset очищает обе таблицы, сбрасывая последовательности идентификаторов.
// Следующий вставленный клиент снова получит id=1.
func (r *salesRepository) Reset() (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return translateStorageError("reset", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, truncateSQL); err != nil {
		return translateStorageError("reset", err)
	}

	if err = tx.Commit(); err != nil {
		return translateStorageError("reset", err)
	}

	return nil
}

func validateNewOrder(o domain.NewOrder) error {
	if err := validation.Param("customer_id", o.CustomerID, validation.KindInteger, false); err != nil {
		return err
	}
	if err := validation.Param("amount", o.Amount, validation.KindDecimal, false); err != nil {
		return err
	}
	if o.Status != "" {
		if err := validation.Param("status", o.Status, validation.KindStatus, true); err != nil {
			return err
		}
	}
	if o.OrderDate != "" {
		if err := validation.Param("order_date", o.OrderDate, validation.KindDate, true); err != nil {
			return err
		}
	}
	return nil
}

func validateFirstOrder(o domain.FirstOrder) error {
	return validateNewOrder(domain.NewOrder{
		// Идентификатор клиента появится только внутри транзакции.
		CustomerID: 0,
		Amount:     o.Amount,
		Status:     o.Status,
		OrderDate:  o.OrderDate,
	})
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

// nullableStatus превращает пустой статус в NULL, чтобы сработало значение по умолчанию.
func nullableStatus(s domain.OrderStatus) any {
	if s == "" {
		return nil
	}
	return string(s)
}

// nullableDate превращает пустую дату в NULL (CURRENT_DATE на стороне БД).
func nullableDate(d string) any {
	if d == "" {
		return nil
	}
	return d
}

var _ domain.SalesRepository = (*salesRepository)(nil)

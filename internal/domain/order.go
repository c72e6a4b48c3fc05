package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, но ещё не отгружен (значение по умолчанию в БД).
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusArrived — заказ доставлен клиенту.
	OrderStatusArrived OrderStatus = "arrived"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// AllOrderStatuses возвращает полный закрытый перечень статусов в порядке объявления.
// Отчёт по статусам обязан перечислять их все, а не только встречающиеся в данных.
func AllOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusShipped,
		OrderStatusArrived,
		OrderStatusCancelled,
	}
}

// Valid сообщает, входит ли значение в закрытый перечень статусов.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusArrived, OrderStatusCancelled:
		return true
	}
	return false
}

// Order — строка таблицы orders. Заказ всегда принадлежит ровно одному клиенту;
// при удалении клиента его заказы удаляются каскадно на уровне схемы.
type Order struct {
	ID         int64
	CustomerID int64
	// Amount — сумма заказа с фиксированной точностью; инвариант amount >= 0
	// обеспечивается CHECK-ограничением в БД.
	Amount    decimal.Decimal
	Status    OrderStatus
	OrderDate time.Time
}

// DateLayout — единственный принимаемый текстовый формат календарной даты.
const DateLayout = "2006-01-02"

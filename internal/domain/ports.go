package domain

import "github.com/shopspring/decimal"

// NewCustomer — входные параметры вставки клиента. Отчество и город опциональны.
type NewCustomer struct {
	FirstName  string
	MiddleName *string
	LastName   string
	City       *string
}

// NewOrder — входные параметры вставки заказа.
// Пустой Status и пустая OrderDate означают значения по умолчанию на стороне БД
// ('pending' и текущая дата соответственно).
type NewOrder struct {
	CustomerID int64
	Amount     decimal.Decimal
	Status     OrderStatus
	// OrderDate — календарная дата в формате DateLayout ("YYYY-MM-DD").
	OrderDate string
}

// FirstOrder — параметры первого заказа при атомарном создании клиента.
// Идентификатор клиента подставляется репозиторием внутри транзакции.
type FirstOrder struct {
	Amount    decimal.Decimal
	Status    OrderStatus
	OrderDate string
}

// SalesRepository — транзакционные операции записи.
// Каждая операция выполняется в одной all-or-nothing транзакции: любая ошибка
// приводит к полному откату до того, как она будет возвращена вызывающему.
type SalesRepository interface {
	// AddOrder вставляет заказ существующего клиента и возвращает его id.
	// Существование клиента обеспечивается внешним ключом, а не предварительной
	// проверкой: нарушение транслируется в ReferenceError.
	AddOrder(order NewOrder) (int64, error)

	// CreateCustomerWithFirstOrder атомарно создаёт клиента и его первый заказ.
	// Сгенерированный id клиента из первой вставки передаётся во вторую в рамках
	// той же транзакции; после коммита существуют обе строки, после отката — ни одной.
	CreateCustomerWithFirstOrder(customer NewCustomer, order FirstOrder) (customerID, orderID int64, err error)

	// SeedDemoData очищает обе таблицы со сбросом последовательностей и заливает
	// демонстрационные данные одной транзакцией. CustomerID в заказах ссылается
	// на позицию клиента (с единицы) после сброса идентификаторов.
	SeedDemoData(customers []NewCustomer, orders []NewOrder) error

	// Reset очищает обе таблицы, сбрасывая последовательности. Необратимо.
	Reset() error
}

// ReportEngine — читающие агрегатные отчёты без видимых побочных эффектов.
type ReportEngine interface {
	// RevenueByCustomer возвращает выручку каждого клиента, отсортированную по
	// убыванию выручки; при равенстве — по возрастанию id клиента.
	RevenueByCustomer() ([]CustomerRevenue, error)

	// RevenueByCity возвращает выручку каждого города по заказам в перечисленных
	// статусах. Город с заказами только вне фильтра остаётся в отчёте с нулями.
	RevenueByCity(included []OrderStatus) ([]CityRevenue, error)

	// RevenueByStatus возвращает по строке на каждый статус из AllOrderStatuses,
	// включая статусы без заказов.
	RevenueByStatus() ([]StatusRevenue, error)

	// RevenueBetween возвращает суммарную выручку заказов с датой в диапазоне
	// [start, end] включительно, независимо от статуса.
	RevenueBetween(startDate, endDate string) (decimal.Decimal, error)
}

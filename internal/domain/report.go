package domain

import "github.com/shopspring/decimal"

// CustomerRevenue — строка отчёта по выручке клиента из customer_revenue_view.
// Клиент без заказов присутствует в отчёте с нулевыми значениями.
type CustomerRevenue struct {
	CustomerID int64
	Name       string
	City       string
	Orders     int64
	Revenue    decimal.Decimal
}

// CityRevenue — строка отчёта по выручке города. City уже отображаемое значение:
// NULL в данных здесь заменён на UnknownCity.
type CityRevenue struct {
	City    string
	Orders  int64
	Revenue decimal.Decimal
}

// StatusRevenue — строка отчёта по статусам. Отчёт всегда содержит по одной
// строке на каждый статус из AllOrderStatuses.
type StatusRevenue struct {
	Status  OrderStatus
	Orders  int64
	Revenue decimal.Decimal
}

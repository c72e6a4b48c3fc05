package demo

import (
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

// Демонстрационные данные детерминированы: фиксированные суммы вместо случайных,
// чтобы повторные запуски давали одинаковые отчёты.
func demoCustomers() []domain.NewCustomer {
	return []domain.NewCustomer{
		{FirstName: "Max", LastName: "Mustermann", City: ptr("Karlsruhe")},
		{FirstName: "Emanuel", LastName: "Wambold", City: ptr("Woerth am Rhein")},
		{FirstName: "Fremder", MiddleName: ptr("Unbekannter"), LastName: "Kunde", City: ptr("Geheimstadt")},
		// Клиент без города: в отчётах появится как Unbekannt.
		{FirstName: "Keine", LastName: "Stadt"},
	}
}

func demoOrders() []domain.NewOrder {
	return []domain.NewOrder{
		{CustomerID: 1, Amount: decimal.RequireFromString("299.99"), Status: domain.OrderStatusCancelled, OrderDate: "2026-01-26"},
		{CustomerID: 1, Amount: decimal.RequireFromString("450.00"), Status: domain.OrderStatusArrived, OrderDate: "2026-01-25"},
		{CustomerID: 2, Amount: decimal.RequireFromString("0.50"), Status: domain.OrderStatusShipped, OrderDate: "2025-12-31"},
		{CustomerID: 3, Amount: decimal.RequireFromString("1250.75"), Status: domain.OrderStatusPending, OrderDate: "2028-01-20"},
		{CustomerID: 4, Amount: decimal.RequireFromString("75.75"), Status: domain.OrderStatusArrived, OrderDate: "2026-01-30"},
	}
}

func ptr(s string) *string { return &s }

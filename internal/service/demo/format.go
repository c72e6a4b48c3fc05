package demo

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

// Форматирование строк отчётов для вывода в терминал. Ядро возвращает сырые
// записи; валютный символ и выравнивание — забота этого слоя.

func formatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "€"
}

func formatCustomerRevenue(row domain.CustomerRevenue) string {
	return fmt.Sprintf("   %s (%s): %d order(s), %s", row.Name, row.City, row.Orders, formatMoney(row.Revenue))
}

func formatCityRevenue(row domain.CityRevenue) string {
	return fmt.Sprintf("   %s: %d order(s), %s", row.City, row.Orders, formatMoney(row.Revenue))
}

func formatStatusRevenue(row domain.StatusRevenue) string {
	return fmt.Sprintf("   %s: %d order(s), %s", row.Status, row.Orders, formatMoney(row.Revenue))
}

package domain

import (
	"strings"
	"time"
)

// UnknownCity — подставное значение для отображения, когда город клиента не задан.
// Это именно отображаемый маркер, а не пустая строка и не NULL.
const UnknownCity = "Unbekannt"

// Customer — строка таблицы customers. ID назначается базой монотонно и не меняется.
type Customer struct {
	ID         int64
	FirstName  string
	MiddleName *string
	LastName   string
	City       *string
	CreatedAt  time.Time
}

// DisplayName собирает полное имя, пропуская отсутствующее отчество.
func (c Customer) DisplayName() string {
	parts := make([]string, 0, 3)
	if c.FirstName != "" {
		parts = append(parts, c.FirstName)
	}
	if c.MiddleName != nil && *c.MiddleName != "" {
		parts = append(parts, *c.MiddleName)
	}
	if c.LastName != "" {
		parts = append(parts, c.LastName)
	}
	return strings.Join(parts, " ")
}

// DisplayCity возвращает город или UnknownCity, если город не задан.
func (c Customer) DisplayCity() string {
	if c.City == nil || *c.City == "" {
		return UnknownCity
	}
	return *c.City
}

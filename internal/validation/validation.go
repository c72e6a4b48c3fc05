// Пакет validation проверяет параметры записи до того, как они уйдут в хранилище.
// Проверки чистые и без побочных эффектов; частично применённого состояния после
// ошибки валидации быть не может, потому что ни один SQL-оператор ещё не выполнен.
package validation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

// Kind — семантический тип параметра.
type Kind string

const (
	// KindInteger — целочисленный идентификатор.
	KindInteger Kind = "integer"
	// KindDecimal — денежная сумма с фиксированной точностью.
	KindDecimal Kind = "decimal"
	// KindText — произвольный текст.
	KindText Kind = "text"
	// KindDate — календарная дата в формате domain.DateLayout.
	KindDate Kind = "date"
	// KindStatus — статус заказа. Проверяется только тип значения; членство в
	// перечислении обеспечивает enum на стороне БД (нарушение — ConstraintError).
	KindStatus Kind = "order status"
)

// Param возвращает nil, если значение соответствует ожидаемому семантическому
// типу, и *domain.ValidationError в противном случае. nullable разрешает nil
// и nil-указатели.
func Param(name string, value any, kind Kind, nullable bool) error {
	if isNull(value) {
		if nullable {
			return nil
		}
		return &domain.ValidationError{Param: name, Expected: string(kind), Value: value}
	}

	switch kind {
	case KindInteger:
		switch value.(type) {
		case int, int32, int64:
			return nil
		}
	case KindDecimal:
		if _, ok := value.(decimal.Decimal); ok {
			return nil
		}
	case KindText:
		switch v := value.(type) {
		case string:
			return nil
		case *string:
			_ = v
			return nil
		}
	case KindDate:
		s, ok := value.(string)
		if !ok {
			break
		}
		if _, err := time.Parse(domain.DateLayout, s); err != nil {
			// Строка правильного типа, но не разбирается как дата: это отдельный
			// случай, отличный от несовпадения типа.
			return &domain.ValidationError{Param: name, Expected: "date in format YYYY-MM-DD", Value: s}
		}
		return nil
	case KindStatus:
		switch value.(type) {
		case domain.OrderStatus, string:
			return nil
		}
	}

	return &domain.ValidationError{Param: name, Expected: string(kind), Value: value}
}

// ParseDate разбирает текстовую дату в формате domain.DateLayout.
func ParseDate(name, value string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Param: name, Expected: "date in format YYYY-MM-DD", Value: value}
	}
	return t, nil
}

// DateRange проверяет обе границы диапазона и их порядок (start <= end).
func DateRange(startDate, endDate string) error {
	start, err := ParseDate("start_date", startDate)
	if err != nil {
		return err
	}
	end, err := ParseDate("end_date", endDate)
	if err != nil {
		return err
	}
	if start.After(end) {
		return &domain.ValidationError{
			Param:    "start_date",
			Expected: "date not after end_date " + endDate,
			Value:    startDate,
		}
	}
	return nil
}

func isNull(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case *string:
		return v == nil
	case *int64:
		return v == nil
	}
	return false
}

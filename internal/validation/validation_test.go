package validation_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/sales/internal/domain"
	"github.com/vladislavdragonenkov/sales/internal/validation"
)

func TestParamAcceptsMatchingTypes(t *testing.T) {
	require.NoError(t, validation.Param("customer_id", int64(1), validation.KindInteger, false))
	require.NoError(t, validation.Param("customer_id", 7, validation.KindInteger, false))
	require.NoError(t, validation.Param("amount", decimal.RequireFromString("99.99"), validation.KindDecimal, false))
	require.NoError(t, validation.Param("first_name", "Max", validation.KindText, false))
	require.NoError(t, validation.Param("order_date", "2026-01-25", validation.KindDate, false))
	require.NoError(t, validation.Param("status", domain.OrderStatusShipped, validation.KindStatus, false))
}

func TestParamRejectsTypeMismatch(t *testing.T) {
	err := validation.Param("customer_id", "1", validation.KindInteger, false)
	require.Error(t, err)
	require.True(t, domain.IsValidation(err))

	err = validation.Param("amount", 99.99, validation.KindDecimal, false)
	require.Error(t, err, "float64 is not a fixed-point amount")

	err = validation.Param("first_name", 42, validation.KindText, false)
	require.Error(t, err)
}

func TestParamNullability(t *testing.T) {
	require.NoError(t, validation.Param("middle_name", nil, validation.KindText, true))
	require.NoError(t, validation.Param("city", (*string)(nil), validation.KindText, true))

	err := validation.Param("last_name", nil, validation.KindText, false)
	require.Error(t, err)
	require.True(t, domain.IsValidation(err))
}

func TestParamMalformedDateIsDistinctFromTypeMismatch(t *testing.T) {
	typeErr := validation.Param("order_date", 20260125, validation.KindDate, false)
	require.Error(t, typeErr)

	formatErr := validation.Param("order_date", "25.01.2026", validation.KindDate, false)
	require.Error(t, formatErr)

	var v *domain.ValidationError
	require.ErrorAs(t, formatErr, &v)
	require.True(t, strings.Contains(v.Expected, "YYYY-MM-DD"))

	require.ErrorAs(t, typeErr, &v)
	require.False(t, strings.Contains(v.Expected, "YYYY-MM-DD"), "type mismatch must not look like a format error")
}

func TestParseDate(t *testing.T) {
	parsed, err := validation.ParseDate("start_date", "2025-12-01")
	require.NoError(t, err)
	require.Equal(t, 2025, parsed.Year())
	require.Equal(t, 12, int(parsed.Month()))

	_, err = validation.ParseDate("start_date", "2025-13-01")
	require.Error(t, err)
	require.True(t, domain.IsValidation(err))
}

func TestDateRange(t *testing.T) {
	require.NoError(t, validation.DateRange("2025-12-01", "2026-01-25"))
	require.NoError(t, validation.DateRange("2026-01-25", "2026-01-25"), "equal bounds are a valid range")

	err := validation.DateRange("2026-01-26", "2026-01-25")
	require.Error(t, err)
	require.True(t, domain.IsValidation(err))

	err = validation.DateRange("garbage", "2026-01-25")
	require.Error(t, err)
	require.True(t, domain.IsValidation(err))
}

package demo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/sales/internal/domain"
	"github.com/vladislavdragonenkov/sales/internal/metrics"
	"github.com/vladislavdragonenkov/sales/internal/storage/memory"
)

func TestRunnerFullScenarioAgainstMemoryStore(t *testing.T) {
	store := memory.NewSalesStore()
	var out bytes.Buffer

	runner := NewRunner(store, store, nil, nil, &out)
	require.NoError(t, runner.Run())

	text := out.String()

	require.Contains(t, text, "Demo data has been reset for (4 customers, 5 orders)")
	require.Contains(t, text, "NEW ORDER: ID 6 for customer 1")
	require.Contains(t, text, "NEW ORDER: ID 7 for the newly created customer with ID 5")

	require.Contains(t, text, "CUSTOMER SALES REPORT:")
	// Max: 299.99 + 450.00 + добавленные 42.50.
	require.Contains(t, text, "   Max Mustermann (Karlsruhe): 3 order(s), 792.49€")
	require.Contains(t, text, "   Fremder Unbekannter Kunde (Geheimstadt): 1 order(s), 1250.75€")
	require.Contains(t, text, "   Neuer Kunde ("+domain.UnknownCity+"): 1 order(s), 99.99€")

	require.Contains(t, text, "CITY SALES REPORT")
	require.Contains(t, text, "   Karlsruhe: 1 order(s), 450.00€")
	// Город с заказом только в pending остаётся в отчёте с нулями.
	require.Contains(t, text, "   Geheimstadt: 0 order(s), 0.00€")

	require.Contains(t, text, "STATUS SALES REPORT:")
	// pending: 1250.75 из заливки + 42.50 + 99.99 со статусом по умолчанию.
	require.Contains(t, text, "   pending: 3 order(s), 1393.24€")
	require.Contains(t, text, "   shipped: 1 order(s), 0.50€")
	require.Contains(t, text, "   arrived: 2 order(s), 525.75€")
	require.Contains(t, text, "   cancelled: 1 order(s), 299.99€")

	require.Contains(t, text, "REVENUE BETWEEN 2025-12-01 AND 2026-01-25:")
	require.Contains(t, text, "   Total revenue: 450.50€")
}

func TestRunnerIsRepeatable(t *testing.T) {
	store := memory.NewSalesStore()

	var first, second bytes.Buffer
	require.NoError(t, NewRunner(store, store, nil, nil, &first).Run())
	require.NoError(t, NewRunner(store, store, nil, nil, &second).Run())

	// Детерминированная заливка: повторный запуск печатает те же отчёты.
	require.Equal(t, first.String(), second.String())
}

func TestRunnerRecordsMetrics(t *testing.T) {
	store := memory.NewSalesStore()
	var out bytes.Buffer

	// NewSalesMetrics регистрируется в реестре по умолчанию и переиспользует
	// уже зарегистрированные коллекторы при повторных вызовах.
	m := metrics.NewSalesMetrics()
	require.NoError(t, NewRunner(store, store, m, nil, &out).Run())

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	require.Contains(t, joined, "sales_repository_writes_total")
	require.Contains(t, joined, "sales_report_queries_total")
}

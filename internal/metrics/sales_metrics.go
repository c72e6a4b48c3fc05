package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SalesMetrics содержит метрики операций репозитория и движка отчётов.
type SalesMetrics struct {
	// Счётчики операций записи по имени операции.
	writesTotal  *prometheus.CounterVec
	writesFailed *prometheus.CounterVec

	// Гистограмма времени построения отчётов по имени отчёта.
	reportDuration *prometheus.HistogramVec
	reportsTotal   *prometheus.CounterVec
}

// NewSalesMetrics создаёт метрики и регистрирует их в реестре по умолчанию.
func NewSalesMetrics() *SalesMetrics {
	return newSalesMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newSalesMetricsWithRegisterer(registerer prometheus.Registerer) *SalesMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &SalesMetrics{
		writesTotal: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "sales_repository_writes_total",
			Help: "Total number of repository write operations started",
		}, []string{"operation"}),
		writesFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "sales_repository_write_failures_total",
			Help: "Total number of repository write operations that failed",
		}, []string{"operation"}),
		reportsTotal: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "sales_report_queries_total",
			Help: "Total number of report queries executed",
		}, []string{"report"}),
		reportDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "sales_report_duration_seconds",
			Help:    "Duration of report queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"report"}),
	}
}

// WriteStarted учитывает начатую операцию записи.
func (m *SalesMetrics) WriteStarted(operation string) {
	if m == nil {
		return
	}
	m.writesTotal.WithLabelValues(operation).Inc()
}

// WriteFailed учитывает неуспешную операцию записи.
func (m *SalesMetrics) WriteFailed(operation string) {
	if m == nil {
		return
	}
	m.writesFailed.WithLabelValues(operation).Inc()
}

// ReportObserved учитывает выполненный отчёт и его длительность.
func (m *SalesMetrics) ReportObserved(report string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.reportsTotal.WithLabelValues(report).Inc()
	m.reportDuration.WithLabelValues(report).Observe(elapsed.Seconds())
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

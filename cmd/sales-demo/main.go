package main

import (
	"context"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/sales/internal/config"
	"github.com/vladislavdragonenkov/sales/internal/domain"
	"github.com/vladislavdragonenkov/sales/internal/metrics"
	"github.com/vladislavdragonenkov/sales/internal/service/demo"
	"github.com/vladislavdragonenkov/sales/internal/storage/memory"
	"github.com/vladislavdragonenkov/sales/internal/storage/postgres"
	"github.com/vladislavdragonenkov/sales/internal/version"
)

const startupTimeout = 30 * time.Second

// setupLogger настраивает формат и уровень логирования.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

func main() {
	setupLogger()
	logger := log.WithField("component", "sales-demo")
	logger.WithField("build", version.String()).Info("запускаем демонстрацию продаж")

	repo, reports, cleanup := buildStorage(logger)
	defer cleanup()

	runner := demo.NewRunner(repo, reports, metrics.NewSalesMetrics(), logger, os.Stdout)
	if err := runner.Run(); err != nil {
		logger.WithError(err).Fatal("демонстрация завершилась с ошибкой")
	}

	logger.Info("демонстрация завершена")
}

// buildStorage подключается к PostgreSQL, а при недоступности базы падает на
// in-memory хранилище, чтобы демонстрацию можно было запустить без сервера.
func buildStorage(logger *log.Entry) (domain.SalesRepository, domain.ReportEngine, func()) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Warn("конфигурация БД не задана, используем in-memory хранилище")
		return memoryStorage()
	}

	store, err := postgres.Open(ctx, cfg.DSN())
	if err != nil {
		logger.WithError(err).Warn("postgres недоступен, используем in-memory хранилище")
		return memoryStorage()
	}

	if err := store.EnsureSchema(ctx); err != nil {
		logger.WithError(err).Fatal("не удалось применить миграции")
	}

	logger.WithField("host", cfg.Host).Info("подключились к postgres")
	return postgres.NewSalesRepository(store), postgres.NewReportEngine(store), func() { _ = store.Close() }
}

func memoryStorage() (domain.SalesRepository, domain.ReportEngine, func()) {
	store := memory.NewSalesStore()
	return store, store, func() {}
}

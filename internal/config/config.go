// Пакет config собирает параметры подключения к базе в явную структуру,
// передаваемую дальше по ссылке — никакого процесс-глобального изменяемого
// состояния. Значения читаются из окружения; локально их удобно держать в .env.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultHost = "localhost"
	defaultPort = 5432
)

// Database описывает подключение к PostgreSQL.
type Database struct {
	Name     string
	User     string
	Password string
	Host     string
	Port     int
	// DSNOverride, если задан (SALES_POSTGRES_DSN), имеет приоритет над
	// отдельными полями — удобно для CI и контейнеров.
	DSNOverride string
}

// Load читает конфигурацию из окружения, предварительно подхватив .env,
// если файл существует. Отсутствие .env не ошибка.
func Load() (Database, error) {
	_ = godotenv.Load()

	cfg := Database{
		Host:        getEnv("DB_HOST", defaultHost),
		DSNOverride: os.Getenv("SALES_POSTGRES_DSN"),
	}

	if cfg.DSNOverride != "" {
		return cfg, nil
	}

	var err error
	if cfg.Name, err = requireEnv("DB_NAME"); err != nil {
		return Database{}, err
	}
	if cfg.User, err = requireEnv("DB_USER"); err != nil {
		return Database{}, err
	}
	if cfg.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return Database{}, err
	}

	portRaw := getEnv("DB_PORT", strconv.Itoa(defaultPort))
	port, err := strconv.Atoi(portRaw)
	if err != nil {
		return Database{}, fmt.Errorf("invalid DB_PORT %q: %w", portRaw, err)
	}
	cfg.Port = port

	return cfg, nil
}

// DSN собирает строку подключения для драйвера pgx.
func (d Database) DSN() string {
	if d.DSNOverride != "" {
		return d.DSNOverride
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(d.User), url.QueryEscape(d.Password), d.Host, d.Port, url.QueryEscape(d.Name),
	)
}

func requireEnv(name string) (string, error) {
	value := os.Getenv(name)
	if value == "" {
		return "", fmt.Errorf("missing required environment variable: %s", name)
	}
	return value, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

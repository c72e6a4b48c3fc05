package postgres

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/sales/internal/domain"
)

// Коды SQLSTATE, которые репозиторий транслирует в типизированные ошибки домена.
const (
	sqlstateNotNullViolation    = "23502"
	sqlstateForeignKeyViolation = "23503"
	sqlstateUniqueViolation     = "23505"
	sqlstateCheckViolation      = "23514"
	// Невалидный литерал enum приходит как ошибка представления текста.
	sqlstateInvalidText = "22P02"

	sqlstateClassConnection = "08"
)

// translateStorageError переводит ошибку драйвера в доменную таксономию.
// Вызывается после отката транзакции; оригинальная ошибка сохраняется в Detail
// либо оборачивается, чтобы вызывающий мог решить — повторять или прекращать.
func translateStorageError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		detail := pgErr.Detail
		if detail == "" {
			detail = pgErr.Message
		}
		switch pgErr.Code {
		case sqlstateForeignKeyViolation:
			return &domain.ReferenceError{Op: op, Constraint: pgErr.ConstraintName, Detail: detail}
		case sqlstateCheckViolation, sqlstateNotNullViolation, sqlstateUniqueViolation:
			return &domain.ConstraintError{Op: op, Constraint: pgErr.ConstraintName, Detail: detail}
		case sqlstateInvalidText:
			return &domain.ConstraintError{Op: op, Constraint: "order_status", Detail: detail}
		}
		if strings.HasPrefix(pgErr.Code, sqlstateClassConnection) {
			return &domain.ConnectionError{Op: op, Err: err}
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, driver.ErrBadConn) {
		return &domain.ConnectionError{Op: op, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &domain.ConnectionError{Op: op, Err: err}
	}

	return fmt.Errorf("%s: %w", op, err)
}

package domain

import (
	"errors"
	"fmt"
)

// ValidationError сигнализирует о параметре, не прошедшем семантическую проверку
// до обращения к хранилищу. Всегда восстановимо на стороне вызывающего.
type ValidationError struct {
	// Param — имя параметра для сообщения об ошибке.
	Param string
	// Expected — ожидаемый семантический тип или формат.
	Expected string
	// Value — фактически переданное значение.
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("parameter %q must be %s, got %v", e.Param, e.Expected, e.Value)
}

// ReferenceError сигнализирует о ссылке на несуществующую родительскую строку
// (нарушение внешнего ключа). Возвращается после отката транзакции.
type ReferenceError struct {
	Op         string
	Constraint string
	Detail     string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: referenced row does not exist (%s): %s", e.Op, e.Constraint, e.Detail)
}

// ConstraintError сигнализирует об отклонении записи ограничением хранилища:
// CHECK, NOT NULL, уникальность или членство в enum. Возвращается после отката.
type ConstraintError struct {
	Op         string
	Constraint string
	Detail     string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: constraint violated (%s): %s", e.Op, e.Constraint, e.Detail)
}

// ConnectionError сигнализирует о недоступном хранилище или невалидной сессии.
// Ядро не повторяет операцию само; политика ретраев остаётся за вызывающим.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s: storage connection failed: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IsValidation проверяет, является ли ошибка ошибкой валидации параметра.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsReference проверяет, является ли ошибка нарушением ссылочной целостности.
func IsReference(err error) bool {
	var target *ReferenceError
	return errors.As(err, &target)
}

// IsConstraint проверяет, является ли ошибка нарушением ограничения хранилища.
func IsConstraint(err error) bool {
	var target *ConstraintError
	return errors.As(err, &target)
}

// IsConnection проверяет, является ли ошибка ошибкой подключения.
func IsConnection(err error) bool {
	var target *ConnectionError
	return errors.As(err, &target)
}

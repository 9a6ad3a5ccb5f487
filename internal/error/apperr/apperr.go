// Package apperr holds the domain error sentinels shared by repositories,
// services and the response layer. Callers wrap them with fmt.Errorf("%w").
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrHasDependents = errors.New("has dependents")
)

// Invalid 构造参数校验错误
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotFound 构造资源不存在错误
func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

// Forbidden 构造权限不足错误
func Forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

// Conflict 构造自然键冲突错误
func Conflict(what string) error {
	return fmt.Errorf("%w: %s", ErrConflict, what)
}

// HasDependents 构造存在关联数据错误
func HasDependents(what string) error {
	return fmt.Errorf("%w: %s", ErrHasDependents, what)
}

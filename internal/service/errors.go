package service

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeConflict          = "CONFLICT"
	CodeReferenceNotFound = "REFERENCE_NOT_FOUND"
	CodeNotFound          = "NOT_FOUND"
	CodeForbidden         = "FORBIDDEN"
	CodeUnauthorized      = "UNAUTHORIZED"
)

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

type Detail struct {
	Key     string
	Payload any
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func (b *BusinessError) Unwrap() error {
	return b.Err
}

func ToDetail(key string, payload any) Detail {
	return Detail{
		Key:     key,
		Payload: payload,
	}
}

func NewBusinessError(code string, message string, details ...Detail) *BusinessError {
	busErr := &BusinessError{
		Code:    code,
		Message: message,
		Details: make(map[string]any),
	}
	for _, detail := range details {
		busErr.Details[detail.Key] = detail.Payload
	}
	return busErr
}

func NewNotFound(resource Resource, id int64) *BusinessError {
	return NewBusinessError(CodeNotFound,
		fmt.Sprintf("%s с id %d не найден(а)", resource, id),
		ToDetail("resource", resource),
		ToDetail("id", id),
	)
}

func NewValidationError(field, reason string) *BusinessError {
	return NewBusinessError(CodeValidation,
		fmt.Sprintf("Неверное значение поля '%s': %s", field, reason),
		ToDetail("field", field),
		ToDetail("reason", reason),
	)
}

func NewConflict(resource Resource, field, value string) *BusinessError {
	return NewBusinessError(CodeConflict,
		fmt.Sprintf("%s со значением %s=%q уже существует", resource, field, value),
		ToDetail("resource", resource),
		ToDetail("field", field),
		ToDetail("value", value),
	)
}

func NewInUse(resource Resource, id int64) *BusinessError {
	return NewBusinessError(CodeConflict,
		fmt.Sprintf("%s с id %d используется в задачах и не может быть удален(а)", resource, id),
		ToDetail("resource", resource),
		ToDetail("id", id),
		ToDetail("reason", "in_use"),
	)
}

func NewReferenceNotFound(field, value string) *BusinessError {
	return NewBusinessError(CodeReferenceNotFound,
		fmt.Sprintf("Ссылка '%s' со значением %s не найдена", field, value),
		ToDetail("field", field),
		ToDetail("value", value),
	)
}

func NewForbidden(action string) *BusinessError {
	return NewBusinessError(CodeForbidden,
		fmt.Sprintf("Нет прав на действие: %s", action),
		ToDetail("action", action),
	)
}

func NewUnauthorized() *BusinessError {
	return NewBusinessError(CodeUnauthorized, "Неверный email или пароль")
}

// HasCode проверяет, что err - бизнес-ошибка с указанным кодом
func HasCode(err error, code string) bool {
	var busErr *BusinessError
	if errors.As(err, &busErr) {
		return busErr.Code == code
	}
	return false
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}

package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("запись не найдена")
	// ErrInUse - на запись ссылаются другие строки, удалить её нельзя
	ErrInUse = errors.New("запись используется другими записями")
)

// ConflictError - нарушено ограничение уникальности
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("значение %q поля %s уже занято", e.Value, e.Field)
}

// ReferenceError - ссылка на несуществующую запись обнаружена при записи
type ReferenceError struct {
	Field string
	Value string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("ссылка %s=%s не найдена", e.Field, e.Value)
}

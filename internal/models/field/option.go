// Package field описывает поле запроса с тремя состояниями:
// не передано, передано со значением, передано как null.
package field

import (
	"bytes"
	"encoding/json"
)

type Option[T any] struct {
	set   bool
	null  bool
	value T
}

func Some[T any](value T) Option[T] {
	return Option[T]{set: true, value: value}
}

func Null[T any]() Option[T] {
	return Option[T]{set: true, null: true}
}

// IsSet сообщает, упоминалось ли поле в запросе (в том числе как null).
func (o Option[T]) IsSet() bool {
	return o.set
}

func (o Option[T]) IsNull() bool {
	return o.set && o.null
}

// Get возвращает значение, если поле передано и не равно null.
func (o Option[T]) Get() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

func (o Option[T]) ValueOr(def T) T {
	if v, ok := o.Get(); ok {
		return v
	}
	return def
}

// UnmarshalJSON вызывается только для ключей, присутствующих в теле запроса,
// поэтому отсутствие вызова и есть состояние "не передано".
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.null = true
		var zero T
		o.value = zero
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}

func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

package service

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"taskManager/internal/models/field"
	"taskManager/internal/models/label"
)

const PasswordMinLength = 3

// проверки полей - чистые функции, nil означает "значение корректно"

func validateRequired(name, value string) *BusinessError {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(name, "не может быть пустым")
	}
	return nil
}

func validateEmail(name, value string) *BusinessError {
	if err := validateRequired(name, value); err != nil {
		return err
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || addr.Name != "" {
		return NewValidationError(name, "некорректный адрес электронной почты")
	}
	return nil
}

func validatePassword(name, value string) *BusinessError {
	if err := validateRequired(name, value); err != nil {
		return err
	}
	if utf8.RuneCountInString(value) < PasswordMinLength {
		return NewValidationError(name, "должен быть не короче 3 символов")
	}
	return nil
}

func validateLabelName(name, value string) *BusinessError {
	if err := validateRequired(name, value); err != nil {
		return err
	}
	n := utf8.RuneCountInString(value)
	if n < label.NameMinLength {
		return NewValidationError(name, "должно быть не короче 3 символов")
	}
	if n > label.NameMaxLength {
		return NewValidationError(name, "должно быть не длиннее 1000 символов")
	}
	return nil
}

// validateSet проверяет переданное поле обязательного атрибута:
// null для него недопустим, значение проходит check.
// Возвращает значение и признак того, что поле было передано.
func validateSet(name string, opt field.Option[string], check func(string, string) *BusinessError) (string, bool, error) {
	if !opt.IsSet() {
		return "", false, nil
	}
	value, ok := opt.Get()
	if !ok {
		return "", true, NewValidationError(name, "не может быть null")
	}
	if err := check(name, value); err != nil {
		return "", true, err
	}
	return value, true, nil
}

// firstErr нужен, чтобы nil *BusinessError не превращался в ненулевой error
func firstErr(errs ...*BusinessError) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

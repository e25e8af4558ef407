package user

import (
	"time"

	"taskManager/internal/models/field"
)

type User struct {
	ID             int64     `json:"id" db:"id"`
	FirstName      string    `json:"firstName" db:"first_name"`
	LastName       string    `json:"lastName" db:"last_name"`
	Email          string    `json:"email" db:"email"`
	PasswordDigest string    `json:"-" db:"password_digest"` // наружу не отдаём
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Draft - данные для создания пользователя
type Draft struct {
	FirstName field.Option[string]
	LastName  field.Option[string]
	Email     string
	Password  string
}

// Patch - частичное обновление, непереданные поля не трогаются
type Patch struct {
	FirstName field.Option[string]
	LastName  field.Option[string]
	Email     field.Option[string]
	Password  field.Option[string]
}

// Principal - аутентифицированный пользователь текущего запроса
type Principal struct {
	ID    int64
	Email string
}

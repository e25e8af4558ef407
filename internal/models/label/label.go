package label

import (
	"time"

	"taskManager/internal/models/field"
)

const (
	NameMinLength = 3
	NameMaxLength = 1000
)

type Label struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Draft struct {
	Name string
}

type Patch struct {
	Name field.Option[string]
}

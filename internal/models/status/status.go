package status

import (
	"time"

	"taskManager/internal/models/field"
)

type Status struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Draft struct {
	Name string
	Slug string
}

type Patch struct {
	Name field.Option[string]
	Slug field.Option[string]
}

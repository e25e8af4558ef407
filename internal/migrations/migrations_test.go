package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDriverURL тестирует замену схемы подключения
func TestDriverURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "postgres://u:p@localhost:5432/db", want: "pgx5://u:p@localhost:5432/db"},
		{in: "postgresql://u:p@localhost/db?sslmode=disable", want: "pgx5://u:p@localhost/db?sslmode=disable"},
		{in: "pgx5://localhost/db", want: "pgx5://localhost/db"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, driverURL(tt.in))
	}
}

// TestEmbeddedFiles тестирует, что у каждой миграции есть пара up/down
func TestEmbeddedFiles(t *testing.T) {
	names, err := fs.Glob(files, "sql/*.sql")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"sql/001_init.up.sql",
		"sql/001_init.down.sql",
		"sql/002_indexes.up.sql",
		"sql/002_indexes.down.sql",
	}, names)
}

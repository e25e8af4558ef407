package service_test

import (
	"context"
	"strings"
	"testing"

	"taskManager/internal/models/field"
	"taskManager/internal/models/label"
	"taskManager/internal/models/status"
	"taskManager/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestStatusService тестирует создание и обновление статусов
func TestStatusService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	draft, err := f.statuses.Create(ctx, status.Draft{Name: "Draft", Slug: "draft"})
	require.NoError(t, err)
	review, err := f.statuses.Create(ctx, status.Draft{Name: "To review", Slug: "to_review"})
	require.NoError(t, err)

	t.Run("error - slug taken", func(t *testing.T) {
		_, err := f.statuses.Create(ctx, status.Draft{Name: "Other", Slug: "draft"})
		busErr := requireCode(t, err, service.CodeConflict)
		assert.Equal(t, "slug", busErr.Details["field"])
	})

	t.Run("error - name taken", func(t *testing.T) {
		_, err := f.statuses.Create(ctx, status.Draft{Name: "Draft", Slug: "other"})
		busErr := requireCode(t, err, service.CodeConflict)
		assert.Equal(t, "name", busErr.Details["field"])
	})

	t.Run("error - missing fields", func(t *testing.T) {
		_, err := f.statuses.Create(ctx, status.Draft{Name: " ", Slug: "x"})
		requireCode(t, err, service.CodeValidation)
	})

	t.Run("success - own values are not a conflict", func(t *testing.T) {
		updated, err := f.statuses.Update(ctx, draft.ID, status.Patch{Name: field.Some("Draft"), Slug: field.Some("draft")})
		require.NoError(t, err)
		assert.Equal(t, draft.Slug, updated.Slug)
	})

	t.Run("error - update to taken slug", func(t *testing.T) {
		_, err := f.statuses.Update(ctx, review.ID, status.Patch{Slug: field.Some("draft")})
		requireCode(t, err, service.CodeConflict)

		stored, err := f.statuses.GetByID(ctx, review.ID)
		require.NoError(t, err)
		assert.Equal(t, "to_review", stored.Slug)
	})

	t.Run("error - null slug", func(t *testing.T) {
		_, err := f.statuses.Update(ctx, review.ID, status.Patch{Slug: field.Null[string]()})
		requireCode(t, err, service.CodeValidation)
	})

	t.Run("success - rename", func(t *testing.T) {
		updated, err := f.statuses.Update(ctx, review.ID, status.Patch{Name: field.Some("Review")})
		require.NoError(t, err)
		assert.Equal(t, "Review", updated.Name)
		assert.Equal(t, "to_review", updated.Slug)
	})

	t.Run("error - not found", func(t *testing.T) {
		_, err := f.statuses.GetByID(ctx, 404)
		requireCode(t, err, service.CodeNotFound)
	})
}

// TestLabelService тестирует ограничения на имя метки
func TestLabelService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	bug, err := f.labels.Create(ctx, label.Draft{Name: "bug"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
		code  string
	}{
		{name: "error - duplicate", value: "bug", code: service.CodeConflict},
		{name: "error - too short", value: "ab", code: service.CodeValidation},
		{name: "error - too long", value: strings.Repeat("a", label.NameMaxLength+1), code: service.CodeValidation},
		{name: "error - empty", value: "", code: service.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.labels.Create(ctx, label.Draft{Name: tt.value})
			requireCode(t, err, tt.code)
		})
	}

	t.Run("success - boundaries", func(t *testing.T) {
		_, err := f.labels.Create(ctx, label.Draft{Name: "abc"})
		require.NoError(t, err)
		_, err = f.labels.Create(ctx, label.Draft{Name: strings.Repeat("б", label.NameMaxLength)})
		require.NoError(t, err)
	})

	t.Run("success - omitted name keeps label", func(t *testing.T) {
		updated, err := f.labels.Update(ctx, bug.ID, label.Patch{})
		require.NoError(t, err)
		assert.Equal(t, "bug", updated.Name)
	})

	t.Run("error - rename to taken", func(t *testing.T) {
		_, err := f.labels.Update(ctx, bug.ID, label.Patch{Name: field.Some("abc")})
		requireCode(t, err, service.CodeConflict)
	})

	t.Run("success - rename", func(t *testing.T) {
		updated, err := f.labels.Update(ctx, bug.ID, label.Patch{Name: field.Some("defect")})
		require.NoError(t, err)
		assert.Equal(t, "defect", updated.Name)
	})

	labels, err := f.labels.List(ctx)
	require.NoError(t, err)
	assert.Len(t, labels, 3)
}

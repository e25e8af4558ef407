package service_test

import (
	"context"
	"testing"

	"taskManager/internal/models/field"
	"taskManager/internal/models/label"
	"taskManager/internal/models/status"
	"taskManager/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolver тестирует состояния разрешения ссылок
func TestResolver(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	resolver := service.NewResolver(f.storage.Statuses, f.storage.Users, f.storage.Labels)

	_, err := f.statuses.Create(ctx, status.Draft{Name: "Draft", Slug: "draft"})
	require.NoError(t, err)
	for _, name := range []string{"feature", "bug"} {
		_, err := f.labels.Create(ctx, label.Draft{Name: name})
		require.NoError(t, err)
	}

	t.Run("status", func(t *testing.T) {
		ref, err := resolver.ResolveStatus(ctx, field.Option[string]{})
		require.NoError(t, err)
		assert.Equal(t, service.RefOmitted, ref.State)

		ref, err = resolver.ResolveStatus(ctx, field.Some("draft"))
		require.NoError(t, err)
		assert.Equal(t, service.RefResolved, ref.State)
		assert.Equal(t, "Draft", ref.Value.Name)
		assert.NoError(t, ref.Err("status"))

		ref, err = resolver.ResolveStatus(ctx, field.Some("missing"))
		require.NoError(t, err)
		assert.Equal(t, service.RefNotFound, ref.State)
		requireCode(t, ref.Err("status"), service.CodeReferenceNotFound)
	})

	t.Run("user", func(t *testing.T) {
		ref, err := resolver.ResolveUser(ctx, field.Null[int64]())
		require.NoError(t, err)
		assert.Equal(t, service.RefCleared, ref.State)
		assert.NoError(t, ref.Err("assignee_id"))

		ref, err = resolver.ResolveUser(ctx, field.Some(int64(42)))
		require.NoError(t, err)
		assert.Equal(t, service.RefNotFound, ref.State)
		assert.Equal(t, "42", ref.Input)
	})

	t.Run("labels", func(t *testing.T) {
		ref, err := resolver.ResolveLabels(ctx, field.Some([]int64{2, 1, 2}))
		require.NoError(t, err)
		require.Equal(t, service.RefResolved, ref.State)
		require.Len(t, ref.Value, 2)

		ref, err = resolver.ResolveLabels(ctx, field.Some([]int64{}))
		require.NoError(t, err)
		assert.Equal(t, service.RefResolved, ref.State)
		assert.Empty(t, ref.Value)

		ref, err = resolver.ResolveLabels(ctx, field.Some([]int64{1, 7, 9}))
		require.NoError(t, err)
		assert.Equal(t, service.RefNotFound, ref.State)
		assert.Equal(t, "[7,9]", ref.Input)
		assert.Empty(t, ref.Value)
	})
}

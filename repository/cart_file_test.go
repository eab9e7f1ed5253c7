package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront-dashboard/models"
	"storefront-dashboard/repository"
)

func TestFileCart_FirstTimeUserGetsEmptySequence(t *testing.T) {
	repo := repository.NewFileCartRepository(t.TempDir())

	lines, err := repo.Get(context.Background(), "42")
	assert.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func TestFileCart_PutReplacesSnapshot(t *testing.T) {
	repo := repository.NewFileCartRepository(t.TempDir())
	ctx := context.Background()

	first := []models.CartLine{{ProductID: 7, Name: "Keyboard", Quantity: 2, UnitPrice: 19.99}}
	assert.NoError(t, repo.Put(ctx, "42", first))

	second := []models.CartLine{{ProductID: 3, Name: "Mug", Quantity: 1, UnitPrice: 5.50}}
	assert.NoError(t, repo.Put(ctx, "42", second))

	lines, err := repo.Get(ctx, "42")
	assert.NoError(t, err)
	assert.Equal(t, second, lines)
}

func TestFileCart_PartitionedByUser(t *testing.T) {
	repo := repository.NewFileCartRepository(t.TempDir())
	ctx := context.Background()

	assert.NoError(t, repo.Put(ctx, "42", []models.CartLine{{ProductID: 7, Quantity: 2, UnitPrice: 19.99}}))

	lines, err := repo.Get(ctx, "77")
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestFileCart_EmptyUserIDUsesGuestKey(t *testing.T) {
	dir := t.TempDir()
	repo := repository.NewFileCartRepository(dir)
	ctx := context.Background()

	assert.NoError(t, repo.Put(ctx, "", []models.CartLine{{ProductID: 5, Quantity: 1, UnitPrice: 1.25}}))

	_, err := os.Stat(filepath.Join(dir, "carts", "cart_guest.json"))
	assert.NoError(t, err)

	lines, err := repo.Get(ctx, "")
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestFileCart_CorruptSnapshotReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(dir, "carts"), 0o700))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "carts", "cart_42.json"), []byte("garbage"), 0o600))

	repo := repository.NewFileCartRepository(dir)
	lines, err := repo.Get(context.Background(), "42")
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestFileCart_DeleteIsIdempotent(t *testing.T) {
	repo := repository.NewFileCartRepository(t.TempDir())
	ctx := context.Background()

	assert.NoError(t, repo.Put(ctx, "42", []models.CartLine{{ProductID: 7, Quantity: 1, UnitPrice: 19.99}}))
	assert.NoError(t, repo.Delete(ctx, "42"))
	assert.NoError(t, repo.Delete(ctx, "42"))

	lines, err := repo.Get(ctx, "42")
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

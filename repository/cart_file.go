package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"storefront-dashboard/models"
)

// FileCartRepository stores one JSON cart snapshot per user under the data
// directory. Absent or unreadable snapshots read as an empty cart.
type FileCartRepository struct {
	dir string
}

func NewFileCartRepository(dataDir string) *FileCartRepository {
	return &FileCartRepository{dir: filepath.Join(dataDir, "carts")}
}

func (r *FileCartRepository) path(userID string) string {
	return filepath.Join(r.dir, "cart_"+CartKey(userID)+".json")
}

func (r *FileCartRepository) Get(_ context.Context, userID string) ([]models.CartLine, error) {
	data, err := os.ReadFile(r.path(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return []models.CartLine{}, nil
		}
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return []models.CartLine{}, nil
	}
	if cart.Lines == nil {
		return []models.CartLine{}, nil
	}
	return cart.Lines, nil
}

func (r *FileCartRepository) Put(_ context.Context, userID string, lines []models.CartLine) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}
	cart := models.Cart{
		UserID:    CartKey(userID),
		Lines:     lines,
		UpdatedAt: time.Now(),
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return os.WriteFile(r.path(userID), data, 0o600)
}

func (r *FileCartRepository) Delete(_ context.Context, userID string) error {
	if err := os.Remove(r.path(userID)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

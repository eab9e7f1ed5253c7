package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"storefront-dashboard/models"
	"storefront-dashboard/repository"
)

// ErrInvalidQuantity is returned when an add-to-cart quantity is not a
// positive integer.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// CartService applies cart mutations in memory against the loaded snapshot,
// then persists the full snapshot back.
type CartService struct {
	repo repository.CartRepository
	log  *zap.Logger
}

func NewCartService(repo repository.CartRepository, log *zap.Logger) *CartService {
	return &CartService{repo: repo, log: log}
}

func (s *CartService) Get(ctx context.Context, userID string) ([]models.CartLine, error) {
	return s.repo.Get(ctx, userID)
}

// Add puts qty units of the product into the user's cart. An existing line
// for the product has its quantity incremented; otherwise a new line is
// appended capturing the product's current price.
func (s *CartService) Add(ctx context.Context, userID string, product *models.Product, qty int) ([]models.CartLine, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	lines, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].ProductID == product.ID {
			lines[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  qty,
			UnitPrice: product.Price,
		})
	}

	if err := s.repo.Put(ctx, userID, lines); err != nil {
		return nil, err
	}
	s.log.Debug("cart line added",
		zap.String("user_id", repository.CartKey(userID)),
		zap.Int64("product_id", product.ID),
		zap.Int("quantity", qty),
	)
	return lines, nil
}

// UpdateQuantity sets the quantity on an existing line. Invalid quantities
// are silently ignored and the cart is returned unchanged.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, productID int64, qty int) ([]models.CartLine, error) {
	lines, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if qty < 1 {
		return lines, nil
	}

	changed := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = qty
			changed = true
			break
		}
	}
	if !changed {
		return lines, nil
	}

	if err := s.repo.Put(ctx, userID, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Remove drops the line for productID if present; absent ids are a no-op.
func (s *CartService) Remove(ctx context.Context, userID string, productID int64) ([]models.CartLine, error) {
	lines, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	if len(kept) == len(lines) {
		return lines, nil
	}

	if err := s.repo.Put(ctx, userID, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.repo.Delete(ctx, userID)
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"catalog/internal/models"
)

// ErrProductNotFound is returned when no product matches a lookup.
var ErrProductNotFound = errors.New("product not found")

// ConflictError reports a unique constraint violation. Detail is the
// store's own description of the conflicting key.
type ConflictError struct {
	Detail string
	Err    error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unique constraint violated: %s", e.Detail)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// ProductRepository defines the interface for product data access.
// Products returned by the lookups carry their images in insertion order.
type ProductRepository interface {
	// Create stores the product and its images atomically.
	Create(ctx context.Context, product *models.Product) error
	// List returns a window of products ordered by creation time.
	List(ctx context.Context, limit, offset int) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// GetByTitleOrSlug matches UPPER(title) = upper(title) OR LOWER(slug) = lower(slug).
	// The earliest created product wins when both columns match different rows.
	GetByTitleOrSlug(ctx context.Context, title, slug string) (*models.Product, error)
	// Update saves the product columns. When replaceImages is set, the stored
	// images are deleted and product.Images is inserted in the same transaction.
	Update(ctx context.Context, product *models.Product, replaceImages bool) error
	// Delete removes the product and its images in one transaction.
	Delete(ctx context.Context, id string) error
}

package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"catalog/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// It enforces the same unique title/slug rules as the SQL schema.
type InMemoryProductRepository struct {
	mu          sync.RWMutex
	products    map[string]models.Product
	order       []string
	nextImageID uint
}

// NewInMemoryProductRepository creates a new, empty InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

// Create adds a new product and numbers its images.
func (r *InMemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := product.BeforeCreate(nil); err != nil {
		return err
	}
	if _, ok := r.products[product.ID]; ok {
		return conflict("id", product.ID)
	}
	if err := r.checkUnique(product); err != nil {
		return err
	}

	r.assignImages(product)
	r.products[product.ID] = clone(*product)
	r.order = append(r.order, product.ID)
	return nil
}

// List returns products in insertion order.
func (r *InMemoryProductRepository) List(_ context.Context, limit, offset int) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0, limit)
	for i := offset; i < len(r.order) && len(products) < limit; i++ {
		products = append(products, clone(r.products[r.order[i]]))
	}
	return products, nil
}

// GetByID returns a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p := clone(product)
	return &p, nil
}

// GetByTitleOrSlug returns the oldest product whose title or slug matches.
func (r *InMemoryProductRepository) GetByTitleOrSlug(_ context.Context, title, slug string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	title, slug = strings.ToUpper(title), strings.ToLower(slug)
	for _, id := range r.order {
		product := r.products[id]
		if strings.ToUpper(product.Title) == title || strings.ToLower(product.Slug) == slug {
			p := clone(product)
			return &p, nil
		}
	}
	return nil, ErrProductNotFound
}

// Update modifies an existing product.
func (r *InMemoryProductRepository) Update(_ context.Context, product *models.Product, replaceImages bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return ErrProductNotFound
	}
	if err := product.BeforeUpdate(nil); err != nil {
		return err
	}
	if err := r.checkUnique(product); err != nil {
		return err
	}

	if replaceImages {
		r.assignImages(product)
	} else {
		product.Images = existing.Images
	}
	r.products[product.ID] = clone(*product)
	return nil
}

// Delete removes a product and its images.
func (r *InMemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	delete(r.products, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// checkUnique must be called with the write lock held.
func (r *InMemoryProductRepository) checkUnique(product *models.Product) error {
	for id, other := range r.products {
		if id == product.ID {
			continue
		}
		if other.Title == product.Title {
			return conflict("title", product.Title)
		}
		if other.Slug == product.Slug {
			return conflict("slug", product.Slug)
		}
	}
	return nil
}

func (r *InMemoryProductRepository) assignImages(product *models.Product) {
	for i := range product.Images {
		r.nextImageID++
		product.Images[i].ID = r.nextImageID
		product.Images[i].ProductID = product.ID
	}
}

func conflict(column, value string) *ConflictError {
	return &ConflictError{Detail: fmt.Sprintf("Key (%s)=(%s) already exists.", column, value)}
}

func clone(p models.Product) models.Product {
	p.Sizes = append([]string(nil), p.Sizes...)
	p.Tags = append([]string(nil), p.Tags...)
	p.Images = append([]models.ProductImage(nil), p.Images...)
	return p
}

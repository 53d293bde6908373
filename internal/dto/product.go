package dto

import "catalog/internal/models"

// CreateProductRequest is the payload accepted when creating a product.
type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Slug        *string  `json:"slug" validate:"omitempty,min=1"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes" validate:"required,dive,required"`
	Gender      string   `json:"gender" validate:"required,oneof=men women kid unisex"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// UpdateProductRequest is a partial product. Nil fields are left untouched;
// a present "images" array, even an empty one, replaces the product's images.
type UpdateProductRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Slug        *string  `json:"slug" validate:"omitempty,min=1"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes" validate:"omitempty,dive,required"`
	Gender      *string  `json:"gender" validate:"omitempty,oneof=men women kid unisex"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// ProductResponse is the API shape of a product: images are plain URLs.
type ProductResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description *string  `json:"description"`
	Slug        string   `json:"slug"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	Gender      string   `json:"gender"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
}

// ToModel builds an unsaved product, turning each image URL into an owned row.
func (r CreateProductRequest) ToModel() *models.Product {
	p := &models.Product{
		Title:       r.Title,
		Description: r.Description,
		Sizes:       r.Sizes,
		Gender:      r.Gender,
		Tags:        r.Tags,
		Images:      models.NewProductImages(r.Images),
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Slug != nil {
		p.Slug = *r.Slug
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	return p
}

// ApplyTo overlays the non-nil fields of the patch onto p. Images are not
// touched here; the repository replaces them as a unit.
func (r UpdateProductRequest) ApplyTo(p *models.Product) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Description != nil {
		p.Description = r.Description
	}
	if r.Slug != nil {
		p.Slug = *r.Slug
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	if r.Sizes != nil {
		p.Sizes = r.Sizes
	}
	if r.Gender != nil {
		p.Gender = *r.Gender
	}
	if r.Tags != nil {
		p.Tags = r.Tags
	}
}

// NewProductResponse flattens a stored product.
func NewProductResponse(p *models.Product) ProductResponse {
	return newResponse(p, p.ImageURLs())
}

// NewProductResponseWithImages builds a response around the given URLs
// instead of the product's image rows.
func NewProductResponseWithImages(p *models.Product, images []string) ProductResponse {
	if images == nil {
		images = []string{}
	}
	return newResponse(p, images)
}

func newResponse(p *models.Product, images []string) ProductResponse {
	sizes, tags := p.Sizes, p.Tags
	if sizes == nil {
		sizes = []string{}
	}
	if tags == nil {
		tags = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Slug:        p.Slug,
		Stock:       p.Stock,
		Sizes:       sizes,
		Gender:      p.Gender,
		Tags:        tags,
		Images:      images,
	}
}

package services

import (
	"context"
	"errors"
	"log/slog"

	"catalog/internal/apperrors"
	"catalog/internal/dto"
	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/google/uuid"
)

// Product event types.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher publishes domain events. *rabbitmq.Client satisfies it.
type EventPublisher interface {
	Publish(eventType string, data interface{}) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	logger    *slog.Logger
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are sent.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger *slog.Logger) *ProductService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "ProductService")),
	}
}

// Create stores a new product with its images. The response echoes the
// image URLs exactly as they were given.
func (s *ProductService) Create(ctx context.Context, req dto.CreateProductRequest) (dto.ProductResponse, error) {
	images := req.Images
	if images == nil {
		images = []string{}
	}

	product := req.ToModel()
	if err := s.repo.Create(ctx, product); err != nil {
		return dto.ProductResponse{}, s.handleDBExceptions(ctx, "create", err)
	}

	resp := dto.NewProductResponseWithImages(product, images)
	s.publish(ctx, EventProductCreated, product.ID, resp)
	return resp, nil
}

// FindAll returns one page of products with flattened images.
func (s *ProductService) FindAll(ctx context.Context, page dto.Pagination) ([]dto.ProductResponse, error) {
	limit, offset := page.Values()

	products, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, s.internal(ctx, "find all", err)
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, dto.NewProductResponse(&products[i]))
	}
	return out, nil
}

// FindOne resolves term as an id when it is a UUID and as a title or slug
// otherwise. A UUID never falls through to the title/slug lookup.
func (s *ProductService) FindOne(ctx context.Context, term string) (*models.Product, error) {
	var (
		product *models.Product
		err     error
	)
	if isUUID(term) {
		product, err = s.repo.GetByID(ctx, term)
	} else {
		product, err = s.repo.GetByTitleOrSlug(ctx, term, term)
	}

	switch {
	case err == nil:
		return product, nil
	case errors.Is(err, repositories.ErrProductNotFound):
		return nil, apperrors.NotFound(term)
	default:
		return nil, s.internal(ctx, "find one", err)
	}
}

// FindOnePlain is FindOne with the images flattened to URLs.
func (s *ProductService) FindOnePlain(ctx context.Context, term string) (dto.ProductResponse, error) {
	product, err := s.FindOne(ctx, term)
	if err != nil {
		return dto.ProductResponse{}, err
	}
	return dto.NewProductResponse(product), nil
}

// Update merges patch onto the product with the given id. Images are kept
// unless the patch carries an images array, which then replaces them.
func (s *ProductService) Update(ctx context.Context, id string, patch dto.UpdateProductRequest) (dto.ProductResponse, error) {
	if !isUUID(id) {
		return dto.ProductResponse{}, apperrors.NotFound(id)
	}

	product, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrProductNotFound) {
		return dto.ProductResponse{}, apperrors.NotFound(id)
	}
	if err != nil {
		return dto.ProductResponse{}, s.internal(ctx, "update", err)
	}

	patch.ApplyTo(product)
	replaceImages := patch.Images != nil
	if replaceImages {
		product.Images = models.NewProductImages(patch.Images)
	}

	if err := s.repo.Update(ctx, product, replaceImages); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return dto.ProductResponse{}, apperrors.NotFound(id)
		}
		return dto.ProductResponse{}, s.handleDBExceptions(ctx, "update", err)
	}

	resp := dto.NewProductResponse(product)
	s.publish(ctx, EventProductUpdated, product.ID, resp)
	return resp, nil
}

// Remove deletes the product matched by id. Like FindOne, id may also be a
// title or slug.
func (s *ProductService) Remove(ctx context.Context, id string) error {
	product, err := s.FindOne(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, product.ID); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return apperrors.NotFound(id)
		}
		return s.internal(ctx, "remove", err)
	}

	s.publish(ctx, EventProductDeleted, product.ID, map[string]string{"id": product.ID})
	return nil
}

// handleDBExceptions turns a write failure into a client error when it is a
// unique violation and into an opaque internal error otherwise.
func (s *ProductService) handleDBExceptions(ctx context.Context, op string, err error) error {
	var conflict *repositories.ConflictError
	if errors.As(err, &conflict) {
		return apperrors.DuplicateKey(conflict.Detail)
	}
	return s.internal(ctx, op, err)
}

func (s *ProductService) internal(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, "product store failure",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
	return apperrors.Internal(err)
}

// publish never fails the calling operation.
func (s *ProductService) publish(ctx context.Context, eventType, productID string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(eventType, data); err != nil {
		s.logger.WarnContext(ctx, "failed to publish product event",
			slog.String("event", eventType),
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
	}
}

// isUUID accepts only the canonical 36 character form.
func isUUID(term string) bool {
	if len(term) != 36 {
		return false
	}
	_, err := uuid.Parse(term)
	return err == nil
}

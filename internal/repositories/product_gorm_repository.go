package repositories

import (
	"context"
	"errors"
	"strings"

	"catalog/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgUniqueViolation is the postgres SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("product_images.id ASC")
}

// Create inserts the product; gorm writes the images in the same transaction.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// List retrieves one page of products with their images.
func (r *GORMProductRepository) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", orderedImages).
		Order("created_at ASC").Order("id ASC").
		Limit(limit).Offset(offset).
		Find(&products).Error
	if err != nil {
		return nil, translateError(err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", orderedImages).
		Where("id = ?", id).
		Take(&product).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// GetByTitleOrSlug retrieves the first product whose title or slug matches, ignoring case.
func (r *GORMProductRepository) GetByTitleOrSlug(ctx context.Context, title, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images", orderedImages).
		Where("UPPER(title) = ? OR LOWER(slug) = ?", strings.ToUpper(title), strings.ToLower(slug)).
		Order("created_at ASC").Order("id ASC").
		Take(&product).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

// Update saves the product columns and optionally swaps its images.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product, replaceImages bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// An explicit select keeps Save from falling back to an insert.
		res := tx.Select("*").Omit(clause.Associations).Save(product)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		if !replaceImages {
			return nil
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if len(product.Images) == 0 {
			return nil
		}
		for i := range product.Images {
			product.Images[i].ID = 0
			product.Images[i].ProductID = product.ID
		}
		return tx.Create(&product.Images).Error
	})
	return translateError(err)
}

// Delete removes the images first, then the product.
func (r *GORMProductRepository) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Product{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
	return translateError(err)
}

// translateError maps driver errors onto the repository's error vocabulary.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		detail := pgErr.Detail
		if detail == "" {
			detail = pgErr.Message
		}
		return &ConflictError{Detail: detail, Err: err}
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return &ConflictError{Detail: sqliteErr.Error(), Err: err}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConflictError{Detail: "duplicate key value violates unique constraint", Err: err}
	}
	return err
}

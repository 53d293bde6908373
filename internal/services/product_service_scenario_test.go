package services_test

import (
	"context"
	"net/http"
	"testing"

	"catalog/internal/dto"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScenarioService() *services.ProductService {
	return services.NewProductService(repositories.NewInMemoryProductRepository(), nil, discardLogger())
}

func mug(title string, images ...string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Title:  title,
		Price:  ptr(12.0),
		Sizes:  []string{"M"},
		Gender: "unisex",
		Tags:   []string{"kitchen"},
		Images: images,
	}
}

func TestScenario_CreateThenReadBack(t *testing.T) {
	service := newScenarioService()
	ctx := context.Background()

	created, err := service.Create(ctx, mug("Blue Mug", "a.jpg", "b.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, created.Images)
	assert.Equal(t, "blue_mug", created.Slug)

	for _, term := range []string{"blue mug", "Blue Mug", "BLUE_MUG", created.ID} {
		got, err := service.FindOnePlain(ctx, term)
		require.NoError(t, err, term)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, created.Price, got.Price)
		assert.Equal(t, created.Tags, got.Tags)
		assert.Equal(t, []string{"a.jpg", "b.jpg"}, got.Images)
	}
}

func TestScenario_DuplicateTitleOrSlug(t *testing.T) {
	service := newScenarioService()
	ctx := context.Background()

	_, err := service.Create(ctx, mug("Blue Mug"))
	require.NoError(t, err)

	_, err = service.Create(ctx, mug("Blue Mug"))
	requireAppError(t, err, http.StatusBadRequest)

	sameSlug := mug("Another Mug")
	sameSlug.Slug = ptr("blue mug")
	_, err = service.Create(ctx, sameSlug)
	requireAppError(t, err, http.StatusBadRequest)
}

func TestScenario_SlugMatchEvenWhenTitleDiffers(t *testing.T) {
	service := newScenarioService()
	ctx := context.Background()

	req := mug("Classic Cotton Tee")
	req.Slug = ptr("t-shirt")
	created, err := service.Create(ctx, req)
	require.NoError(t, err)

	got, err := service.FindOne(ctx, "T-Shirt")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestScenario_PaginationWindow(t *testing.T) {
	service := newScenarioService()
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"One", "Two", "Three"} {
		p, err := service.Create(ctx, mug(title))
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	page, err := service.FindAll(ctx, dto.Pagination{Limit: ptr(1), Offset: ptr(1)})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[1], page[0].ID)
}

func TestScenario_MissingIDsAreNotFound(t *testing.T) {
	service := newScenarioService()
	ctx := context.Background()
	missing := "7d5b8c1e-3f4a-4b6c-9d8e-0a1b2c3d4e5f"

	_, err := service.FindOne(ctx, missing)
	requireAppError(t, err, http.StatusNotFound)

	_, err = service.Update(ctx, missing, dto.UpdateProductRequest{Stock: ptr(3)})
	requireAppError(t, err, http.StatusNotFound)

	err = service.Remove(ctx, missing)
	requireAppError(t, err, http.StatusNotFound)
}

func TestScenario_UpdateImagesContract(t *testing.T) {
	service := newScenarioService()
	ctx := context.Background()

	created, err := service.Create(ctx, mug("Blue Mug", "a.jpg", "b.jpg"))
	require.NoError(t, err)

	// no images field: images survive
	_, err = service.Update(ctx, created.ID, dto.UpdateProductRequest{Stock: ptr(9)})
	require.NoError(t, err)
	got, err := service.FindOnePlain(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Stock)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, got.Images)

	// images field: replaced
	_, err = service.Update(ctx, created.ID, dto.UpdateProductRequest{Images: []string{"c.jpg"}})
	require.NoError(t, err)
	got, err = service.FindOnePlain(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c.jpg"}, got.Images)

	// empty images field: cleared
	_, err = service.Update(ctx, created.ID, dto.UpdateProductRequest{Images: []string{}})
	require.NoError(t, err)
	got, err = service.FindOnePlain(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Images)
}

func TestScenario_RemoveThenLookup(t *testing.T) {
	service := newScenarioService()
	ctx := context.Background()

	created, err := service.Create(ctx, mug("Blue Mug", "a.jpg"))
	require.NoError(t, err)

	require.NoError(t, service.Remove(ctx, created.ID))

	_, err = service.FindOne(ctx, "Blue Mug")
	requireAppError(t, err, http.StatusNotFound)
}

package repositories

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbatai/internal/common"
	"arbatai/internal/models"
)

func tempRepo(t *testing.T) (CatalogRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	return NewFileCatalogRepository(path), path
}

func TestRead_MissingFileReturnsEmptyCatalog(t *testing.T) {
	repo, _ := tempRepo(t)

	doc, err := repo.Read(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.CatalogVersion, doc.Version)
	assert.Empty(t, doc.Categories)
	assert.Empty(t, doc.Products)
	assert.NotNil(t, doc.Categories)
	assert.NotNil(t, doc.Products)
}

func TestRead_MalformedJSONReturnsEmptyCatalog(t *testing.T) {
	repo, path := tempRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	doc, err := repo.Read(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.CatalogVersion, doc.Version)
	assert.Empty(t, doc.Categories)
}

func TestRead_WrongVersionReturnsEmptyCatalog(t *testing.T) {
	repo, path := tempRepo(t)
	raw := `{"version": 2, "updatedAt": "2024-01-01T00:00:00Z", "categories": [{"id": "x", "name": "X", "createdAt": "2024-01-01T00:00:00Z"}], "products": []}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	doc, err := repo.Read(context.Background())

	require.NoError(t, err)
	assert.Empty(t, doc.Categories)
}

func TestRead_MissingCollectionsReturnsEmptyCatalog(t *testing.T) {
	repo, path := tempRepo(t)
	raw := `{"version": 1, "updatedAt": "2024-01-01T00:00:00Z", "categories": null, "products": []}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	doc, err := repo.Read(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, doc.Categories)
	assert.Empty(t, doc.Categories)
}

func TestRead_IOErrorPropagates(t *testing.T) {
	// A directory at the catalog path is not "file absent"
	dir := t.TempDir()
	repo := NewFileCatalogRepository(dir)

	_, err := repo.Read(context.Background())

	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.KindStorage))
}

func TestWrite_RoundTrip(t *testing.T) {
	repo, _ := tempRepo(t)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := &models.CatalogData{
		Version:   models.CatalogVersion,
		UpdatedAt: created,
		Categories: []models.Category{
			{ID: "green-tea", Name: "Green Tea", CreatedAt: created},
		},
		Products: []models.Product{
			{
				ID:          "sencha",
				CategoryID:  "green-tea",
				Name:        "Sencha",
				Description: "Classic steamed green tea",
				PriceLabel:  "€7.50 / 100g",
				ImageURL:    "https://example.com/sencha.png",
				ImageAlt:    "Sencha",
				CreatedAt:   created,
			},
		},
	}

	require.NoError(t, repo.Write(context.Background(), doc))
	got, err := repo.Read(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.CatalogVersion, got.Version)
	assert.Equal(t, doc.Categories, got.Categories)
	assert.Equal(t, doc.Products, got.Products)
}

func TestWrite_CreatesDirectoryAndFormats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "catalog.json")
	repo := NewFileCatalogRepository(path)

	require.NoError(t, repo.Write(context.Background(), models.NewEmptyCatalog()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(raw), "\n"), "document should end with a newline")
	assert.Contains(t, string(raw), "  \"version\": 1", "document should be pretty-printed")
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	repo, path := tempRepo(t)

	require.NoError(t, repo.Write(context.Background(), models.NewEmptyCatalog()))
	require.NoError(t, repo.Write(context.Background(), models.NewEmptyCatalog()))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

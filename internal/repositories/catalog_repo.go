package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"arbatai/internal/common"
	"arbatai/internal/models"
)

// CatalogRepository owns the persisted catalog document. Every mutation goes
// through a full Read/Write cycle; Write replaces the whole document.
type CatalogRepository interface {
	Read(ctx context.Context) (*models.CatalogData, error)
	Write(ctx context.Context, doc *models.CatalogData) error
}

type fileCatalogRepo struct {
	path string
}

// NewFileCatalogRepository persists the catalog as a single JSON file at path.
func NewFileCatalogRepository(path string) CatalogRepository {
	return &fileCatalogRepo{path: path}
}

// Read loads the document from disk. An absent file, undecodable JSON, a
// version other than 1, or missing category/product arrays all yield a fresh
// empty document rather than an error; only real I/O failures propagate.
func (r *fileCatalogRepo) Read(ctx context.Context) (*models.CatalogData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewEmptyCatalog(), nil
		}
		return nil, common.NewStorageError(fmt.Sprintf("read catalog %s: %v", r.path, err))
	}

	var doc models.CatalogData
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Printf("WARNING: discarding malformed catalog document at %s: %v", r.path, err)
		return models.NewEmptyCatalog(), nil
	}
	if doc.Version != models.CatalogVersion || doc.Categories == nil || doc.Products == nil {
		log.Printf("WARNING: discarding catalog document at %s with unexpected shape", r.path)
		return models.NewEmptyCatalog(), nil
	}
	return &doc, nil
}

// Write persists the document atomically: serialize to a temp file in the
// same directory, then rename over the canonical path so concurrent readers
// never observe a partial write.
func (r *fileCatalogRepo) Write(ctx context.Context, doc *models.CatalogData) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return common.NewStorageError(fmt.Sprintf("create catalog directory %s: %v", dir, err))
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return common.NewStorageError(fmt.Sprintf("encode catalog: %v", err))
	}
	raw = append(raw, '\n')

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return common.NewStorageError(fmt.Sprintf("create temp catalog file: %v", err))
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return common.NewStorageError(fmt.Sprintf("write temp catalog file: %v", err))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return common.NewStorageError(fmt.Sprintf("sync temp catalog file: %v", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return common.NewStorageError(fmt.Sprintf("close temp catalog file: %v", err))
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return common.NewStorageError(fmt.Sprintf("replace catalog file %s: %v", r.path, err))
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"arbatai/internal/common"
	"arbatai/internal/models"
	"arbatai/internal/repositories"
)

const (
	maxCategoryNameLen = 60
	maxProductNameLen  = 80
	maxDescriptionLen  = 200
	maxPriceLabelLen   = 20
	maxImageURLLen     = 2000

	slugRetries   = 10
	slugSuffixLen = 4
)

// CatalogService is the mutation and query engine over the catalog document.
// Every mutation reads the current document, validates, derives a new
// snapshot, and persists it in one atomic swap.
type CatalogService interface {
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CreateProduct(ctx context.Context, input *models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	PublicCatalog(ctx context.Context) (*models.PublicCatalog, error)
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
}

func NewCatalogService(catalogRepo repositories.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = normalizeText(name)
	if name == "" {
		return nil, common.NewValidationError("category name is required")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return nil, common.NewValidationError(fmt.Sprintf("category name must be at most %d characters", maxCategoryNameLen))
	}

	doc, err := s.catalogRepo.Read(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range doc.Categories {
		if strings.EqualFold(c.Name, name) {
			return nil, common.NewConflictError(fmt.Sprintf("category %q already exists", c.Name))
		}
	}

	taken := make(map[string]bool, len(doc.Categories))
	for _, c := range doc.Categories {
		taken[c.ID] = true
	}

	category := models.Category{
		ID:        newID(name, taken),
		Name:      name,
		CreatedAt: time.Now(),
	}

	next := snapshot(doc)
	next.Categories = append(next.Categories, category)
	if err := s.catalogRepo.Write(ctx, next); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes the category and every product referencing it in a
// single document swap. Deleting an unknown id is a no-op: no error, no write.
func (s *catalogService) DeleteCategory(ctx context.Context, id string) error {
	doc, err := s.catalogRepo.Read(ctx)
	if err != nil {
		return err
	}

	found := false
	categories := make([]models.Category, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.ID == id {
			found = true
			continue
		}
		categories = append(categories, c)
	}
	if !found {
		return nil
	}

	products := make([]models.Product, 0, len(doc.Products))
	for _, p := range doc.Products {
		if p.CategoryID == id {
			continue
		}
		products = append(products, p)
	}

	next := snapshot(doc)
	next.Categories = categories
	next.Products = products
	return s.catalogRepo.Write(ctx, next)
}

func (s *catalogService) CreateProduct(ctx context.Context, input *models.ProductInput) (*models.Product, error) {
	categoryID := strings.TrimSpace(input.CategoryID)
	name := normalizeText(input.Name)
	description := normalizeText(input.Description)
	priceLabel := normalizeText(input.PriceLabel)
	imageURL := strings.TrimSpace(input.ImageURL)
	imageAlt := normalizeText(input.ImageAlt)
	badgeText := normalizeText(input.BadgeText)
	badgeVariant := strings.TrimSpace(input.BadgeVariant)

	if imageAlt == "" {
		imageAlt = name
	}

	if categoryID == "" {
		return nil, common.NewValidationError("category is required")
	}
	if name == "" {
		return nil, common.NewValidationError("product name is required")
	}
	if utf8.RuneCountInString(name) > maxProductNameLen {
		return nil, common.NewValidationError(fmt.Sprintf("product name must be at most %d characters", maxProductNameLen))
	}
	if description == "" {
		return nil, common.NewValidationError("description is required")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return nil, common.NewValidationError(fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	}
	if priceLabel == "" {
		return nil, common.NewValidationError("price label is required")
	}
	if utf8.RuneCountInString(priceLabel) > maxPriceLabelLen {
		return nil, common.NewValidationError(fmt.Sprintf("price label must be at most %d characters", maxPriceLabelLen))
	}
	if imageURL == "" {
		return nil, common.NewValidationError("image URL is required")
	}
	if utf8.RuneCountInString(imageURL) > maxImageURLLen {
		return nil, common.NewValidationError(fmt.Sprintf("image URL must be at most %d characters", maxImageURLLen))
	}
	parsed, err := url.Parse(imageURL)
	if err != nil || parsed.Scheme != "https" {
		return nil, common.NewValidationError("image URL must be a valid https URL")
	}
	if badgeVariant != "" && badgeVariant != models.BadgeDefault && badgeVariant != models.BadgeHot {
		return nil, common.NewValidationError(fmt.Sprintf("badge variant must be %q or %q", models.BadgeDefault, models.BadgeHot))
	}

	doc, err := s.catalogRepo.Read(ctx)
	if err != nil {
		return nil, err
	}

	categoryExists := false
	for _, c := range doc.Categories {
		if c.ID == categoryID {
			categoryExists = true
			break
		}
	}
	if !categoryExists {
		return nil, common.NewValidationError("category not found")
	}

	taken := make(map[string]bool, len(doc.Products))
	for _, p := range doc.Products {
		taken[p.ID] = true
	}

	product := models.Product{
		ID:          newID(name, taken),
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		PriceLabel:  priceLabel,
		ImageURL:    imageURL,
		ImageAlt:    imageAlt,
		CreatedAt:   time.Now(),
	}
	if badgeText != "" {
		product.BadgeText = &badgeText
	}
	if badgeVariant != "" {
		product.BadgeVariant = &badgeVariant
	}

	next := snapshot(doc)
	next.Products = append(next.Products, product)
	if err := s.catalogRepo.Write(ctx, next); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	doc, err := s.catalogRepo.Read(ctx)
	if err != nil {
		return err
	}

	found := false
	products := make([]models.Product, 0, len(doc.Products))
	for _, p := range doc.Products {
		if p.ID == id {
			found = true
			continue
		}
		products = append(products, p)
	}
	if !found {
		return nil
	}

	next := snapshot(doc)
	next.Products = products
	return s.catalogRepo.Write(ctx, next)
}

// PublicCatalog derives the storefront view: categories collated ascending by
// name, products restricted to existing categories and ordered newest first.
func (s *catalogService) PublicCatalog(ctx context.Context) (*models.PublicCatalog, error) {
	doc, err := s.catalogRepo.Read(ctx)
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, len(doc.Categories))
	copy(categories, doc.Categories)
	c := collate.New(language.Und)
	sort.SliceStable(categories, func(i, j int) bool {
		return c.CompareString(categories[i].Name, categories[j].Name) < 0
	})

	known := make(map[string]bool, len(categories))
	for _, cat := range categories {
		known[cat.ID] = true
	}
	products := make([]models.Product, 0, len(doc.Products))
	for _, p := range doc.Products {
		if known[p.CategoryID] {
			products = append(products, p)
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	return &models.PublicCatalog{Categories: categories, Products: products}, nil
}

// snapshot copies the document shell so mutations never touch the slices the
// repository handed out.
func snapshot(doc *models.CatalogData) *models.CatalogData {
	next := &models.CatalogData{
		Version:    models.CatalogVersion,
		UpdatedAt:  time.Now(),
		Categories: make([]models.Category, len(doc.Categories)),
		Products:   make([]models.Product, len(doc.Products)),
	}
	copy(next.Categories, doc.Categories)
	copy(next.Products, doc.Products)
	return next
}

// normalizeText trims and collapses internal whitespace runs to single spaces.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var (
	quoteChars  = strings.NewReplacer("'", "", "‘", "", "’", "", "\"", "", "“", "", "”", "")
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
)

// slugify lowercases, strips quotes, collapses non-alphanumeric runs to
// single hyphens and trims leading/trailing hyphens. May return "".
func slugify(name string) string {
	s := strings.ToLower(quoteChars.Replace(name))
	s = nonAlnumRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// newID derives a unique id from name. An empty slug falls back to a random
// identifier; slug collisions retry with short hex suffixes and finally fall
// back to a random identifier, so generation always terminates.
func newID(name string, taken map[string]bool) string {
	slug := slugify(name)
	if slug == "" {
		return uuid.NewString()
	}
	if !taken[slug] {
		return slug
	}
	for i := 0; i < slugRetries; i++ {
		candidate := slug + "-" + random.String(slugSuffixLen, random.Hex)
		if !taken[candidate] {
			return candidate
		}
	}
	return uuid.NewString()
}

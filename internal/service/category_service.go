package service

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/models"
	"github.com/TanzilStore/store_api/internal/repository"
	"github.com/TanzilStore/store_api/internal/utils"
)

// CategoryService manages the two-level category hierarchy.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	productRepo  *repository.ProductRepository
	collections  *Collections
}

// NewCategoryService constructs a new CategoryService.
func NewCategoryService(
	categoryRepo *repository.CategoryRepository,
	productRepo *repository.ProductRepository,
	collections *Collections,
) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, productRepo: productRepo, collections: collections}
}

// CategoryList is a category listing with the degradation flag.
type CategoryList struct {
	Categories []models.Category
	Fallback   bool
}

// Tree returns the categories nested as main categories with their
// subcategories attached. The storefront view only sees active ones.
func (s *CategoryService) Tree(activeOnly bool) *CategoryList {
	snap := s.collections.Categories(activeOnly)
	return &CategoryList{Categories: models.BuildCategoryTree(snap.Records), Fallback: snap.Fallback}
}

// Flat returns the categories as a flat list for the admin table.
func (s *CategoryService) Flat() *CategoryList {
	snap := s.collections.Categories(false)
	return &CategoryList{Categories: snap.Records, Fallback: snap.Fallback}
}

// Get returns a single category by ID.
func (s *CategoryService) Get(id string) (*models.Category, error) {
	cat, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrCategoryNotFound
		}
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) validateCategory(cat *models.Category) error {
	var messages []string
	if strings.TrimSpace(cat.Name) == "" {
		messages = append(messages, "name is required")
	}
	if strings.TrimSpace(cat.NameAr) == "" {
		messages = append(messages, "nameAr is required")
	}

	all, err := s.categoryRepo.GetAll()
	if err != nil {
		return err
	}
	byID := make(map[string]*models.Category, len(all))
	for i := range all {
		byID[all[i].ID] = &all[i]
	}
	if err := models.ValidateParent(cat, byID); err != nil {
		messages = append(messages, err.Error())
	}

	if len(messages) > 0 {
		return &utils.ValidationError{Messages: messages}
	}
	return nil
}

// Create validates and stores a new category.
func (s *CategoryService) Create(cat *models.Category) error {
	if cat.Type == "" {
		cat.Type = models.CategoryTypeMain
	}
	if cat.ID == "" {
		cat.ID = uuid.New().String()
	}
	if err := s.validateCategory(cat); err != nil {
		return err
	}

	now := time.Now()
	cat.CreatedAt = now
	cat.UpdatedAt = now

	if err := s.categoryRepo.Create(cat); err != nil {
		return err
	}
	log.Info().Str("category_id", cat.ID).Str("name", cat.Name).Msg("category created")
	return nil
}

// Update validates and persists changes to an existing category.
func (s *CategoryService) Update(cat *models.Category) error {
	existing, err := s.Get(cat.ID)
	if err != nil {
		return err
	}
	if err := s.validateCategory(cat); err != nil {
		return err
	}

	cat.CreatedAt = existing.CreatedAt
	cat.UpdatedAt = time.Now()

	if err := s.categoryRepo.Update(cat); err != nil {
		return err
	}
	log.Info().Str("category_id", cat.ID).Msg("category updated")
	return nil
}

// Delete removes a category. A category still referenced by products or
// by subcategories cannot be deleted.
func (s *CategoryService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	children, err := s.categoryRepo.CountChildren(id)
	if err != nil {
		return err
	}
	if children > 0 {
		return utils.ErrCategoryInUse
	}

	products, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if products > 0 {
		return utils.ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	log.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/gastropro/gastropro/internal/models"
	apperrors "github.com/gastropro/gastropro/pkg/errors"
)

// MenuItemInput describes menu item create payloads.
type MenuItemInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	ImagePath   string
	Tags        string
	IsActive    *bool
}

// MenuItemUpdate describes partial update payloads; nil fields stay unchanged.
type MenuItemUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	ImagePath   *string
	Tags        *string
	IsActive    *bool
}

// ListMenuInput filters menu listings.
type ListMenuInput struct {
	Category   string
	ActiveOnly bool
}

// MenuService manages the menu catalogue.
type MenuService struct {
	db *gorm.DB
}

// NewMenuService constructs a MenuService.
func NewMenuService(db *gorm.DB) (*MenuService, error) {
	if db == nil {
		return nil, errors.New("menu service: db is required")
	}
	return &MenuService{db: db}, nil
}

// List returns menu items ordered by category then name.
func (s *MenuService) List(ctx context.Context, input ListMenuInput) ([]models.MenuItem, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.MenuItem{})
	if category := strings.TrimSpace(input.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if input.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var items []models.MenuItem
	if err := query.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("menu service: list items: %w", err)
	}
	return items, nil
}

// Get returns one menu item by ID.
func (s *MenuService) Get(ctx context.Context, id string) (*models.MenuItem, error) {
	ctx = ensureContext(ctx)

	var item models.MenuItem
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("menu service: load item: %w", err)
	}
	return &item, nil
}

// Create persists a new menu item.
func (s *MenuService) Create(ctx context.Context, input MenuItemInput) (*models.MenuItem, error) {
	ctx = ensureContext(ctx)

	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewBadRequest("menu item name is required")
	}
	if input.Price < 0 {
		return nil, apperrors.NewBadRequest("menu item price must not be negative")
	}

	item := models.MenuItem{
		Name:        input.Name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Category:    input.Category,
		ImagePath:   strings.TrimSpace(input.ImagePath),
		Tags:        strings.TrimSpace(input.Tags),
		IsActive:    true,
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	item.Normalise()

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("menu service: create item: %w", err)
	}
	return &item, nil
}

// Update applies a partial update to a menu item.
func (s *MenuService) Update(ctx context.Context, id string, input MenuItemUpdate) (*models.MenuItem, error) {
	ctx = ensureContext(ctx)

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewBadRequest("menu item name is required")
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.NewBadRequest("menu item price must not be negative")
		}
		updates["price"] = *input.Price
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.ImagePath != nil {
		updates["image_path"] = strings.TrimSpace(*input.ImagePath)
	}
	if input.Tags != nil {
		updates["tags"] = strings.TrimSpace(*input.Tags)
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("menu service: update item: %w", err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a menu item.
func (s *MenuService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MenuItem{})
	if result.Error != nil {
		return fmt.Errorf("menu service: delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Categories returns the distinct menu categories in use.
func (s *MenuService) Categories(ctx context.Context) ([]string, error) {
	ctx = ensureContext(ctx)

	var categories []string
	if err := s.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Distinct("category").
		Where("category <> ''").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("menu service: list categories: %w", err)
	}
	return categories, nil
}

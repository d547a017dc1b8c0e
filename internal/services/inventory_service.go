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

// InventoryItemInput describes inventory create payloads.
type InventoryItemInput struct {
	Name          string
	Category      string
	CurrentStock  float64
	Unit          string
	MinimumStock  float64
	Supplier      string
	IsAlcohol     bool
	AlcoholType   *string
	AlcoholVolume *float64
}

// InventoryItemUpdate describes partial update payloads; nil fields stay unchanged.
type InventoryItemUpdate struct {
	Name          *string
	Category      *string
	CurrentStock  *float64
	Unit          *string
	MinimumStock  *float64
	Supplier      *string
	IsAlcohol     *bool
	AlcoholType   *string
	AlcoholVolume *float64
}

// ListInventoryInput filters inventory listings.
type ListInventoryInput struct {
	Category string
	// LowOnly restricts the listing to items at or below their reorder
	// threshold, including out-of-stock items.
	LowOnly bool
}

// InventoryService manages stock levels and raises inventory alerts through
// the notification triggers on threshold crossings.
type InventoryService struct {
	db     *gorm.DB
	events *NotificationEvents
}

// NewInventoryService constructs an InventoryService. The events facade is
// optional; without it stock changes stay silent.
func NewInventoryService(db *gorm.DB, events *NotificationEvents) (*InventoryService, error) {
	if db == nil {
		return nil, errors.New("inventory service: db is required")
	}
	return &InventoryService{db: db, events: events}, nil
}

// List returns inventory items ordered by category then name.
func (s *InventoryService) List(ctx context.Context, input ListInventoryInput) ([]models.InventoryItem, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.InventoryItem{})
	if category := strings.TrimSpace(input.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if input.LowOnly {
		query = query.Where("current_stock <= minimum_stock")
	}

	var items []models.InventoryItem
	if err := query.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("inventory service: list items: %w", err)
	}
	return items, nil
}

// ListAll returns the full inventory snapshot. It satisfies the
// InventoryLister interface used by the notification alert sweep.
func (s *InventoryService) ListAll(ctx context.Context) ([]models.InventoryItem, error) {
	return s.List(ctx, ListInventoryInput{})
}

// Get returns one inventory item by ID.
func (s *InventoryService) Get(ctx context.Context, id string) (*models.InventoryItem, error) {
	ctx = ensureContext(ctx)

	var item models.InventoryItem
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("inventory service: load item: %w", err)
	}
	return &item, nil
}

// Create persists a new inventory item. An item created already below its
// threshold raises the matching alert immediately.
func (s *InventoryService) Create(ctx context.Context, input InventoryItemInput) (*models.InventoryItem, error) {
	ctx = ensureContext(ctx)

	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewBadRequest("inventory item name is required")
	}
	if input.CurrentStock < 0 || input.MinimumStock < 0 {
		return nil, apperrors.NewBadRequest("stock levels must not be negative")
	}

	item := models.InventoryItem{
		Name:          input.Name,
		Category:      input.Category,
		CurrentStock:  input.CurrentStock,
		Unit:          strings.TrimSpace(input.Unit),
		MinimumStock:  input.MinimumStock,
		Supplier:      input.Supplier,
		IsAlcohol:     input.IsAlcohol,
		AlcoholType:   input.AlcoholType,
		AlcoholVolume: input.AlcoholVolume,
	}
	item.Normalise()

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("inventory service: create item: %w", err)
	}

	// Treat creation as a drop from a healthy level so threshold alerts fire.
	s.events.StockChanged(ctx, &item, item.MinimumStock+1)
	return &item, nil
}

// Update applies a partial update to an inventory item. Stock changes go
// through the same threshold detection as AdjustStock.
func (s *InventoryService) Update(ctx context.Context, id string, input InventoryItemUpdate) (*models.InventoryItem, error) {
	ctx = ensureContext(ctx)

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	previousStock := item.CurrentStock

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewBadRequest("inventory item name is required")
		}
		updates["name"] = name
	}
	if input.Category != nil {
		updates["category"] = strings.TrimSpace(*input.Category)
	}
	if input.CurrentStock != nil {
		if *input.CurrentStock < 0 {
			return nil, apperrors.NewBadRequest("stock levels must not be negative")
		}
		updates["current_stock"] = *input.CurrentStock
	}
	if input.Unit != nil {
		updates["unit"] = strings.TrimSpace(*input.Unit)
	}
	if input.MinimumStock != nil {
		if *input.MinimumStock < 0 {
			return nil, apperrors.NewBadRequest("stock levels must not be negative")
		}
		updates["minimum_stock"] = *input.MinimumStock
	}
	if input.Supplier != nil {
		updates["supplier"] = strings.TrimSpace(*input.Supplier)
	}
	if input.IsAlcohol != nil {
		updates["is_alcohol"] = *input.IsAlcohol
	}
	if input.AlcoholType != nil {
		updates["alcohol_type"] = *input.AlcoholType
	}
	if input.AlcoholVolume != nil {
		updates["alcohol_volume"] = *input.AlcoholVolume
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("inventory service: update item: %w", err)
		}
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.CurrentStock != previousStock || input.MinimumStock != nil {
		s.events.StockChanged(ctx, updated, previousStock)
	}
	return updated, nil
}

// AdjustStock changes the stock level by a signed delta and raises alerts on
// downward threshold crossings. The level never goes below zero.
func (s *InventoryService) AdjustStock(ctx context.Context, id string, delta float64) (*models.InventoryItem, error) {
	ctx = ensureContext(ctx)

	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previousStock := item.CurrentStock
	newStock := previousStock + delta
	if newStock < 0 {
		newStock = 0
	}

	if err := s.db.WithContext(ctx).Model(item).
		Update("current_stock", newStock).Error; err != nil {
		return nil, fmt.Errorf("inventory service: adjust stock: %w", err)
	}
	item.CurrentStock = newStock

	s.events.StockChanged(ctx, item, previousStock)
	return item, nil
}

// Delete removes an inventory item.
func (s *InventoryService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.InventoryItem{})
	if result.Error != nil {
		return fmt.Errorf("inventory service: delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

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

// OrderLineInput is one requested order line.
type OrderLineInput struct {
	MenuItemID          string
	Quantity            int
	SpecialInstructions string
}

// CreateOrderInput describes order creation payloads.
type CreateOrderInput struct {
	TableNumber  int
	CustomerName string
	Items        []OrderLineInput
}

// ListOrdersInput filters order listings.
type ListOrdersInput struct {
	Status string
	// ActiveOnly restricts the listing to orders still in the kitchen.
	ActiveOnly bool
	Limit      int
	Offset     int
}

// OrderService manages customer orders and raises order notifications.
type OrderService struct {
	db     *gorm.DB
	events *NotificationEvents
}

// NewOrderService constructs an OrderService. The events facade is optional.
func NewOrderService(db *gorm.DB, events *NotificationEvents) (*OrderService, error) {
	if db == nil {
		return nil, errors.New("order service: db is required")
	}
	return &OrderService{db: db, events: events}, nil
}

// List returns orders newest first with their line items preloaded.
func (s *OrderService) List(ctx context.Context, input ListOrdersInput) ([]models.Order, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.Order{}).Preload("Items").Preload("Items.MenuItem")
	if status := strings.ToLower(strings.TrimSpace(input.Status)); status != "" {
		if !models.ValidOrderStatus(status) {
			return nil, apperrors.NewBadRequest(fmt.Sprintf("invalid order status %q", input.Status))
		}
		query = query.Where("status = ?", status)
	}
	if input.ActiveOnly {
		query = query.Where("status IN ?", []string{
			models.OrderStatusPending,
			models.OrderStatusPreparing,
			models.OrderStatusReady,
			models.OrderStatusDelayed,
		})
	}

	limit := input.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").
		Limit(limit).
		Offset(max(0, input.Offset)).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("order service: list orders: %w", err)
	}
	return orders, nil
}

// Get returns one order with its line items preloaded.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	ctx = ensureContext(ctx)

	var order models.Order
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.MenuItem").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("order service: load order: %w", err)
	}
	return &order, nil
}

// Create places a new order. Line prices come from the referenced menu items
// at creation time; the total is computed server side. Placing an order raises
// an order_created notification.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	ctx = ensureContext(ctx)

	if len(input.Items) == 0 {
		return nil, apperrors.NewBadRequest("order requires at least one item")
	}
	if input.TableNumber < 0 {
		return nil, apperrors.NewBadRequest("table number must not be negative")
	}

	order := models.Order{
		TableNumber:  input.TableNumber,
		CustomerName: input.CustomerName,
		Status:       models.OrderStatusPending,
	}
	order.Normalise()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, line := range input.Items {
			if line.Quantity <= 0 {
				return apperrors.NewBadRequest("order item quantity must be positive")
			}

			var menuItem models.MenuItem
			if err := tx.Where("id = ?", strings.TrimSpace(line.MenuItemID)).First(&menuItem).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewBadRequest(fmt.Sprintf("unknown menu item %q", line.MenuItemID))
				}
				return fmt.Errorf("load menu item: %w", err)
			}
			if !menuItem.IsActive {
				return apperrors.NewBadRequest(fmt.Sprintf("menu item %q is not available", menuItem.Name))
			}

			order.Items = append(order.Items, models.OrderItem{
				MenuItemID:          menuItem.ID,
				Quantity:            line.Quantity,
				SpecialInstructions: strings.TrimSpace(line.SpecialInstructions),
			})
			total += menuItem.Price * float64(line.Quantity)
		}

		order.TotalAmount = total
		return tx.Create(&order).Error
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, fmt.Errorf("order service: create order: %w", err)
	}

	s.events.OrderCreated(ctx, &order)
	return s.Get(ctx, order.ID)
}

// UpdateStatus transitions an order to a new status. Transitions to ready or
// delayed raise the matching notifications.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	ctx = ensureContext(ctx)

	status = strings.ToLower(strings.TrimSpace(status))
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("invalid order status %q", status))
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previousStatus := order.Status
	if previousStatus == status {
		return order, nil
	}

	if err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("order service: update status: %w", err)
	}
	order.Status = status

	s.events.OrderStatusChanged(ctx, order, previousStatus)
	return order, nil
}

// Delete removes an order and its line items.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Order{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("order service: delete order: %w", err)
	}
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gastropro/gastropro/internal/models"
	apperrors "github.com/gastropro/gastropro/pkg/errors"
)

// StaffMemberInput describes staff create payloads.
type StaffMemberInput struct {
	Name         string
	Position     string
	Email        string
	Phone        string
	HireDate     *time.Time
	IsActive     *bool
	ProfileImage string
}

// StaffMemberUpdate describes partial update payloads; nil fields stay unchanged.
type StaffMemberUpdate struct {
	Name         *string
	Position     *string
	Email        *string
	Phone        *string
	HireDate     *time.Time
	IsActive     *bool
	ProfileImage *string
}

// ListStaffInput filters staff listings.
type ListStaffInput struct {
	Position   string
	ActiveOnly bool
}

// StaffService manages staff records.
type StaffService struct {
	db *gorm.DB
}

// NewStaffService constructs a StaffService.
func NewStaffService(db *gorm.DB) (*StaffService, error) {
	if db == nil {
		return nil, errors.New("staff service: db is required")
	}
	return &StaffService{db: db}, nil
}

// List returns staff members ordered by name.
func (s *StaffService) List(ctx context.Context, input ListStaffInput) ([]models.StaffMember, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.StaffMember{})
	if position := strings.TrimSpace(input.Position); position != "" {
		query = query.Where("position = ?", position)
	}
	if input.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	var members []models.StaffMember
	if err := query.Order("name ASC").Find(&members).Error; err != nil {
		return nil, fmt.Errorf("staff service: list members: %w", err)
	}
	return members, nil
}

// Get returns one staff member by ID.
func (s *StaffService) Get(ctx context.Context, id string) (*models.StaffMember, error) {
	ctx = ensureContext(ctx)

	var member models.StaffMember
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("staff service: load member: %w", err)
	}
	return &member, nil
}

// Create persists a new staff member. Emails must be unique.
func (s *StaffService) Create(ctx context.Context, input StaffMemberInput) (*models.StaffMember, error) {
	ctx = ensureContext(ctx)

	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.NewBadRequest("staff member name is required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperrors.NewBadRequest("staff member email is required")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.StaffMember{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("staff service: check email: %w", err)
	}
	if count > 0 {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("staff member with email %q already exists", email))
	}

	member := models.StaffMember{
		Name:         input.Name,
		Position:     input.Position,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		HireDate:     input.HireDate,
		IsActive:     true,
		ProfileImage: strings.TrimSpace(input.ProfileImage),
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}
	member.Normalise()

	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, fmt.Errorf("staff service: create member: %w", err)
	}
	return &member, nil
}

// Update applies a partial update to a staff member.
func (s *StaffService) Update(ctx context.Context, id string, input StaffMemberUpdate) (*models.StaffMember, error) {
	ctx = ensureContext(ctx)

	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewBadRequest("staff member name is required")
		}
		updates["name"] = name
	}
	if input.Position != nil {
		updates["position"] = strings.TrimSpace(*input.Position)
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, apperrors.NewBadRequest("staff member email is required")
		}
		if email != member.Email {
			var count int64
			if err := s.db.WithContext(ctx).Model(&models.StaffMember{}).
				Where("email = ? AND id <> ?", email, id).
				Count(&count).Error; err != nil {
				return nil, fmt.Errorf("staff service: check email: %w", err)
			}
			if count > 0 {
				return nil, apperrors.NewBadRequest(fmt.Sprintf("staff member with email %q already exists", email))
			}
		}
		updates["email"] = email
	}
	if input.Phone != nil {
		updates["phone"] = strings.TrimSpace(*input.Phone)
	}
	if input.HireDate != nil {
		updates["hire_date"] = *input.HireDate
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if input.ProfileImage != nil {
		updates["profile_image"] = strings.TrimSpace(*input.ProfileImage)
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(member).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("staff service: update member: %w", err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a staff member record.
func (s *StaffService) Delete(ctx context.Context, id string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.StaffMember{})
	if result.Error != nil {
		return fmt.Errorf("staff service: delete member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

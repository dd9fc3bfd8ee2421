package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"userhub/internal/model"
)

type SignupEventRepository struct {
	db *gorm.DB
}

func NewSignupEventRepository(db *gorm.DB) *SignupEventRepository {
	return &SignupEventRepository{db: db}
}

func (r *SignupEventRepository) Create(event *model.SignupEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create signup event failed: %w", err)
	}
	return nil
}

func (r *SignupEventRepository) ListByUserID(ctx context.Context, userID uint, limit int) ([]model.SignupEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var events []model.SignupEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list signup events failed: %w", err)
	}
	return events, nil
}

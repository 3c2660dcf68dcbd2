package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/domain/notification"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/mappers"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/models"
	"github.com/parlourcover/parlour/internal/shared/db"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := mappers.NotificationToModel(n)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	n.SetID(model.ID)
	return nil
}

func (r *NotificationRepository) List(ctx context.Context, filter notification.Filter) ([]*notification.Notification, int64, error) {
	var rows []*models.NotificationModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.NotificationModel{})
	if filter.ParlourID != 0 {
		query = query.Where("parlour_id = ?", filter.ParlourID)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	if err := query.Order("created_at DESC").Scopes(db.Paginate(filter.Page, filter.PageSize)).Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	out := make([]*notification.Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, mappers.NotificationToDomain(row))
	}
	return out, total, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/mappers"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/models"
	"github.com/parlourcover/parlour/internal/shared/db"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type ParlourRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewParlourRepository(db *gorm.DB, logger logger.Interface) parlour.Repository {
	return &ParlourRepositoryImpl{db: db, logger: logger}
}

func (r *ParlourRepositoryImpl) Create(ctx context.Context, p *parlour.Parlour) error {
	model := mappers.ParlourToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create parlour", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create parlour: %w", err)
	}
	return p.SetID(model.ID)
}

func (r *ParlourRepositoryImpl) GetByID(ctx context.Context, id uint) (*parlour.Parlour, error) {
	var model models.ParlourModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, parlour.ErrParlourNotFound
		}
		r.logger.Errorw("failed to get parlour", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get parlour: %w", err)
	}
	return mappers.ParlourToDomain(&model)
}

func (r *ParlourRepositoryImpl) Update(ctx context.Context, p *parlour.Parlour) error {
	if err := db.GetTxFromContext(ctx, r.db).Save(mappers.ParlourToModel(p)).Error; err != nil {
		r.logger.Errorw("failed to update parlour", "id", p.ID(), "error", err)
		return fmt.Errorf("failed to update parlour: %w", err)
	}
	return nil
}

func (r *ParlourRepositoryImpl) List(ctx context.Context, page, pageSize int) ([]*parlour.Parlour, int64, error) {
	var rows []*models.ParlourModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.ParlourModel{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count parlours: %w", err)
	}
	if err := query.Order("name ASC").Scopes(db.Paginate(page, pageSize)).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list parlours", "error", err)
		return nil, 0, fmt.Errorf("failed to list parlours: %w", err)
	}

	out := make([]*parlour.Parlour, 0, len(rows))
	for _, row := range rows {
		p, err := mappers.ParlourToDomain(row)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to map parlour %d: %w", row.ID, err)
		}
		out = append(out, p)
	}
	return out, total, nil
}

func (r *ParlourRepositoryImpl) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ParlourModel{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check parlour name: %w", err)
	}
	return count > 0, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/mappers"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/models"
	"github.com/parlourcover/parlour/internal/shared/db"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) plan.Repository {
	return &PlanRepositoryImpl{db: db, logger: logger}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, p *plan.Plan) error {
	model, err := mappers.PlanToModel(p)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "name", model.Name, "error", err)
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return p.SetID(model.ID)
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*plan.Plan, error) {
	var model models.PlanModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, plan.ErrPlanNotFound
		}
		r.logger.Errorw("failed to get plan", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	return mappers.PlanToDomain(&model)
}

func (r *PlanRepositoryImpl) Update(ctx context.Context, p *plan.Plan) error {
	model, err := mappers.PlanToModel(p)
	if err != nil {
		return err
	}

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update plan", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update plan: %w", err)
	}
	return nil
}

func (r *PlanRepositoryImpl) List(ctx context.Context, filter plan.Filter) ([]*plan.Plan, int64, error) {
	var rows []*models.PlanModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.PlanModel{})
	if filter.ParlourID != 0 {
		query = query.Where("parlour_id = ?", filter.ParlourID)
	}
	if filter.State != nil {
		query = query.Scopes(db.InState(*filter.State))
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count plans", "error", err)
		return nil, 0, fmt.Errorf("failed to count plans: %w", err)
	}
	if err := query.Order("name ASC").Scopes(db.Paginate(filter.Page, filter.PageSize)).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, 0, fmt.Errorf("failed to list plans: %w", err)
	}

	out := make([]*plan.Plan, 0, len(rows))
	for _, row := range rows {
		p, err := mappers.PlanToDomain(row)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to map plan %d: %w", row.ID, err)
		}
		out = append(out, p)
	}
	return out, total, nil
}

func (r *PlanRepositoryImpl) ExistsByName(ctx context.Context, parlourID uint, name string) (bool, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).Model(&models.PlanModel{}).
		Where("parlour_id = ? AND name = ?", parlourID, name).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check plan name: %w", err)
	}
	return count > 0, nil
}

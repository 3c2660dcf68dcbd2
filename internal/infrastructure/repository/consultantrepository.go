package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/domain/consultant"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/mappers"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/models"
	"github.com/parlourcover/parlour/internal/shared/db"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/mapper"
)

type ConsultantRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewConsultantRepository(db *gorm.DB, logger logger.Interface) consultant.Repository {
	return &ConsultantRepositoryImpl{db: db, logger: logger}
}

func (r *ConsultantRepositoryImpl) Create(ctx context.Context, c *consultant.Consultant) error {
	model := mappers.ConsultantToModel(c)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create consultant", "email", model.Email, "error", err)
		return fmt.Errorf("failed to create consultant: %w", err)
	}
	return c.SetID(model.ID)
}

func (r *ConsultantRepositoryImpl) GetByID(ctx context.Context, id uint) (*consultant.Consultant, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ConsultantRepositoryImpl) GetByEmail(ctx context.Context, email string) (*consultant.Consultant, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *ConsultantRepositoryImpl) Update(ctx context.Context, c *consultant.Consultant) error {
	if err := db.GetTxFromContext(ctx, r.db).Save(mappers.ConsultantToModel(c)).Error; err != nil {
		r.logger.Errorw("failed to update consultant", "id", c.ID(), "error", err)
		return fmt.Errorf("failed to update consultant: %w", err)
	}
	return nil
}

func (r *ConsultantRepositoryImpl) List(ctx context.Context, filter consultant.Filter) ([]*consultant.Consultant, int64, error) {
	var rows []*models.ConsultantModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.ConsultantModel{})
	if filter.ParlourID != nil {
		query = query.Where("parlour_id = ?", *filter.ParlourID)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.State != nil {
		query = query.Scopes(db.InState(*filter.State))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count consultants: %w", err)
	}
	if err := query.Order("last_name ASC, first_name ASC").Scopes(db.Paginate(filter.Page, filter.PageSize)).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list consultants", "error", err)
		return nil, 0, fmt.Errorf("failed to list consultants: %w", err)
	}

	out, err := mapper.MapRows(rows, mappers.ConsultantToDomain, consultantRowID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map consultants: %w", err)
	}
	return out, total, nil
}

func (r *ConsultantRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ConsultantModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check consultant email: %w", err)
	}
	return count > 0, nil
}

func (r *ConsultantRepositoryImpl) first(ctx context.Context, cond string, arg interface{}) (*consultant.Consultant, error) {
	var model models.ConsultantModel

	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, consultant.ErrConsultantNotFound
		}
		r.logger.Errorw("failed to get consultant", "error", err)
		return nil, fmt.Errorf("failed to get consultant: %w", err)
	}
	return mappers.ConsultantToDomain(&model)
}

func consultantRowID(m *models.ConsultantModel) uint { return m.ID }

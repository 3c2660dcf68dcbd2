package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/mappers"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/models"
	"github.com/parlourcover/parlour/internal/shared/db"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type ApplicantRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewApplicantRepository(db *gorm.DB, logger logger.Interface) membership.ApplicantRepository {
	return &ApplicantRepositoryImpl{db: db, logger: logger}
}

func (r *ApplicantRepositoryImpl) Create(ctx context.Context, a *membership.Applicant) error {
	model := mappers.ApplicantToModel(a)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create applicant", "policy_num", model.PolicyNum, "error", err)
		return fmt.Errorf("failed to create applicant: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *ApplicantRepositoryImpl) GetByID(ctx context.Context, id uint) (*membership.Applicant, error) {
	var model models.ApplicantModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membership.ErrApplicantNotFound
		}
		r.logger.Errorw("failed to get applicant", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}

	return mappers.ApplicantToDomain(&model)
}

func (r *ApplicantRepositoryImpl) Update(ctx context.Context, a *membership.Applicant) error {
	model := mappers.ApplicantToModel(a)

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update applicant", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update applicant: %w", err)
	}
	return nil
}

func (r *ApplicantRepositoryImpl) List(ctx context.Context, filter membership.ApplicantFilter) ([]*membership.Applicant, int64, error) {
	var rows []*models.ApplicantModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.ApplicantModel{})
	if filter.ParlourID != 0 {
		query = query.Where("parlour_id = ?", filter.ParlourID)
	}
	if filter.ConsultantID != nil {
		query = query.Where("consultant_id = ?", *filter.ConsultantID)
	}
	if filter.PlanID != nil {
		query = query.Where("plan_id = ?", *filter.PlanID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PolicyNum != "" {
		query = query.Where("policy_num = ?", filter.PolicyNum)
	}
	if len(filter.States) > 0 {
		query = query.Scopes(db.InState(filter.States...))
	} else {
		query = query.Scopes(db.InState(lifecycle.StateActive.String(), lifecycle.StateArchived.String()))
	}

	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count applicants", "error", err)
		return nil, 0, fmt.Errorf("failed to count applicants: %w", err)
	}

	if err := query.Order("created_at DESC").Order("id DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list applicants", "error", err)
		return nil, 0, fmt.Errorf("failed to list applicants: %w", err)
	}

	out, err := r.toDomain(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ApplicantRepositoryImpl) ListActive(ctx context.Context) ([]*membership.Applicant, error) {
	var rows []*models.ApplicantModel

	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.InState(lifecycle.StateActive.String())).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list active applicants", "error", err)
		return nil, fmt.Errorf("failed to list active applicants: %w", err)
	}
	return r.toDomain(rows)
}

func (r *ApplicantRepositoryImpl) ListActiveByPlanID(ctx context.Context, planID uint) ([]*membership.Applicant, error) {
	var rows []*models.ApplicantModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("plan_id = ?", planID).
		Scopes(db.InState(lifecycle.StateActive.String())).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list applicants by plan", "plan_id", planID, "error", err)
		return nil, fmt.Errorf("failed to list applicants by plan: %w", err)
	}
	return r.toDomain(rows)
}

func (r *ApplicantRepositoryImpl) toDomain(rows []*models.ApplicantModel) ([]*membership.Applicant, error) {
	out := make([]*membership.Applicant, 0, len(rows))
	for _, m := range rows {
		a, err := mappers.ApplicantToDomain(m)
		if err != nil {
			r.logger.Errorw("failed to map applicant", "id", m.ID, "error", err)
			return nil, fmt.Errorf("failed to map applicant %d: %w", m.ID, err)
		}
		out = append(out, a)
	}
	return out, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/domain/membership"
	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/mappers"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/models"
	"github.com/parlourcover/parlour/internal/shared/db"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/mapper"
)

var activeState = lifecycle.StateActive.String()

type MainMemberRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewMainMemberRepository(db *gorm.DB, logger logger.Interface) membership.MainMemberRepository {
	return &MainMemberRepositoryImpl{db: db, logger: logger}
}

func (r *MainMemberRepositoryImpl) Create(ctx context.Context, m *membership.MainMember) error {
	model := mappers.MainMemberToModel(m)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create main member", "applicant_id", model.ApplicantID, "error", err)
		return fmt.Errorf("failed to create main member: %w", err)
	}
	return m.SetID(model.ID)
}

func (r *MainMemberRepositoryImpl) GetByID(ctx context.Context, id uint) (*membership.MainMember, error) {
	var model models.MainMemberModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membership.ErrMainMemberNotFound
		}
		r.logger.Errorw("failed to get main member", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get main member: %w", err)
	}
	return mappers.MainMemberToDomain(&model)
}

func (r *MainMemberRepositoryImpl) Update(ctx context.Context, m *membership.MainMember) error {
	model := mappers.MainMemberToModel(m)

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update main member", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update main member: %w", err)
	}
	return nil
}

func (r *MainMemberRepositoryImpl) ListActiveByApplicantID(ctx context.Context, applicantID uint) ([]*membership.MainMember, error) {
	var rows []*models.MainMemberModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("applicant_id = ?", applicantID).
		Scopes(db.InState(activeState)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list main members", "applicant_id", applicantID, "error", err)
		return nil, fmt.Errorf("failed to list main members: %w", err)
	}

	out, err := mapper.MapRows(rows, mappers.MainMemberToDomain, func(m *models.MainMemberModel) uint { return m.ID })
	if err != nil {
		return nil, fmt.Errorf("failed to map main members: %w", err)
	}
	return out, nil
}

func (r *MainMemberRepositoryImpl) ListActiveByApplicantIDs(ctx context.Context, applicantIDs []uint) (map[uint]*membership.MainMember, error) {
	out := make(map[uint]*membership.MainMember, len(applicantIDs))
	if len(applicantIDs) == 0 {
		return out, nil
	}

	var rows []*models.MainMemberModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("applicant_id IN ?", applicantIDs).
		Scopes(db.InState(activeState)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list main members by applicants", "count", len(applicantIDs), "error", err)
		return nil, fmt.Errorf("failed to list main members: %w", err)
	}

	for _, row := range rows {
		if _, seen := out[row.ApplicantID]; seen {
			continue
		}
		m, err := mappers.MainMemberToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("failed to map main member %d: %w", row.ID, err)
		}
		out[row.ApplicantID] = m
	}
	return out, nil
}

func (r *MainMemberRepositoryImpl) ExistsActiveIDNumber(ctx context.Context, parlourID uint, idNumber string, excludeID uint) (bool, error) {
	return existsActiveIDNumber(db.GetTxFromContext(ctx, r.db).Model(&models.MainMemberModel{}), parlourID, idNumber, excludeID)
}

type ExtendedMemberRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewExtendedMemberRepository(db *gorm.DB, logger logger.Interface) membership.ExtendedMemberRepository {
	return &ExtendedMemberRepositoryImpl{db: db, logger: logger}
}

func (r *ExtendedMemberRepositoryImpl) Create(ctx context.Context, m *membership.ExtendedMember) error {
	model := mappers.ExtendedMemberToModel(m)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create extended member", "applicant_id", model.ApplicantID, "error", err)
		return fmt.Errorf("failed to create extended member: %w", err)
	}
	return m.SetID(model.ID)
}

func (r *ExtendedMemberRepositoryImpl) GetByID(ctx context.Context, id uint) (*membership.ExtendedMember, error) {
	var model models.ExtendedMemberModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membership.ErrExtendedMemberNotFound
		}
		r.logger.Errorw("failed to get extended member", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get extended member: %w", err)
	}
	return mappers.ExtendedMemberToDomain(&model)
}

func (r *ExtendedMemberRepositoryImpl) Update(ctx context.Context, m *membership.ExtendedMember) error {
	model := mappers.ExtendedMemberToModel(m)

	if err := db.GetTxFromContext(ctx, r.db).Save(model).Error; err != nil {
		r.logger.Errorw("failed to update extended member", "id", model.ID, "error", err)
		return fmt.Errorf("failed to update extended member: %w", err)
	}
	return nil
}

func (r *ExtendedMemberRepositoryImpl) ListActiveByApplicantID(ctx context.Context, applicantID uint) ([]*membership.ExtendedMember, error) {
	return r.find(ctx, "applicant_id = ?", applicantID)
}

func (r *ExtendedMemberRepositoryImpl) ListInWaitingPeriod(ctx context.Context) ([]*membership.ExtendedMember, error) {
	return r.find(ctx, "waiting_period > ?", 0)
}

func (r *ExtendedMemberRepositoryImpl) CountActiveByType(ctx context.Context, applicantID uint, memberType vo.MemberType, excludeID uint) (int64, error) {
	var count int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.ExtendedMemberModel{}).
		Where("applicant_id = ? AND type = ?", applicantID, memberType.String()).
		Scopes(db.InState(activeState))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count extended members", "applicant_id", applicantID, "type", memberType, "error", err)
		return 0, fmt.Errorf("failed to count extended members: %w", err)
	}
	return count, nil
}

func (r *ExtendedMemberRepositoryImpl) ExistsActiveIDNumber(ctx context.Context, parlourID uint, idNumber string, excludeID uint) (bool, error) {
	return existsActiveIDNumber(db.GetTxFromContext(ctx, r.db).Model(&models.ExtendedMemberModel{}), parlourID, idNumber, excludeID)
}

func (r *ExtendedMemberRepositoryImpl) find(ctx context.Context, cond string, args ...interface{}) ([]*membership.ExtendedMember, error) {
	var rows []*models.ExtendedMemberModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where(cond, args...).
		Scopes(db.InState(activeState)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list extended members", "error", err)
		return nil, fmt.Errorf("failed to list extended members: %w", err)
	}

	out, err := mapper.MapRows(rows, mappers.ExtendedMemberToDomain, func(m *models.ExtendedMemberModel) uint { return m.ID })
	if err != nil {
		return nil, fmt.Errorf("failed to map extended members: %w", err)
	}
	return out, nil
}

func existsActiveIDNumber(query *gorm.DB, parlourID uint, idNumber string, excludeID uint) (bool, error) {
	if idNumber == "" {
		return false, nil
	}

	var count int64
	query = query.Where("parlour_id = ? AND id_number = ?", parlourID, idNumber).Scopes(db.InState(activeState))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check id number: %w", err)
	}
	return count > 0, nil
}

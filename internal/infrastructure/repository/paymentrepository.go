package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/parlourcover/parlour/internal/domain/payment"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/mappers"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/models"
	"github.com/parlourcover/parlour/internal/shared/db"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type PaymentRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPaymentRepository(db *gorm.DB, logger logger.Interface) *PaymentRepository {
	return &PaymentRepository{db: db, logger: logger}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	model := mappers.PaymentToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment", "applicant_id", model.ApplicantID, "error", err)
		return fmt.Errorf("failed to create payment: %w", err)
	}

	// Write back the auto-generated ID to the domain object
	return p.SetID(model.ID)
}

func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	model := mappers.PaymentToModel(p)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"invoice_path": model.InvoicePath,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update payment: %w", result.Error)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return mappers.PaymentToDomain(&model)
}

func (r *PaymentRepository) ListByApplicantID(ctx context.Context, applicantID uint, page, pageSize int) ([]*payment.Payment, int64, error) {
	var rows []models.PaymentModel
	var total int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.PaymentModel{}).Where("applicant_id = ?", applicantID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}
	if err := query.Order("date DESC").Order("id DESC").Scopes(db.Paginate(page, pageSize)).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list payments", "applicant_id", applicantID, "error", err)
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	out := make([]*payment.Payment, 0, len(rows))
	for i := range rows {
		p, err := mappers.PaymentToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, nil
}

func (r *PaymentRepository) LatestDateByApplicantID(ctx context.Context, applicantID uint) (*time.Time, error) {
	var model models.PaymentModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("applicant_id = ?", applicantID).
		Order("date DESC").
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest payment: %w", err)
	}
	return &model.Date, nil
}

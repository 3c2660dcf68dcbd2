package usecases

import (
	"context"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/payment/dto"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/payment"
	"github.com/parlourcover/parlour/internal/shared/constants"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type ListPaymentsQuery struct {
	Actor       common.Actor
	ApplicantID uint
	Page        int
	PageSize    int
}

type ListPaymentsUseCase struct {
	paymentRepo   payment.Repository
	applicantRepo membership.ApplicantRepository
	logger        logger.Interface
}

func NewListPaymentsUseCase(
	paymentRepo payment.Repository,
	applicantRepo membership.ApplicantRepository,
	logger logger.Interface,
) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{
		paymentRepo:   paymentRepo,
		applicantRepo: applicantRepo,
		logger:        logger,
	}
}

func (uc *ListPaymentsUseCase) Execute(ctx context.Context, query ListPaymentsQuery) (*dto.ListPaymentsResponse, error) {
	a, err := loadApplicant(ctx, uc.applicantRepo, query.Actor, query.ApplicantID)
	if err != nil {
		return nil, err
	}

	page, pageSize := query.Page, query.PageSize
	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	payments, total, err := uc.paymentRepo.ListByApplicantID(ctx, a.ID(), page, pageSize)
	if err != nil {
		uc.logger.Errorw("failed to list payments", "error", err, "applicant_id", a.ID())
		return nil, apperrors.NewInternalError("failed to list payments")
	}

	list := dto.ToPaymentDTOList(payments)
	if list == nil {
		list = []*dto.PaymentDTO{}
	}
	return &dto.ListPaymentsResponse{
		Payments: list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	paymentdto "github.com/parlourcover/parlour/internal/application/payment/dto"
	"github.com/parlourcover/parlour/internal/application/payment/usecases"
	"github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type recordPaymentUseCase interface {
	Execute(ctx context.Context, cmd usecases.RecordPaymentCommand) (*paymentdto.RecordPaymentResult, error)
}

type listPaymentsUseCase interface {
	Execute(ctx context.Context, query usecases.ListPaymentsQuery) (*paymentdto.ListPaymentsResponse, error)
}

type PaymentHandler struct {
	recordPaymentUC recordPaymentUseCase
	listPaymentsUC  listPaymentsUseCase
	logger          logger.Interface
}

func NewPaymentHandler(recordPaymentUC recordPaymentUseCase, listPaymentsUC listPaymentsUseCase, logger logger.Interface) *PaymentHandler {
	return &PaymentHandler{
		recordPaymentUC: recordPaymentUC,
		listPaymentsUC:  listPaymentsUC,
		logger:          logger,
	}
}

// RecordPaymentRequest captures one premium payment. Date defaults to today
// and may not lie in the future.
type RecordPaymentRequest struct {
	Amount    string `json:"amount" binding:"required"`
	Method    string `json:"method" binding:"required"`
	Date      string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Reference string `json:"reference" binding:"max=100"`
}

func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	actor, applicantID, ok := actorAndApplicantID(c)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for record payment", "applicant_id", applicantID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("amount must be a decimal amount").WithField("amount"))
		return
	}

	date, err := parseOptionalDate(req.Date, "date")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.recordPaymentUC.Execute(c.Request.Context(), usecases.RecordPaymentCommand{
		Actor:       actor,
		ApplicantID: applicantID,
		Amount:      amount,
		Method:      req.Method,
		Date:        date,
		Reference:   req.Reference,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Payment recorded successfully")
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	actor, applicantID, ok := actorAndApplicantID(c)
	if !ok {
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listPaymentsUC.Execute(c.Request.Context(), usecases.ListPaymentsQuery{
		Actor:       actor,
		ApplicantID: applicantID,
		Page:        p.Page,
		PageSize:    p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Payments, result.Total, result.Page, result.PageSize)
}

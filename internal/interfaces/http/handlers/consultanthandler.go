package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	consultantdto "github.com/parlourcover/parlour/internal/application/consultant/dto"
	"github.com/parlourcover/parlour/internal/application/consultant/usecases"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type createConsultantUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateConsultantCommand) (*consultantdto.ConsultantDTO, error)
}

type getConsultantUseCase interface {
	Execute(ctx context.Context, query usecases.GetConsultantQuery) (*consultantdto.ConsultantDTO, error)
}

type listConsultantsUseCase interface {
	Execute(ctx context.Context, query usecases.ListConsultantsQuery) (*consultantdto.ListConsultantsResponse, error)
}

type updateConsultantUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateConsultantCommand) (*consultantdto.ConsultantDTO, error)
}

type archiveConsultantUseCase interface {
	Execute(ctx context.Context, cmd usecases.ArchiveConsultantCommand) error
}

type ConsultantHandler struct {
	createUC  createConsultantUseCase
	getUC     getConsultantUseCase
	listUC    listConsultantsUseCase
	updateUC  updateConsultantUseCase
	archiveUC archiveConsultantUseCase
	logger    logger.Interface
}

func NewConsultantHandler(
	createUC createConsultantUseCase,
	getUC getConsultantUseCase,
	listUC listConsultantsUseCase,
	updateUC updateConsultantUseCase,
	archiveUC archiveConsultantUseCase,
	logger logger.Interface,
) *ConsultantHandler {
	return &ConsultantHandler{
		createUC:  createUC,
		getUC:     getUC,
		listUC:    listUC,
		updateUC:  updateUC,
		archiveUC: archiveUC,
		logger:    logger,
	}
}

type CreateConsultantRequest struct {
	// ParlourID is only honoured for superusers; admins create within their own parlour.
	ParlourID uint   `json:"parlour_id"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"omitempty,oneof=superuser admin consultant"`
}

type UpdateConsultantRequest struct {
	FirstName string `json:"first_name" binding:"omitempty,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,max=100"`
	Role      string `json:"role" binding:"omitempty,oneof=superuser admin consultant"`
	Password  string `json:"password" binding:"omitempty,min=8"`
}

func (h *ConsultantHandler) CreateConsultant(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateConsultantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create consultant", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateConsultantCommand{
		Actor:     actor,
		ParlourID: req.ParlourID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Consultant created successfully")
}

func (h *ConsultantHandler) GetConsultant(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	consultantID, err := utils.ParseIDParam(c, "id", "consultant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetConsultantQuery{Actor: actor, ConsultantID: consultantID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ConsultantHandler) ListConsultants(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	parlourID, ok := optionalUintQuery(c, "parlour_id")
	if !ok {
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListConsultantsQuery{
		Actor:     actor,
		ParlourID: uintOrZero(parlourID),
		Role:      c.Query("role"),
		State:     c.Query("state"),
		Page:      p.Page,
		PageSize:  p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Consultants, result.Total, result.Page, result.PageSize)
}

func (h *ConsultantHandler) UpdateConsultant(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	consultantID, err := utils.ParseIDParam(c, "id", "consultant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateConsultantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update consultant", "consultant_id", consultantID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateConsultantCommand{
		Actor:        actor,
		ConsultantID: consultantID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		Password:     req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Consultant updated successfully", result)
}

func (h *ConsultantHandler) ArchiveConsultant(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	consultantID, err := utils.ParseIDParam(c, "id", "consultant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.archiveUC.Execute(c.Request.Context(), usecases.ArchiveConsultantCommand{Actor: actor, ConsultantID: consultantID}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	parlourdto "github.com/parlourcover/parlour/internal/application/parlour/dto"
	"github.com/parlourcover/parlour/internal/application/parlour/usecases"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type createParlourUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateParlourCommand) (*parlourdto.ParlourDTO, error)
}

type getParlourUseCase interface {
	Execute(ctx context.Context, query usecases.GetParlourQuery) (*parlourdto.ParlourDTO, error)
}

type listParloursUseCase interface {
	Execute(ctx context.Context, query usecases.ListParloursQuery) (*parlourdto.ListParloursResponse, error)
}

type updateParlourUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateParlourCommand) (*parlourdto.ParlourDTO, error)
}

type archiveParlourUseCase interface {
	Execute(ctx context.Context, parlourID uint) error
}

type ParlourHandler struct {
	createUC  createParlourUseCase
	getUC     getParlourUseCase
	listUC    listParloursUseCase
	updateUC  updateParlourUseCase
	archiveUC archiveParlourUseCase
	logger    logger.Interface
}

func NewParlourHandler(
	createUC createParlourUseCase,
	getUC getParlourUseCase,
	listUC listParloursUseCase,
	updateUC updateParlourUseCase,
	archiveUC archiveParlourUseCase,
	logger logger.Interface,
) *ParlourHandler {
	return &ParlourHandler{
		createUC:  createUC,
		getUC:     getUC,
		listUC:    listUC,
		updateUC:  updateUC,
		archiveUC: archiveUC,
		logger:    logger,
	}
}

type ParlourRequest struct {
	Name          string `json:"name" binding:"required,max=150"`
	ContactPerson string `json:"contact_person" binding:"max=150"`
	Email         string `json:"email" binding:"omitempty,email"`
	PhoneNumber   string `json:"phone_number" binding:"max=30"`
	Address       string `json:"address" binding:"max=255"`
}

func (h *ParlourHandler) CreateParlour(c *gin.Context) {
	var req ParlourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create parlour", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateParlourCommand{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Parlour created successfully")
}

func (h *ParlourHandler) GetParlour(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	parlourID, err := utils.ParseIDParam(c, "id", "parlour")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetParlourQuery{Actor: actor, ParlourID: parlourID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ParlourHandler) ListParlours(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListParloursQuery{Page: p.Page, PageSize: p.PageSize})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Parlours, result.Total, result.Page, result.PageSize)
}

func (h *ParlourHandler) UpdateParlour(c *gin.Context) {
	parlourID, err := utils.ParseIDParam(c, "id", "parlour")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ParlourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update parlour", "parlour_id", parlourID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateParlourCommand{
		ParlourID:     parlourID,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Parlour updated successfully", result)
}

func (h *ParlourHandler) ArchiveParlour(c *gin.Context) {
	parlourID, err := utils.ParseIDParam(c, "id", "parlour")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.archiveUC.Execute(c.Request.Context(), parlourID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/parlourcover/parlour/internal/application/common"
	plandto "github.com/parlourcover/parlour/internal/application/plan/dto"
	"github.com/parlourcover/parlour/internal/application/plan/usecases"
	"github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type createPlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreatePlanCommand) (*plandto.PlanDTO, error)
}

type updatePlanUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdatePlanCommand) (*usecases.UpdatePlanResult, error)
}

type getPlanUseCase interface {
	Execute(ctx context.Context, actor common.Actor, planID uint) (*plandto.PlanDTO, error)
}

type listPlansUseCase interface {
	Execute(ctx context.Context, query usecases.ListPlansQuery) (*plandto.ListPlansResponse, error)
}

type archivePlanUseCase interface {
	Execute(ctx context.Context, actor common.Actor, planID uint) error
}

type PlanHandler struct {
	createPlanUC  createPlanUseCase
	updatePlanUC  updatePlanUseCase
	getPlanUC     getPlanUseCase
	listPlansUC   listPlansUseCase
	archivePlanUC archivePlanUseCase
	logger        logger.Interface
}

func NewPlanHandler(
	createPlanUC createPlanUseCase,
	updatePlanUC updatePlanUseCase,
	getPlanUC getPlanUseCase,
	listPlansUC listPlansUseCase,
	archivePlanUC archivePlanUseCase,
	logger logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:  createPlanUC,
		updatePlanUC:  updatePlanUC,
		getPlanUC:     getPlanUC,
		listPlansUC:   listPlansUC,
		archivePlanUC: archivePlanUC,
		logger:        logger,
	}
}

// PlanRequest is shared by create and update. Bounds are keyed by member
// type; a quota of 0 means the plan does not cover that type.
type PlanRequest struct {
	ParlourID         uint                         `json:"parlour_id"`
	Name              string                       `json:"name" binding:"required,max=100"`
	Premium           string                       `json:"premium" binding:"required"`
	WaitingPeriodDays int                          `json:"waiting_period" binding:"gte=0"`
	Benefits          []string                     `json:"benefits"`
	Bounds            map[string]plandto.BoundsDTO `json:"bounds"`
}

func (r PlanRequest) premium() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(r.Premium)
	if err != nil {
		return decimal.Zero, errors.NewValidationError("premium must be a decimal amount").WithField("premium")
	}
	return d, nil
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	premium, err := req.premium()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), usecases.CreatePlanCommand{
		Actor:             actor,
		ParlourID:         req.ParlourID,
		Name:              req.Name,
		Premium:           premium,
		WaitingPeriodDays: req.WaitingPeriodDays,
		Benefits:          req.Benefits,
		Bounds:            req.Bounds,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Plan created successfully")
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	planID, err := utils.ParseIDParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update plan", "plan_id", planID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	premium, err := req.premium()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updatePlanUC.Execute(c.Request.Context(), usecases.UpdatePlanCommand{
		Actor:             actor,
		PlanID:            planID,
		Name:              req.Name,
		Premium:           premium,
		WaitingPeriodDays: req.WaitingPeriodDays,
		Benefits:          req.Benefits,
		Bounds:            req.Bounds,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", result)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	planID, err := utils.ParseIDParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPlanUC.Execute(c.Request.Context(), actor, planID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	parlourID, ok := optionalUintQuery(c, "parlour_id")
	if !ok {
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listPlansUC.Execute(c.Request.Context(), usecases.ListPlansQuery{
		Actor:     actor,
		ParlourID: uintOrZero(parlourID),
		State:     c.Query("state"),
		Page:      p.Page,
		PageSize:  p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Plans, result.Total, result.Page, result.PageSize)
}

func (h *PlanHandler) ArchivePlan(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	planID, err := utils.ParseIDParam(c, "id", "plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.archivePlanUC.Execute(c.Request.Context(), actor, planID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

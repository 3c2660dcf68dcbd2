package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	notificationdto "github.com/parlourcover/parlour/internal/application/notification/dto"
	"github.com/parlourcover/parlour/internal/application/notification/usecases"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type listNotificationsUseCase interface {
	ListNotifications(ctx context.Context, query usecases.ListNotificationsQuery) (*notificationdto.ListNotificationsResponse, error)
}

type NotificationHandler struct {
	service listNotificationsUseCase
	logger  logger.Interface
}

func NewNotificationHandler(service listNotificationsUseCase, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger,
	}
}

// ListNotifications returns the email log of the caller's parlour.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	parlourID, ok := optionalUintQuery(c, "parlour_id")
	if !ok {
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.service.ListNotifications(c.Request.Context(), usecases.ListNotificationsQuery{
		Actor:     actor,
		ParlourID: uintOrZero(parlourID),
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		Page:      p.Page,
		PageSize:  p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Notifications, result.Total, result.Page, result.PageSize)
}

package usecases

import (
	"context"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/notification/dto"
	"github.com/parlourcover/parlour/internal/domain/notification"
	"github.com/parlourcover/parlour/internal/shared/constants"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type ListNotificationsQuery struct {
	Actor     common.Actor
	ParlourID uint
	Type      string
	Status    string
	Page      int
	PageSize  int
}

type ListNotificationsUseCase struct {
	repo   notification.Repository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo notification.Repository, logger logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{
		repo:   repo,
		logger: logger,
	}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, req ListNotificationsQuery) (*dto.ListNotificationsResponse, error) {
	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = constants.DefaultPage
	}
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}

	filter := notification.Filter{
		ParlourID: req.Actor.ScopeParlour(req.ParlourID),
		Page:      page,
		PageSize:  pageSize,
	}
	if req.Type != "" {
		filter.Type = &req.Type
	}
	if req.Status != "" {
		filter.Status = &req.Status
	}

	list, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "error", err, "parlour_id", filter.ParlourID)
		return nil, apperrors.NewInternalError("failed to list notifications")
	}

	return &dto.ListNotificationsResponse{
		Notifications: dto.ToNotificationDTOList(list),
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

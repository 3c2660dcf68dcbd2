package usecases

import (
	"context"
	"fmt"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type ListApplicantsQuery struct {
	Actor        common.Actor
	ParlourID    uint
	ConsultantID *uint
	PlanID       *uint
	Status       string
	State        string
	PolicyNum    string
	Page         int
	PageSize     int
}

type ListApplicantsUseCase struct {
	applicantRepo membership.ApplicantRepository
	mainRepo      membership.MainMemberRepository
	logger        logger.Interface
}

func NewListApplicantsUseCase(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	logger logger.Interface,
) *ListApplicantsUseCase {
	return &ListApplicantsUseCase{
		applicantRepo: applicantRepo,
		mainRepo:      mainRepo,
		logger:        logger,
	}
}

// Execute lists applicants with their main member. Without a state filter
// only active applicants are returned.
func (uc *ListApplicantsUseCase) Execute(ctx context.Context, query ListApplicantsQuery) (*dto.ListApplicantsResponse, error) {
	p := utils.ValidatePagination(query.Page, query.PageSize)

	filter := membership.ApplicantFilter{
		ParlourID:    query.Actor.ScopeParlour(query.ParlourID),
		ConsultantID: query.ConsultantID,
		PlanID:       query.PlanID,
		PolicyNum:    query.PolicyNum,
		States:       []string{"active"},
		Page:         p.Page,
		PageSize:     p.PageSize,
	}
	if query.State != "" {
		filter.States = []string{query.State}
	}
	if query.Status != "" {
		filter.Status = &query.Status
	}

	applicants, total, err := uc.applicantRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list applicants", "error", err)
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}

	ids := make([]uint, 0, len(applicants))
	for _, a := range applicants {
		ids = append(ids, a.ID())
	}
	mains, err := uc.mainRepo.ListActiveByApplicantIDs(ctx, ids)
	if err != nil {
		uc.logger.Errorw("failed to load main members", "error", err)
		return nil, fmt.Errorf("failed to load main members: %w", err)
	}

	items := make([]*dto.ApplicantDTO, 0, len(applicants))
	for _, a := range applicants {
		items = append(items, dto.ToApplicantDTO(a, mains[a.ID()], nil))
	}

	return &dto.ListApplicantsResponse{
		Applicants: items,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
	}, nil
}

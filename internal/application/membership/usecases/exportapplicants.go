package usecases

import (
	"context"
	"fmt"
	"io"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/domain/consultant"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/infrastructure/export"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

const exportPageSize = 100

type ExportApplicantsQuery struct {
	Actor     common.Actor
	ParlourID uint
	Status    string
	State     string
	PlanID    *uint
}

// ExportApplicantsUseCase writes every matching applicant to an xlsx workbook.
type ExportApplicantsUseCase struct {
	applicantRepo  membership.ApplicantRepository
	mainRepo       membership.MainMemberRepository
	extendedRepo   membership.ExtendedMemberRepository
	planRepo       plan.Repository
	consultantRepo consultant.Repository
	logger         logger.Interface
}

func NewExportApplicantsUseCase(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	extendedRepo membership.ExtendedMemberRepository,
	planRepo plan.Repository,
	consultantRepo consultant.Repository,
	logger logger.Interface,
) *ExportApplicantsUseCase {
	return &ExportApplicantsUseCase{
		applicantRepo:  applicantRepo,
		mainRepo:       mainRepo,
		extendedRepo:   extendedRepo,
		planRepo:       planRepo,
		consultantRepo: consultantRepo,
		logger:         logger,
	}
}

func (uc *ExportApplicantsUseCase) Execute(ctx context.Context, query ExportApplicantsQuery, w io.Writer) (int, error) {
	filter := membership.ApplicantFilter{
		ParlourID: query.Actor.ScopeParlour(query.ParlourID),
		PlanID:    query.PlanID,
		States:    []string{"active"},
		PageSize:  exportPageSize,
	}
	if query.State != "" {
		filter.States = []string{query.State}
	}
	if query.Status != "" {
		filter.Status = &query.Status
	}

	names := newNameCache(uc.planRepo, uc.consultantRepo)
	var rows []export.ApplicantRow
	for page := 1; ; page++ {
		filter.Page = page
		applicants, total, err := uc.applicantRepo.List(ctx, filter)
		if err != nil {
			uc.logger.Errorw("failed to list applicants for export", "error", err, "page", page)
			return 0, fmt.Errorf("failed to list applicants: %w", err)
		}

		batch, err := uc.buildRows(ctx, applicants, names)
		if err != nil {
			uc.logger.Errorw("failed to build export rows", "error", err, "page", page)
			return 0, err
		}
		rows = append(rows, batch...)

		if len(applicants) < exportPageSize || int64(len(rows)) >= total {
			break
		}
	}

	if err := export.WriteApplicants(w, rows); err != nil {
		uc.logger.Errorw("failed to write applicant workbook", "error", err)
		return 0, fmt.Errorf("failed to write workbook: %w", err)
	}

	uc.logger.Infow("applicants exported", "rows", len(rows), "parlour_id", filter.ParlourID)
	return len(rows), nil
}

func (uc *ExportApplicantsUseCase) buildRows(ctx context.Context, applicants []*membership.Applicant, names *nameCache) ([]export.ApplicantRow, error) {
	ids := make([]uint, 0, len(applicants))
	for _, a := range applicants {
		ids = append(ids, a.ID())
	}
	mains, err := uc.mainRepo.ListActiveByApplicantIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load main members: %w", err)
	}

	rows := make([]export.ApplicantRow, 0, len(applicants))
	for _, a := range applicants {
		members, err := uc.extendedRepo.ListActiveByApplicantID(ctx, a.ID())
		if err != nil {
			return nil, fmt.Errorf("failed to list extended members: %w", err)
		}
		row := export.ApplicantRow{
			PolicyNum:      a.PolicyNum(),
			Status:         a.Status().String(),
			State:          a.State().String(),
			PlanName:       names.plan(ctx, a.PlanID()),
			ConsultantName: names.consultant(ctx, a.ConsultantID()),
			MemberCount:    len(members),
			CreatedAt:      a.CreatedAt(),
		}
		if m, ok := mains[a.ID()]; ok {
			id := m.Identity()
			joined := m.DateJoined()
			row.MainMemberName = id.FullName()
			row.IDNumber = id.IDNumber
			row.DateOfBirth = id.DateOfBirth
			row.DateJoined = &joined
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// nameCache resolves plan and consultant names once per export.
type nameCache struct {
	planRepo       plan.Repository
	consultantRepo consultant.Repository
	plans          map[uint]string
	consultants    map[uint]string
}

func newNameCache(planRepo plan.Repository, consultantRepo consultant.Repository) *nameCache {
	return &nameCache{
		planRepo:       planRepo,
		consultantRepo: consultantRepo,
		plans:          make(map[uint]string),
		consultants:    make(map[uint]string),
	}
}

func (c *nameCache) plan(ctx context.Context, id uint) string {
	if name, ok := c.plans[id]; ok {
		return name
	}
	name := ""
	if p, err := c.planRepo.GetByID(ctx, id); err == nil {
		name = p.Name()
	}
	c.plans[id] = name
	return name
}

func (c *nameCache) consultant(ctx context.Context, id uint) string {
	if id == 0 {
		return ""
	}
	if name, ok := c.consultants[id]; ok {
		return name
	}
	name := ""
	if cons, err := c.consultantRepo.GetByID(ctx, id); err == nil {
		name = cons.FullName()
	}
	c.consultants[id] = name
	return name
}

package usecases

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

type ImportMembersCommand struct {
	Actor       common.Actor
	ApplicantID uint
	File        io.Reader
}

// ImportMembersUseCase adds extended members from a CSV file. Every row is
// validated on its own; valid rows are committed together and invalid rows
// are reported.
type ImportMembersUseCase struct {
	applicantRepo membership.ApplicantRepository
	mainRepo      membership.MainMemberRepository
	extendedRepo  membership.ExtendedMemberRepository
	planRepo      plan.Repository
	certificates  *CertificateService
	txManager     TransactionRunner
	metrics       Metrics
	logger        logger.Interface
}

func NewImportMembersUseCase(
	applicantRepo membership.ApplicantRepository,
	mainRepo membership.MainMemberRepository,
	extendedRepo membership.ExtendedMemberRepository,
	planRepo plan.Repository,
	certificates *CertificateService,
	txManager TransactionRunner,
	metrics Metrics,
	logger logger.Interface,
) *ImportMembersUseCase {
	return &ImportMembersUseCase{
		applicantRepo: applicantRepo,
		mainRepo:      mainRepo,
		extendedRepo:  extendedRepo,
		planRepo:      planRepo,
		certificates:  certificates,
		txManager:     txManager,
		metrics:       metrics,
		logger:        logger,
	}
}

// memberImport holds the state shared by the rows of one file.
type memberImport struct {
	applicant *membership.Applicant
	plan      *plan.Plan
	counter   *membership.QuotaCounter
	checker   idNumberChecker
	seen      map[string]int
	now       time.Time
	metrics   Metrics
}

func (uc *ImportMembersUseCase) Execute(ctx context.Context, cmd ImportMembersCommand) (*dto.ImportResultDTO, error) {
	start := time.Now()

	a, err := loadActiveApplicant(ctx, uc.applicantRepo, cmd.Actor, cmd.ApplicantID)
	if err != nil {
		return nil, err
	}
	p, err := loadPlan(ctx, uc.planRepo, a.PlanID())
	if err != nil {
		return nil, err
	}

	rows, err := readMemberCSV(cmd.File)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error()).WithField("file")
	}

	existing, err := uc.extendedRepo.ListActiveByApplicantID(ctx, a.ID())
	if err != nil {
		uc.logger.Errorw("failed to list extended members", "error", err, "applicant_id", a.ID())
		return nil, fmt.Errorf("failed to list extended members: %w", err)
	}

	imp := &memberImport{
		applicant: a,
		plan:      p,
		counter:   membership.NewQuotaCounter(p, existing),
		checker:   idNumberChecker{mainRepo: uc.mainRepo, extendedRepo: uc.extendedRepo},
		seen:      make(map[string]int),
		now:       biztime.NowUTC(),
		metrics:   uc.metrics,
	}

	result := &dto.ImportResultDTO{Imported: []*dto.ExtendedMemberDTO{}, Errors: []dto.ImportRowError{}}
	var accepted []*membership.ExtendedMember
	for _, row := range rows {
		if row.ParseErr != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{
				Row:     row.Row,
				Field:   "file",
				Message: fmt.Sprintf("malformed row: %v", row.ParseErr),
			})
			result.Rejected++
			continue
		}
		m, rowErrs, err := imp.validate(ctx, row)
		if err != nil {
			uc.logger.Errorw("failed to validate import row", "error", err, "row", row.Row)
			return nil, fmt.Errorf("failed to validate row %d: %w", row.Row, err)
		}
		if len(rowErrs) > 0 {
			result.Errors = append(result.Errors, rowErrs...)
			result.Rejected++
			continue
		}
		accepted = append(accepted, m)
	}

	if len(accepted) > 0 {
		err = uc.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
			for _, m := range accepted {
				if err := uc.extendedRepo.Create(ctx, m); err != nil {
					return fmt.Errorf("failed to create extended member: %w", err)
				}
			}
			return nil
		})
		if err != nil {
			uc.logger.Errorw("failed to commit imported members", "error", err, "applicant_id", a.ID())
			return nil, err
		}
		uc.certificates.IssueBestEffort(ctx, a)
	}

	result.Imported = dto.ToExtendedMemberDTOList(accepted)
	result.Accepted = len(accepted)
	uc.metrics.ObserveImport(start, result.Accepted, result.Rejected)

	uc.logger.Infow("members imported",
		"applicant_id", a.ID(),
		"rows", len(rows),
		"accepted", result.Accepted,
		"rejected", result.Rejected,
	)
	return result, nil
}

// validate checks one row. Rule violations are returned as row errors; the
// error return is reserved for infrastructure failures.
func (imp *memberImport) validate(ctx context.Context, row csvRow) (*membership.ExtendedMember, []dto.ImportRowError, error) {
	var errs []dto.ImportRowError
	reject := func(field, message string) {
		errs = append(errs, dto.ImportRowError{Row: row.Row, Field: field, Message: message})
	}

	for _, col := range []string{colFirstName, colLastName, colType, colRelation} {
		if row.get(col) == "" {
			reject(col, col+" is required")
		}
	}
	if row.get(colIDNumber) == "" && row.get(colDateOfBirth) == "" {
		reject(colIDNumber, membership.ErrMissingBirthSource.Error())
	}

	var dob *time.Time
	if v := row.get(colDateOfBirth); v != "" {
		t, err := parseImportDate(v)
		if err != nil {
			reject(colDateOfBirth, err.Error())
		} else {
			dob = &t
		}
	}
	joined := biztime.Today()
	if v := row.get(colDateJoined); v != "" {
		t, err := parseImportDate(v)
		if err != nil {
			reject(colDateJoined, err.Error())
		} else {
			joined = t
		}
	}
	if len(errs) > 0 {
		return nil, errs, nil
	}

	memberType, relation, err := parseExtendedKind(row.get(colType), row.get(colRelation))
	if err != nil {
		return nil, []dto.ImportRowError{rowError(row.Row, err)}, nil
	}

	m, err := membership.NewExtendedMember(membership.ExtendedMemberParams{
		ApplicantID: imp.applicant.ID(),
		ParlourID:   imp.applicant.ParlourID(),
		Identity: membership.Identity{
			FirstName:   titleName(row.get(colFirstName)),
			LastName:    titleName(row.get(colLastName)),
			IDNumber:    row.get(colIDNumber),
			DateOfBirth: dob,
			Number:      row.get(colNumber),
		},
		Type:          memberType,
		Relation:      relation,
		DateJoined:    joined,
		WaitingPeriod: imp.plan.WaitingPeriodDays(),
	})
	if err != nil {
		return nil, []dto.ImportRowError{rowError(row.Row, err)}, nil
	}

	if id := m.Identity().IDNumber; id != "" {
		if first, ok := imp.seen[id]; ok {
			return nil, []dto.ImportRowError{{
				Row:     row.Row,
				Field:   colIDNumber,
				Message: fmt.Sprintf("id number repeats row %d", first),
			}}, nil
		}
		taken, err := imp.checker.taken(ctx, imp.applicant.ParlourID(), id, 0, 0)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			return nil, []dto.ImportRowError{rowError(row.Row, membership.ErrDuplicateIDNumber)}, nil
		}
	}

	if _, err := membership.EvaluateExtendedMember(m, imp.plan, imp.now, biztime.Location()); err != nil {
		return nil, []dto.ImportRowError{rowError(row.Row, err)}, nil
	}
	if err := admitAge(m.Identity(), m.AgeLimitExceeded(), false, imp.metrics); err != nil {
		return nil, []dto.ImportRowError{rowError(row.Row, err)}, nil
	}

	if err := imp.counter.Reserve(memberType); err != nil {
		imp.metrics.IncQuotaRejection(memberType.String())
		return nil, []dto.ImportRowError{rowError(row.Row, err)}, nil
	}

	if id := m.Identity().IDNumber; id != "" {
		imp.seen[id] = row.Row
	}
	return m, nil, nil
}

func rowError(row int, err error) dto.ImportRowError {
	message := err.Error()
	if appErr := apperrors.GetAppError(err); appErr != nil {
		message = appErr.Message
	}
	return dto.ImportRowError{Row: row, Field: common.FieldOf(err), Message: message}
}

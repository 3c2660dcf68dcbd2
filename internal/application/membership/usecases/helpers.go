package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/domain/membership"
	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/plan"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	apperrors "github.com/parlourcover/parlour/internal/shared/errors"
)

// MemberInput carries the personal fields of a main or extended member as
// received from a request or an import row.
type MemberInput struct {
	FirstName   string
	LastName    string
	IDNumber    string
	DateOfBirth *time.Time
	Number      string
	Type        string
	Relation    string
	DateJoined  *time.Time
	// AgeLimitException admits a member whose age is outside the plan bounds.
	AgeLimitException bool
}

func (in MemberInput) identity() membership.Identity {
	return membership.Identity{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		IDNumber:    in.IDNumber,
		DateOfBirth: in.DateOfBirth,
		Number:      in.Number,
	}
}

func (in MemberInput) dateJoined() time.Time {
	if in.DateJoined != nil {
		return *in.DateJoined
	}
	return biztime.Today()
}

func loadApplicant(ctx context.Context, repo membership.ApplicantRepository, actor common.Actor, applicantID uint) (*membership.Applicant, error) {
	a, err := repo.GetByID(ctx, applicantID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if !actor.CanAccessParlour(a.ParlourID()) {
		return nil, apperrors.NewNotFoundError(membership.ErrApplicantNotFound.Error())
	}
	return a, nil
}

func loadActiveApplicant(ctx context.Context, repo membership.ApplicantRepository, actor common.Actor, applicantID uint) (*membership.Applicant, error) {
	a, err := loadApplicant(ctx, repo, actor, applicantID)
	if err != nil {
		return nil, err
	}
	if !a.IsActive() {
		return nil, common.TranslateError(fmt.Errorf("%w: applicant %d is %s", membership.ErrApplicantNotActive, a.ID(), a.State()))
	}
	return a, nil
}

// loadMember returns an extended member only when it belongs to applicant.
func loadMember(ctx context.Context, repo membership.ExtendedMemberRepository, applicant *membership.Applicant, memberID uint) (*membership.ExtendedMember, error) {
	m, err := repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	if m.ApplicantID() != applicant.ID() {
		return nil, apperrors.NewNotFoundError(membership.ErrExtendedMemberNotFound.Error())
	}
	return m, nil
}

// soleMainMember returns the active main member, nil when there is none, or
// ErrMultipleMainMembers.
func soleMainMember(ctx context.Context, repo membership.MainMemberRepository, applicantID uint) (*membership.MainMember, error) {
	members, err := repo.ListActiveByApplicantID(ctx, applicantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list main members: %w", err)
	}
	switch len(members) {
	case 0:
		return nil, nil
	case 1:
		return members[0], nil
	default:
		return nil, membership.ErrMultipleMainMembers
	}
}

// idNumberChecker rejects ID numbers already held by an active member of the
// same parlour.
type idNumberChecker struct {
	mainRepo     membership.MainMemberRepository
	extendedRepo membership.ExtendedMemberRepository
}

func (c idNumberChecker) taken(ctx context.Context, parlourID uint, idNumber string, excludeMainID, excludeExtendedID uint) (bool, error) {
	if idNumber == "" {
		return false, nil
	}
	exists, err := c.mainRepo.ExistsActiveIDNumber(ctx, parlourID, idNumber, excludeMainID)
	if err != nil || exists {
		return exists, err
	}
	return c.extendedRepo.ExistsActiveIDNumber(ctx, parlourID, idNumber, excludeExtendedID)
}

// admitAge evaluates the age limit of a new member and rejects it unless an
// exception was granted.
func admitAge(identity membership.Identity, exceeded bool, exception bool, metrics Metrics) error {
	metrics.ObserveAgeLimit(exceeded)
	if exceeded && !exception {
		return fmt.Errorf("%w: %s", membership.ErrAgeLimitExceeded, identity.FullName())
	}
	return nil
}

func loadPlan(ctx context.Context, repo plan.Repository, planID uint) (*plan.Plan, error) {
	p, err := repo.GetByID(ctx, planID)
	if err != nil {
		return nil, common.TranslateError(err)
	}
	return p, nil
}

// parseExtendedKind resolves the type and relation labels of an extended
// member. A missing relation defaults from the type where that is unambiguous.
func parseExtendedKind(typ, relation string) (vo.MemberType, vo.Relation, error) {
	t, err := vo.ParseMemberType(typ)
	if err != nil || !t.IsExtendedKind() {
		return "", "", fmt.Errorf("%w: %q", membership.ErrInvalidMemberType, typ)
	}
	if strings.TrimSpace(relation) == "" {
		switch t {
		case vo.MemberTypeSpouse:
			return t, vo.RelationSpouse, nil
		case vo.MemberTypeDependant:
			return t, vo.RelationChild, nil
		}
		return "", "", fmt.Errorf("%w: relation is required for %s", membership.ErrInvalidRelation, t)
	}
	r, err := vo.ParseRelation(relation)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", membership.ErrInvalidRelation, relation)
	}
	return t, r, nil
}

package membership

import (
	"context"

	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
)

type ApplicantRepository interface {
	Create(ctx context.Context, applicant *Applicant) error
	GetByID(ctx context.Context, id uint) (*Applicant, error)
	Update(ctx context.Context, applicant *Applicant) error
	List(ctx context.Context, filter ApplicantFilter) ([]*Applicant, int64, error)

	// ListActive returns every active applicant, for batch jobs.
	ListActive(ctx context.Context) ([]*Applicant, error)
	ListActiveByPlanID(ctx context.Context, planID uint) ([]*Applicant, error)
}

type ApplicantFilter struct {
	ParlourID    uint
	ConsultantID *uint
	PlanID       *uint
	Status       *string
	States       []string
	PolicyNum    string
	Page         int
	PageSize     int
}

type MainMemberRepository interface {
	Create(ctx context.Context, member *MainMember) error
	GetByID(ctx context.Context, id uint) (*MainMember, error)
	Update(ctx context.Context, member *MainMember) error
	ListActiveByApplicantID(ctx context.Context, applicantID uint) ([]*MainMember, error)
	// ListActiveByApplicantIDs returns active main members keyed by applicant.
	ListActiveByApplicantIDs(ctx context.Context, applicantIDs []uint) (map[uint]*MainMember, error)
	ExistsActiveIDNumber(ctx context.Context, parlourID uint, idNumber string, excludeID uint) (bool, error)
}

type ExtendedMemberRepository interface {
	Create(ctx context.Context, member *ExtendedMember) error
	GetByID(ctx context.Context, id uint) (*ExtendedMember, error)
	Update(ctx context.Context, member *ExtendedMember) error
	ListActiveByApplicantID(ctx context.Context, applicantID uint) ([]*ExtendedMember, error)
	CountActiveByType(ctx context.Context, applicantID uint, memberType vo.MemberType, excludeID uint) (int64, error)
	// ListInWaitingPeriod returns active members whose waiting period is above zero.
	ListInWaitingPeriod(ctx context.Context) ([]*ExtendedMember, error)
	ExistsActiveIDNumber(ctx context.Context, parlourID uint, idNumber string, excludeID uint) (bool, error)
}

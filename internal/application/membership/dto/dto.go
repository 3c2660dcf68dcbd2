package dto

import (
	"time"

	"github.com/parlourcover/parlour/internal/domain/membership"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/mapper"
)

type MainMemberDTO struct {
	ID                uint   `json:"id"`
	ApplicantID       uint   `json:"applicant_id"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	IDNumber          string `json:"id_number,omitempty"`
	DateOfBirth       string `json:"date_of_birth,omitempty"`
	Number            string `json:"number,omitempty"`
	DateJoined        string `json:"date_joined"`
	AgeLimitExceeded  bool   `json:"age_limit_exceeded"`
	AgeLimitException bool   `json:"age_limit_exception"`
	IsDeceased        bool   `json:"is_deceased"`
	State             string `json:"state"`
}

type ExtendedMemberDTO struct {
	ID                   uint   `json:"id"`
	ApplicantID          uint   `json:"applicant_id"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Type                 string `json:"type"`
	Relation             string `json:"relation_to_main_member"`
	IDNumber             string `json:"id_number,omitempty"`
	DateOfBirth          string `json:"date_of_birth,omitempty"`
	Number               string `json:"number,omitempty"`
	DateJoined           string `json:"date_joined"`
	AgeLimitExceeded     bool   `json:"age_limit_exceeded"`
	AgeLimitException    bool   `json:"age_limit_exception"`
	WaitingPeriod        int    `json:"waiting_period"`
	IsMainMemberDeceased bool   `json:"is_main_member_deceased"`
	State                string `json:"state"`
}

type ApplicantDTO struct {
	ID              uint                 `json:"id"`
	UUID            string               `json:"uuid"`
	ParlourID       uint                 `json:"parlour_id"`
	PlanID          uint                 `json:"plan_id"`
	ConsultantID    uint                 `json:"consultant_id"`
	PolicyNum       string               `json:"policy_num"`
	Status          string               `json:"status"`
	State           string               `json:"state"`
	CertificatePath string               `json:"certificate_path,omitempty"`
	MainMember      *MainMemberDTO       `json:"main_member,omitempty"`
	ExtendedMembers []*ExtendedMemberDTO `json:"extended_members,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

type ListApplicantsResponse struct {
	Applicants []*ApplicantDTO `json:"applicants"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}

// ImportRowError describes why one CSV row was rejected. Row counts data
// rows from 1; the header is row 0.
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type ImportResultDTO struct {
	Imported []*ExtendedMemberDTO `json:"imported"`
	Errors   []ImportRowError     `json:"errors"`
	Accepted int                  `json:"accepted"`
	Rejected int                  `json:"rejected"`
}

type PromotionResultDTO struct {
	OriginalApplicantID uint          `json:"original_applicant_id"`
	Applicant           *ApplicantDTO `json:"applicant"`
}

type AgeLimitResultDTO struct {
	Evaluated int `json:"evaluated"`
	Changed   int `json:"changed"`
}

func ToMainMemberDTO(m *membership.MainMember) *MainMemberDTO {
	if m == nil {
		return nil
	}
	id := m.Identity()
	return &MainMemberDTO{
		ID:                m.ID(),
		ApplicantID:       m.ApplicantID(),
		FirstName:         id.FirstName,
		LastName:          id.LastName,
		IDNumber:          id.IDNumber,
		DateOfBirth:       biztime.FormatDatePtr(id.DateOfBirth),
		Number:            id.Number,
		DateJoined:        formatJoined(m.DateJoined()),
		AgeLimitExceeded:  m.AgeLimitExceeded(),
		AgeLimitException: m.AgeLimitException(),
		IsDeceased:        m.IsDeceased(),
		State:             m.State().String(),
	}
}

func ToExtendedMemberDTO(m *membership.ExtendedMember) *ExtendedMemberDTO {
	if m == nil {
		return nil
	}
	id := m.Identity()
	return &ExtendedMemberDTO{
		ID:                   m.ID(),
		ApplicantID:          m.ApplicantID(),
		FirstName:            id.FirstName,
		LastName:             id.LastName,
		Type:                 m.Type().String(),
		Relation:             m.Relation().String(),
		IDNumber:             id.IDNumber,
		DateOfBirth:          biztime.FormatDatePtr(id.DateOfBirth),
		Number:               id.Number,
		DateJoined:           formatJoined(m.DateJoined()),
		AgeLimitExceeded:     m.AgeLimitExceeded(),
		AgeLimitException:    m.AgeLimitException(),
		WaitingPeriod:        m.WaitingPeriod(),
		IsMainMemberDeceased: m.IsMainMemberDeceased(),
		State:                m.State().String(),
	}
}

func ToExtendedMemberDTOList(members []*membership.ExtendedMember) []*ExtendedMemberDTO {
	return mapper.MapSlice(members, ToExtendedMemberDTO)
}

// ToApplicantDTO builds the applicant view. main and members may be nil for
// list views.
func ToApplicantDTO(a *membership.Applicant, main *membership.MainMember, members []*membership.ExtendedMember) *ApplicantDTO {
	if a == nil {
		return nil
	}
	return &ApplicantDTO{
		ID:              a.ID(),
		UUID:            a.UUID(),
		ParlourID:       a.ParlourID(),
		PlanID:          a.PlanID(),
		ConsultantID:    a.ConsultantID(),
		PolicyNum:       a.PolicyNum(),
		Status:          a.Status().String(),
		State:           a.State().String(),
		CertificatePath: a.CertificatePath(),
		MainMember:      ToMainMemberDTO(main),
		ExtendedMembers: ToExtendedMemberDTOList(members),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
}

func formatJoined(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return biztime.FormatDate(t)
}

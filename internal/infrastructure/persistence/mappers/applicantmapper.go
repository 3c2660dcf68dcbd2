package mappers

import (
	"github.com/parlourcover/parlour/internal/domain/membership"
	vo "github.com/parlourcover/parlour/internal/domain/membership/valueobjects"
	"github.com/parlourcover/parlour/internal/domain/shared/lifecycle"
	"github.com/parlourcover/parlour/internal/infrastructure/persistence/models"
)

func ApplicantToModel(a *membership.Applicant) *models.ApplicantModel {
	return &models.ApplicantModel{
		ID:              a.ID(),
		UUID:            a.UUID(),
		ParlourID:       a.ParlourID(),
		PlanID:          a.PlanID(),
		ConsultantID:    a.ConsultantID(),
		PolicyNum:       a.PolicyNum(),
		Status:          a.Status().String(),
		State:           a.State().String(),
		CertificatePath: a.CertificatePath(),
		Version:         a.Version(),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
}

func ApplicantToDomain(m *models.ApplicantModel) (*membership.Applicant, error) {
	return membership.ReconstructApplicant(membership.ApplicantReconstructParams{
		ID:              m.ID,
		UUID:            m.UUID,
		ParlourID:       m.ParlourID,
		PlanID:          m.PlanID,
		ConsultantID:    m.ConsultantID,
		PolicyNum:       m.PolicyNum,
		Status:          vo.ApplicantStatus(m.Status),
		State:           lifecycle.State(m.State),
		CertificatePath: m.CertificatePath,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	})
}

func MainMemberToModel(mm *membership.MainMember) *models.MainMemberModel {
	id := mm.Identity()
	return &models.MainMemberModel{
		ID:                mm.ID(),
		ApplicantID:       mm.ApplicantID(),
		ParlourID:         mm.ParlourID(),
		FirstName:         id.FirstName,
		LastName:          id.LastName,
		IDNumber:          id.IDNumber,
		DateOfBirth:       id.DateOfBirth,
		Number:            id.Number,
		DateJoined:        mm.DateJoined(),
		AgeLimitExceeded:  mm.AgeLimitExceeded(),
		AgeLimitException: mm.AgeLimitException(),
		IsDeceased:        mm.IsDeceased(),
		State:             mm.State().String(),
		Version:           mm.Version(),
		CreatedAt:         mm.CreatedAt(),
		UpdatedAt:         mm.UpdatedAt(),
	}
}

func MainMemberToDomain(m *models.MainMemberModel) (*membership.MainMember, error) {
	return membership.ReconstructMainMember(membership.MainMemberReconstructParams{
		ID:          m.ID,
		ApplicantID: m.ApplicantID,
		ParlourID:   m.ParlourID,
		Identity: membership.Identity{
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			IDNumber:    m.IDNumber,
			DateOfBirth: m.DateOfBirth,
			Number:      m.Number,
		},
		DateJoined:        m.DateJoined,
		AgeLimitExceeded:  m.AgeLimitExceeded,
		AgeLimitException: m.AgeLimitException,
		IsDeceased:        m.IsDeceased,
		State:             lifecycle.State(m.State),
		Version:           m.Version,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	})
}

func ExtendedMemberToModel(em *membership.ExtendedMember) *models.ExtendedMemberModel {
	id := em.Identity()
	return &models.ExtendedMemberModel{
		ID:                   em.ID(),
		ApplicantID:          em.ApplicantID(),
		ParlourID:            em.ParlourID(),
		FirstName:            id.FirstName,
		LastName:             id.LastName,
		IDNumber:             id.IDNumber,
		DateOfBirth:          id.DateOfBirth,
		Number:               id.Number,
		Type:                 em.Type().String(),
		RelationToMainMember: em.Relation().String(),
		DateJoined:           em.DateJoined(),
		AgeLimitExceeded:     em.AgeLimitExceeded(),
		AgeLimitException:    em.AgeLimitException(),
		WaitingPeriod:        em.WaitingPeriod(),
		IsMainMemberDeceased: em.IsMainMemberDeceased(),
		State:                em.State().String(),
		Version:              em.Version(),
		CreatedAt:            em.CreatedAt(),
		UpdatedAt:            em.UpdatedAt(),
	}
}

func ExtendedMemberToDomain(m *models.ExtendedMemberModel) (*membership.ExtendedMember, error) {
	return membership.ReconstructExtendedMember(membership.ExtendedMemberReconstructParams{
		ID:          m.ID,
		ApplicantID: m.ApplicantID,
		ParlourID:   m.ParlourID,
		Identity: membership.Identity{
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			IDNumber:    m.IDNumber,
			DateOfBirth: m.DateOfBirth,
			Number:      m.Number,
		},
		Type:                 vo.MemberType(m.Type),
		Relation:             vo.Relation(m.RelationToMainMember),
		DateJoined:           m.DateJoined,
		AgeLimitExceeded:     m.AgeLimitExceeded,
		AgeLimitException:    m.AgeLimitException,
		WaitingPeriod:        m.WaitingPeriod,
		IsMainMemberDeceased: m.IsMainMemberDeceased,
		State:                lifecycle.State(m.State),
		Version:              m.Version,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	})
}

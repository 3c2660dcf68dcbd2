package handlers

import (
	"github.com/parlourcover/parlour/internal/application/membership/usecases"
)

// MemberRequest carries the personal fields shared by main and extended
// members. Dates use YYYY-MM-DD; a missing date of birth is inferred from
// the ID number.
type MemberRequest struct {
	FirstName         string `json:"first_name" binding:"required,max=100"`
	LastName          string `json:"last_name" binding:"required,max=100"`
	IDNumber          string `json:"id_number" binding:"omitempty,said"`
	DateOfBirth       string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Number            string `json:"number" binding:"max=30"`
	DateJoined        string `json:"date_joined" binding:"omitempty,datetime=2006-01-02"`
	AgeLimitException bool   `json:"age_limit_exception"`
}

// ExtendedMemberRequest adds the cover type and relation of an extended member.
type ExtendedMemberRequest struct {
	MemberRequest
	Type     string `json:"type" binding:"required"`
	Relation string `json:"relation_to_main_member" binding:"required"`
}

func (r MemberRequest) toInput() (usecases.MemberInput, error) {
	dob, err := parseOptionalDate(r.DateOfBirth, "date_of_birth")
	if err != nil {
		return usecases.MemberInput{}, err
	}
	joined, err := parseOptionalDate(r.DateJoined, "date_joined")
	if err != nil {
		return usecases.MemberInput{}, err
	}

	return usecases.MemberInput{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		IDNumber:          r.IDNumber,
		DateOfBirth:       dob,
		Number:            r.Number,
		DateJoined:        joined,
		AgeLimitException: r.AgeLimitException,
	}, nil
}

func (r ExtendedMemberRequest) toInput() (usecases.MemberInput, error) {
	in, err := r.MemberRequest.toInput()
	if err != nil {
		return in, err
	}
	in.Type = r.Type
	in.Relation = r.Relation
	return in, nil
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/application/common"
	memberdto "github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/application/membership/usecases"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type addExtendedMemberUseCase interface {
	Execute(ctx context.Context, cmd usecases.AddExtendedMemberCommand) (*memberdto.ExtendedMemberDTO, error)
}

type updateExtendedMemberUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateExtendedMemberCommand) (*memberdto.ExtendedMemberDTO, error)
}

type deleteExtendedMemberUseCase interface {
	Execute(ctx context.Context, actor common.Actor, applicantID, memberID uint) error
}

type promoteExtendedMemberUseCase interface {
	Execute(ctx context.Context, cmd usecases.PromoteExtendedMemberCommand) (*memberdto.PromotionResultDTO, error)
}

type setAgeExceptionUseCase interface {
	Execute(ctx context.Context, cmd usecases.SetAgeExceptionCommand) error
}

type ExtendedMemberHandler struct {
	addUC       addExtendedMemberUseCase
	updateUC    updateExtendedMemberUseCase
	deleteUC    deleteExtendedMemberUseCase
	promoteUC   promoteExtendedMemberUseCase
	exceptionUC setAgeExceptionUseCase
	logger      logger.Interface
}

func NewExtendedMemberHandler(
	addUC addExtendedMemberUseCase,
	updateUC updateExtendedMemberUseCase,
	deleteUC deleteExtendedMemberUseCase,
	promoteUC promoteExtendedMemberUseCase,
	exceptionUC setAgeExceptionUseCase,
	logger logger.Interface,
) *ExtendedMemberHandler {
	return &ExtendedMemberHandler{
		addUC:       addUC,
		updateUC:    updateUC,
		deleteUC:    deleteUC,
		promoteUC:   promoteUC,
		exceptionUC: exceptionUC,
		logger:      logger,
	}
}

// PromoteRequest carries the promoted member's details as the new main
// member of the successor policy. The date of birth is inferred from the ID
// number when omitted.
type PromoteRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=100"`
	LastName    string `json:"last_name" binding:"required,max=100"`
	Type        string `json:"type" binding:"required"`
	Relation    string `json:"relation_to_main_member" binding:"required"`
	DateJoined  string `json:"date_joined" binding:"required,datetime=2006-01-02"`
	IDNumber    string `json:"id_number" binding:"required,said"`
	Number      string `json:"number" binding:"required,max=30"`
	DateOfBirth string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
}

func (r PromoteRequest) toInput() (usecases.MemberInput, error) {
	dob, err := parseOptionalDate(r.DateOfBirth, "date_of_birth")
	if err != nil {
		return usecases.MemberInput{}, err
	}
	joined, err := parseOptionalDate(r.DateJoined, "date_joined")
	if err != nil {
		return usecases.MemberInput{}, err
	}

	return usecases.MemberInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Type:        r.Type,
		Relation:    r.Relation,
		IDNumber:    r.IDNumber,
		DateOfBirth: dob,
		Number:      r.Number,
		DateJoined:  joined,
	}, nil
}

type AgeExceptionRequest struct {
	Exception *bool `json:"age_limit_exception" binding:"required"`
}

func (h *ExtendedMemberHandler) AddExtendedMember(c *gin.Context) {
	actor, applicantID, ok := actorAndApplicantID(c)
	if !ok {
		return
	}

	var req ExtendedMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for add extended member", "applicant_id", applicantID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	member, err := req.toInput()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.addUC.Execute(c.Request.Context(), usecases.AddExtendedMemberCommand{
		Actor:       actor,
		ApplicantID: applicantID,
		Member:      member,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Extended member added successfully")
}

func (h *ExtendedMemberHandler) UpdateExtendedMember(c *gin.Context) {
	actor, applicantID, memberID, ok := actorApplicantAndMember(c)
	if !ok {
		return
	}

	var req ExtendedMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update extended member", "member_id", memberID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	member, err := req.toInput()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateExtendedMemberCommand{
		Actor:       actor,
		ApplicantID: applicantID,
		MemberID:    memberID,
		Member:      member,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Extended member updated successfully", result)
}

func (h *ExtendedMemberHandler) DeleteExtendedMember(c *gin.Context) {
	actor, applicantID, memberID, ok := actorApplicantAndMember(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actor, applicantID, memberID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// PromoteExtendedMember replaces the deceased main member with this extended
// member. The response carries the successor applicant.
func (h *ExtendedMemberHandler) PromoteExtendedMember(c *gin.Context) {
	actor, applicantID, memberID, ok := actorApplicantAndMember(c)
	if !ok {
		return
	}

	var req PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for promote extended member", "member_id", memberID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	member, err := req.toInput()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.promoteUC.Execute(c.Request.Context(), usecases.PromoteExtendedMemberCommand{
		Actor:       actor,
		ApplicantID: applicantID,
		MemberID:    memberID,
		Member:      member,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Extended member promoted to main member", result)
}

func (h *ExtendedMemberHandler) SetAgeException(c *gin.Context) {
	actor, applicantID, memberID, ok := actorApplicantAndMember(c)
	if !ok {
		return
	}

	var req AgeExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for age exception", "member_id", memberID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.exceptionUC.Execute(c.Request.Context(), usecases.SetAgeExceptionCommand{
		Actor:       actor,
		ApplicantID: applicantID,
		MemberID:    memberID,
		Exception:   *req.Exception,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Age limit exception updated", nil)
}

func actorAndApplicantID(c *gin.Context) (common.Actor, uint, bool) {
	actor, ok := requireActor(c)
	if !ok {
		return actor, 0, false
	}

	applicantID, err := utils.ParseIDParam(c, "id", "applicant")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return actor, 0, false
	}
	return actor, applicantID, true
}

func actorApplicantAndMember(c *gin.Context) (common.Actor, uint, uint, bool) {
	actor, applicantID, ok := actorAndApplicantID(c)
	if !ok {
		return actor, 0, 0, false
	}

	memberID, err := utils.ParseIDParam(c, "member_id", "extended member")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return actor, 0, 0, false
	}
	return actor, applicantID, memberID, true
}

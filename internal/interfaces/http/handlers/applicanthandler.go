package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/application/common"
	memberdto "github.com/parlourcover/parlour/internal/application/membership/dto"
	"github.com/parlourcover/parlour/internal/application/membership/usecases"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/constants"
	"github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type createApplicantUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateApplicantCommand) (*memberdto.ApplicantDTO, error)
}

type getApplicantUseCase interface {
	Execute(ctx context.Context, actor common.Actor, applicantID uint) (*memberdto.ApplicantDTO, error)
}

type listApplicantsUseCase interface {
	Execute(ctx context.Context, query usecases.ListApplicantsQuery) (*memberdto.ListApplicantsResponse, error)
}

type updateApplicantUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateApplicantCommand) (*memberdto.ApplicantDTO, error)
}

// applicantActionUseCase covers archive and delete.
type applicantActionUseCase interface {
	Execute(ctx context.Context, actor common.Actor, applicantID uint) error
}

type exportApplicantsUseCase interface {
	Execute(ctx context.Context, query usecases.ExportApplicantsQuery, w io.Writer) (int, error)
}

type regenerateCertificateUseCase interface {
	Execute(ctx context.Context, actor common.Actor, applicantID uint) (*memberdto.ApplicantDTO, error)
}

type importMembersUseCase interface {
	Execute(ctx context.Context, cmd usecases.ImportMembersCommand) (*memberdto.ImportResultDTO, error)
}

type recomputeAgeLimitUseCase interface {
	Execute(ctx context.Context, actor common.Actor, applicantID uint) (*memberdto.AgeLimitResultDTO, error)
}

type updateMainMemberUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateMainMemberCommand) (*memberdto.MainMemberDTO, error)
}

// ApplicantUseCases groups the use cases behind ApplicantHandler.
type ApplicantUseCases struct {
	Create           createApplicantUseCase
	Get              getApplicantUseCase
	List             listApplicantsUseCase
	Update           updateApplicantUseCase
	Archive          applicantActionUseCase
	Delete           applicantActionUseCase
	Export           exportApplicantsUseCase
	Certificate      regenerateCertificateUseCase
	Import           importMembersUseCase
	AgeLimit         recomputeAgeLimitUseCase
	UpdateMainMember updateMainMemberUseCase
}

type ApplicantHandler struct {
	uc     ApplicantUseCases
	logger logger.Interface
}

func NewApplicantHandler(uc ApplicantUseCases, logger logger.Interface) *ApplicantHandler {
	return &ApplicantHandler{
		uc:     uc,
		logger: logger,
	}
}

type CreateApplicantRequest struct {
	PlanID    uint   `json:"plan_id" binding:"required"`
	PolicyNum string `json:"policy_num" binding:"required,max=50"`
	// ConsultantID defaults to the caller.
	ConsultantID uint          `json:"consultant_id"`
	MainMember   MemberRequest `json:"main_member"`
}

type UpdateApplicantRequest struct {
	PlanID       *uint   `json:"plan_id"`
	PolicyNum    *string `json:"policy_num" binding:"omitempty,max=50"`
	ConsultantID *uint   `json:"consultant_id"`
}

func (h *ApplicantHandler) CreateApplicant(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create applicant", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	main, err := req.MainMember.toInput()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Create.Execute(c.Request.Context(), usecases.CreateApplicantCommand{
		Actor:        actor,
		PlanID:       req.PlanID,
		PolicyNum:    req.PolicyNum,
		ConsultantID: req.ConsultantID,
		MainMember:   main,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Applicant created successfully")
}

func (h *ApplicantHandler) GetApplicant(c *gin.Context) {
	actor, applicantID, ok := actorAndApplicantID(c)
	if !ok {
		return
	}

	result, err := h.uc.Get.Execute(c.Request.Context(), actor, applicantID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ApplicantHandler) ListApplicants(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	parlourID, ok := optionalUintQuery(c, "parlour_id")
	if !ok {
		return
	}
	planID, ok := optionalUintQuery(c, "plan_id")
	if !ok {
		return
	}
	consultantID, ok := optionalUintQuery(c, "consultant_id")
	if !ok {
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.uc.List.Execute(c.Request.Context(), usecases.ListApplicantsQuery{
		Actor:        actor,
		ParlourID:    uintOrZero(parlourID),
		ConsultantID: consultantID,
		PlanID:       planID,
		Status:       c.Query("status"),
		State:        c.Query("state"),
		PolicyNum:    c.Query("policy_num"),
		Page:         p.Page,
		PageSize:     p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Applicants, result.Total, result.Page, result.PageSize)
}

func (h *ApplicantHandler) UpdateApplicant(c *gin.Context) {
	actor, applicantID, ok := actorAndApplicantID(c)
	if !ok {
		return
	}

	var req UpdateApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update applicant", "applicant_id", applicantID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.Update.Execute(c.Request.Context(), usecases.UpdateApplicantCommand{
		Actor:        actor,
		ApplicantID:  applicantID,
		PlanID:       req.PlanID,
		PolicyNum:    req.PolicyNum,
		ConsultantID: req.ConsultantID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Applicant updated successfully", result)
}

func (h *ApplicantHandler) ArchiveApplicant(c *gin.Context) {
	actor, applicantID, ok := actorAndApplicantID(c)
	if !ok {
		return
	}

	if err := h.uc.Archive.Execute(c.Request.Context(), actor, applicantID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Applicant archived successfully", nil)
}

func (h *ApplicantHandler) DeleteApplicant(c *gin.Context) {
	actor, applicantID, ok := actorAndApplicantID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), actor, applicantID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// ExportToExcel streams the filtered applicants as an .xlsx workbook.
func (h *ApplicantHandler) ExportToExcel(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	parlourID, ok := optionalUintQuery(c, "parlour_id")
	if !ok {
		return
	}
	planID, ok := optionalUintQuery(c, "plan_id")
	if !ok {
		return
	}

	var buf bytes.Buffer
	rows, err := h.uc.Export.Execute(c.Request.Context(), usecases.ExportApplicantsQuery{
		Actor:     actor,
		ParlourID: uintOrZero(parlourID),
		Status:    c.Query("status"),
		State:     c.Query("state"),
		PlanID:    planID,
	}, &buf)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	filename := fmt.Sprintf("applicants-%s.xlsx", biztime.FormatDate(biztime.NowUTC()))
	h.logger.Infow("applicants exported", "rows", rows, "consultant_id", actor.ConsultantID)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, constants.ContentTypeXLSX, buf.Bytes())
}

func (h *ApplicantHandler) RegenerateCertificate(c *gin.Context) {
	actor, applicantID, ok := actorAndApplicantID(c)
	if !ok {
		return
	}

	result, err := h.uc.Certificate.Execute(c.Request.Context(), actor, applicantID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Certificate generated", result)
}

// ImportMembers accepts a CSV upload as multipart field "file" or as a raw
// text/csv body. Rejected rows are reported next to the imported members.
func (h *ApplicantHandler) ImportMembers(c *gin.Context) {
	actor, applicantID, ok := actorAndApplicantID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, constants.MaxImportFileSize)

	file, closeFile, err := importSource(c)
	if err != nil {
		h.logger.Warnw("invalid import upload", "applicant_id", applicantID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer closeFile()

	result, err := h.uc.Import.Execute(c.Request.Context(), usecases.ImportMembersCommand{
		Actor:       actor,
		ApplicantID: applicantID,
		File:        file,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := fmt.Sprintf("Imported %d members, rejected %d rows", result.Accepted, result.Rejected)
	utils.SuccessResponse(c, http.StatusOK, message, result)
}

func importSource(c *gin.Context) (io.Reader, func(), error) {
	contentType := c.ContentType()
	if strings.HasPrefix(contentType, "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, nil, errors.NewValidationError("a CSV file is required in field \"file\"").WithField("file")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, nil, errors.NewValidationError("failed to read uploaded file", err.Error()).WithField("file")
		}
		return f, func() { _ = f.Close() }, nil
	}

	if contentType != "text/csv" && contentType != "text/plain" {
		return nil, nil, errors.NewBadRequestError("upload a CSV file as multipart/form-data or text/csv")
	}
	return c.Request.Body, func() {}, nil
}

// RecomputeAgeLimit re-evaluates the age-limit flags of every member.
func (h *ApplicantHandler) RecomputeAgeLimit(c *gin.Context) {
	actor, applicantID, ok := actorAndApplicantID(c)
	if !ok {
		return
	}

	result, err := h.uc.AgeLimit.Execute(c.Request.Context(), actor, applicantID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ApplicantHandler) UpdateMainMember(c *gin.Context) {
	actor, applicantID, ok := actorAndApplicantID(c)
	if !ok {
		return
	}

	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update main member", "applicant_id", applicantID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	member, err := req.toInput()
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.uc.UpdateMainMember.Execute(c.Request.Context(), usecases.UpdateMainMemberCommand{
		Actor:       actor,
		ApplicantID: applicantID,
		Member:      member,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Main member updated successfully", result)
}

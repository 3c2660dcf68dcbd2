package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	consultantdto "github.com/parlourcover/parlour/internal/application/consultant/dto"
	"github.com/parlourcover/parlour/internal/application/consultant/usecases"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*consultantdto.LoginResponse, error)
}

type AuthHandler struct {
	loginUC         loginUseCase
	getConsultantUC getConsultantUseCase
	logger          logger.Interface
}

func NewAuthHandler(loginUC loginUseCase, getConsultantUC getConsultantUseCase, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		loginUC:         loginUC,
		getConsultantUC: getConsultantUC,
		logger:          logger,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for login", "error", err, "client_ip", c.ClientIP())
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", result)
}

// Me returns the consultant behind the session token.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.getConsultantUC.Execute(c.Request.Context(), usecases.GetConsultantQuery{
		Actor:        actor,
		ConsultantID: actor.ConsultantID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

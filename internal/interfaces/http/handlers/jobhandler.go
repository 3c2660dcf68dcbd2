package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	paymentdto "github.com/parlourcover/parlour/internal/application/payment/dto"
	"github.com/parlourcover/parlour/internal/shared/constants"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

// BatchJob is a nightly job that can also be triggered over HTTP.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// JobHandler runs batch jobs on demand for service accounts.
type JobHandler struct {
	jobs   map[string]BatchJob
	logger logger.Interface
}

func NewJobHandler(jobs map[string]BatchJob, logger logger.Interface) *JobHandler {
	return &JobHandler{
		jobs:   jobs,
		logger: logger,
	}
}

// Run returns a handler for the named job.
func (h *JobHandler) Run(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		job, ok := h.jobs[name]
		if !ok {
			utils.ErrorResponse(c, http.StatusNotFound, constants.ErrMsgResourceNotFound)
			return
		}

		changed, err := job.Execute(c.Request.Context())
		if err != nil {
			h.logger.Errorw("batch job failed", "job", name, "error", err, "service_account", c.GetString(constants.ContextKeyService))
			utils.ErrorResponseWithError(c, err)
			return
		}

		h.logger.Infow("batch job triggered", "job", name, "changed", changed, "service_account", c.GetString(constants.ContextKeyService))
		utils.SuccessResponse(c, http.StatusOK, "", paymentdto.BatchResultDTO{Job: name, Changed: changed})
	}
}

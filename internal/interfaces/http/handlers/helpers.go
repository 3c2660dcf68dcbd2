package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/interfaces/http/middleware"
	"github.com/parlourcover/parlour/internal/shared/biztime"
	"github.com/parlourcover/parlour/internal/shared/errors"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

// requireActor returns the authenticated caller or writes a 401 response.
func requireActor(c *gin.Context) (common.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "user not authenticated")
		return common.Actor{}, false
	}
	return actor, true
}

// parseOptionalDate parses a YYYY-MM-DD request field; empty means unset.
func parseOptionalDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := biztime.ParseDate(value)
	if err != nil {
		return nil, errors.NewValidationError(field + " must be a date in the format YYYY-MM-DD").WithField(field)
	}
	return &t, nil
}

// optionalUintQuery reads a numeric filter and writes a 400 on malformed input.
func optionalUintQuery(c *gin.Context, key string) (*uint, bool) {
	v, err := utils.ParseOptionalUintQuery(c, key)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return nil, false
	}
	return v, true
}

func uintOrZero(v *uint) uint {
	if v == nil {
		return 0
	}
	return *v
}

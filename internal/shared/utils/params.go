package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/shared/errors"
)

// ParseIDParam parses a positive numeric ID from a URL path parameter.
// paramName is the Gin route parameter name (e.g., "id", "member_id").
// entityName is used in error messages (e.g., "applicant", "extended member").
func ParseIDParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError(
			fmt.Sprintf("invalid %s ID %q", entityName, raw),
		).WithField(paramName)
	}

	return uint(id), nil
}

// ParseOptionalUintQuery reads an optional numeric query parameter. Missing
// values return nil; malformed ones are validation errors.
func ParseOptionalUintQuery(c *gin.Context, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("%s must be a positive number", key)).WithField(key)
	}

	id := uint(v)
	return &id, nil
}

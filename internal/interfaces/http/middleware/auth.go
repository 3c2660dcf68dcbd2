package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/infrastructure/auth"
	"github.com/parlourcover/parlour/internal/shared/constants"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

// TokenVerifier validates a session token. *auth.JWTService satisfies it.
type TokenVerifier interface {
	Verify(tokenString string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwtService TokenVerifier
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err, "client_ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		SetActor(c, common.Actor{
			ConsultantID: claims.ConsultantID,
			ParlourID:    claims.ParlourID,
			Role:         claims.Role,
		})

		c.Next()
	}
}

// SetActor stores the authenticated caller on the request context.
func SetActor(c *gin.Context, actor common.Actor) {
	c.Set(constants.ContextKeyActor, actor)
	c.Set(constants.ContextKeyUserID, actor.ConsultantID)
	c.Set(constants.ContextKeyParlourID, actor.ParlourID)
	c.Set(constants.ContextKeyUserRole, string(actor.Role))
}

// GetActor returns the caller set by RequireAuth or RequireService.
func GetActor(c *gin.Context) (common.Actor, bool) {
	v, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return common.Actor{}, false
	}
	actor, ok := v.(common.Actor)
	return actor, ok
}

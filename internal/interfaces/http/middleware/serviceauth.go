package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parlourcover/parlour/internal/application/common"
	"github.com/parlourcover/parlour/internal/shared/authorization"
	"github.com/parlourcover/parlour/internal/shared/config"
	"github.com/parlourcover/parlour/internal/shared/constants"
	"github.com/parlourcover/parlour/internal/shared/logger"
	"github.com/parlourcover/parlour/internal/shared/utils"
)

const serviceRealm = "parlour internal"

// ServiceAuthMiddleware authenticates service-to-service calls with HTTP Basic
// credentials from auth.service_accounts.
type ServiceAuthMiddleware struct {
	accounts gin.Accounts
	logger   logger.Interface
}

func NewServiceAuthMiddleware(accounts []config.ServiceAccount, logger logger.Interface) *ServiceAuthMiddleware {
	ga := make(gin.Accounts, len(accounts))
	for _, a := range accounts {
		if a.Username == "" || a.Password == "" {
			continue
		}
		ga[a.Username] = a.Password
	}
	return &ServiceAuthMiddleware{
		accounts: ga,
		logger:   logger,
	}
}

func (m *ServiceAuthMiddleware) RequireService() gin.HandlerFunc {
	if len(m.accounts) == 0 {
		m.logger.Warnw("no service accounts configured, internal endpoints are disabled")
		return func(c *gin.Context) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "service authentication is not configured")
			c.Abort()
		}
	}

	basic := gin.BasicAuthForRealm(m.accounts, serviceRealm)
	return func(c *gin.Context) {
		basic(c)
		if c.IsAborted() {
			m.logger.Warnw("service authentication failed", "client_ip", c.ClientIP(), "path", c.Request.URL.Path)
			return
		}

		c.Set(constants.ContextKeyService, c.GetString(gin.AuthUserKey))
		SetActor(c, common.Actor{Role: authorization.RoleService})
		c.Next()
	}
}

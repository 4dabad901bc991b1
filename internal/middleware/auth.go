package middleware

import (
	"context"
	"net/http"
	"strings"

	"researchhub/internal/domain"
	jwtsvc "researchhub/internal/pkg/jwt"
	"researchhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const accountContextKey = "account"

type AccountLoader interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
}

// AuthRequired validates the bearer token and reloads the account from
// the store. Capabilities are derived from the fresh record, never from
// token claims, so a suspension applies on the very next request.
func AuthRequired(jwt *jwtsvc.Service, accounts AccountLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid Authorization header")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			c.Abort()
			return
		}

		account, err := accounts.GetByID(c.Request.Context(), claims.AccountID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Account no longer exists")
			c.Abort()
			return
		}

		c.Set(accountContextKey, account)
		c.Set("account_id", account.ID)
		c.Set("role", string(account.Role))

		c.Next()
	}
}

// AccountFrom returns the account loaded by AuthRequired.
func AccountFrom(c *gin.Context) (*domain.Account, bool) {
	v, ok := c.Get(accountContextKey)
	if !ok {
		return nil, false
	}
	account, ok := v.(*domain.Account)
	return account, ok
}

package middleware

import (
	"net/http"

	"researchhub/internal/domain"
	"researchhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireCapability gates a route on a capability derived from the
// freshly loaded account. Pending/rejected/suspended accounts fail here
// for everything except viewing their own status.
func RequireCapability(required domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := AccountFrom(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if !domain.CapabilitiesFor(account).Has(required) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

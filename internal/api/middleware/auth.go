package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/GridBoard/internal/providers/auth"
)

// TokenHeader carries the session token on authenticated requests
const TokenHeader = "x-auth-token"

// Context keys set by Auth
const (
	KeyAccountID = "account_id"
	KeyToken     = "auth_token"
)

// Auth validates the session token and stores the account id on the
// request context
func Auth(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(TokenHeader)
		accountID, err := svc.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(KeyAccountID, accountID)
		c.Set(KeyToken, token)
		c.Next()
	}
}

// AccountID reads the authenticated account id from the request context
func AccountID(c *gin.Context) string {
	return c.GetString(KeyAccountID)
}

// Token reads the session token from the request context
func Token(c *gin.Context) string {
	return c.GetString(KeyToken)
}

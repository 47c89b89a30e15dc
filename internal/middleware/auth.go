// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/services"
	"github.com/minicart/minicart-backend/internal/utils"
)

// AuthRequired rejects requests without a valid bearer token and stores the
// caller's id under "user_id".
func AuthRequired(tokens *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			return
		}

		claims, err := tokens.ValidateJWT(strings.TrimSpace(parts[1]))
		if err != nil {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidToken))
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired. The admin flag is read from the
// database on every request, so revoking it takes effect immediately.
func AdminRequired(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := utils.GetLangFromContext(c)

		userID, ok := utils.GetUserIDFromContext(c)
		if !ok {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthRequired))
			return
		}

		if _, err := authService.RequireAdmin(userID); err != nil {
			if errors.Is(err, services.ErrForbidden) {
				utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAdminAccessDenied))
				return
			}
			utils.InternalErrorResponse(c, err.Error())
			return
		}

		c.Next()
	}
}

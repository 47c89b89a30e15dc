// internal/handlers/errors.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/minicart/minicart-backend/internal/i18n"
	"github.com/minicart/minicart-backend/internal/services"
	"github.com/minicart/minicart-backend/internal/utils"
)

// handleError writes the response for a failed service call.
func handleError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	var serviceErr *services.Error
	if !errors.As(err, &serviceErr) {
		logrus.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("Request failed")
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	message := i18n.T(lang, serviceErr.Key)
	switch {
	case errors.Is(err, services.ErrValidation):
		if len(serviceErr.Details) > 0 {
			utils.ValidationErrorResponse(c, message, serviceErr.Details)
			return
		}
		utils.BadRequestResponse(c, message, nil)
	case errors.Is(err, services.ErrUnauthorized):
		utils.UnauthorizedResponse(c, message)
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, message)
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, serviceErr.Key)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, message)
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
	}
}

// bindJSON decodes the request body, answering 400 when it is not valid JSON.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid), err.Error())
		return false
	}
	return true
}

// idParam parses a positive numeric path parameter. A malformed id is
// reported as not found, the same as an id that does not exist.
func idParam(c *gin.Context, name, notFoundKey string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.NotFoundResponse(c, notFoundKey)
		return 0, false
	}
	return uint(id), true
}

func currentUserID(c *gin.Context) (uint, bool) {
	userID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
	}
	return userID, ok
}

package middleware

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "github.com/corkphoto/itinerary-backend/errors"
	"github.com/corkphoto/itinerary-backend/logger"
	"github.com/corkphoto/itinerary-backend/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached to the context as a types.ErrorResponse.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()
		err := last.Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			status := appErr.GetHTTPStatus()
			logger.LogHTTPError(c, err, status, string(appErr.Type))

			resp := types.ErrorResponse{
				Type:    string(appErr.Type),
				Message: appErr.Message,
				Code:    strconv.Itoa(status),
			}
			// Server-side details stay in the logs.
			if status < http.StatusInternalServerError || gin.IsDebugging() {
				resp.Details = appErr.Detail
			}
			c.JSON(status, resp)
			return
		}

		if last.Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, http.StatusBadRequest, "Request binding error")
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Type:    string(apperrors.ValidationError),
				Message: "Failed to bind request",
				Code:    strconv.Itoa(http.StatusBadRequest),
				Details: err.Error(),
			})
			return
		}

		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected server error")
		resp := types.ErrorResponse{
			Type:    string(apperrors.ServerError),
			Message: "Internal Server Error",
			Code:    strconv.Itoa(http.StatusInternalServerError),
		}
		if gin.IsDebugging() {
			resp.Details = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
	}
}

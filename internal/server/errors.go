package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	billdomain "github.com/ormgarage/facturation/internal/bill/domain"
	clientdomain "github.com/ormgarage/facturation/internal/client/domain"
	"gorm.io/gorm"
)

var ErrInvalidRequest = errors.New("invalid_request")

type errorResponse struct {
	Message string `json:"message"`
}

// ErrorHandlingMiddleware maps collected errors to a status and a JSON
// {message} body after the handler chain ran.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, message := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Message: message})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, billdomain.ErrMissingClient):
		return http.StatusBadRequest, "Client information is required"
	case errors.Is(err, billdomain.ErrEmptyItems):
		return http.StatusBadRequest, "At least one item is required"
	case errors.Is(err, billdomain.ErrInvalidItemName):
		return http.StatusBadRequest, "Item name is required"
	case errors.Is(err, billdomain.ErrMissingUnitPrice):
		return http.StatusBadRequest, "Item unit price is required"
	case errors.Is(err, clientdomain.ErrInvalidName):
		return http.StatusBadRequest, "Client name is required"
	case errors.Is(err, clientdomain.ErrInvalidPhone):
		return http.StatusBadRequest, "Client phone is required"
	case errors.Is(err, clientdomain.ErrCodeTaken):
		return http.StatusConflict, "Client with this code already exists"
	case errors.Is(err, clientdomain.ErrNotFound):
		return http.StatusNotFound, "Client not found"
	case errors.Is(err, billdomain.ErrNotFound):
		return http.StatusNotFound, "Bill not found"
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

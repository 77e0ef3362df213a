package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/procurex/procurement/internal/domain/errors"
	"github.com/procurex/procurement/internal/server/http/dto"
	"github.com/procurex/procurement/internal/server/http/middleware"
)

// CurrentAdminID extracts authenticated admin identifier from context.
func CurrentAdminID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.AdminIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// respondError writes the error as a JSON payload with a machine-checkable
// kind and the appropriate HTTP status.
func respondError(c *gin.Context, err error) {
	var status int
	var kind string
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		status, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, domainErrors.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		status, kind = http.StatusConflict, "invalid_transition"
	case errors.Is(err, domainErrors.ErrConflict):
		status, kind = http.StatusConflict, "conflict"
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		status, kind = http.StatusConflict, "already_exists"
	default:
		status, kind = http.StatusInternalServerError, "internal"
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}
	c.JSON(status, dto.ErrorResponse{Kind: kind, Message: message})
}

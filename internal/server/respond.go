package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hollis/pennyflow/internal/common"
)

// respondError maps an error kind onto an HTTP status and writes a JSON
// error body. User-facing messages come from UserError wrappers when
// present; internal errors never leak their details to the client.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrInvalidState), errors.Is(err, common.ErrDuplicateEntry):
		status = http.StatusConflict
	case errors.Is(err, common.ErrConstraintViolation), errors.Is(err, common.ErrInvalidConfig):
		status = http.StatusUnprocessableEntity
	}

	message := http.StatusText(status)
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		message = userErr.UserMessage
	} else if status != http.StatusInternalServerError {
		message = err.Error()
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondBadRequest writes a 400 for malformed input (binding failures,
// unparseable parameters).
func respondBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexanderramin/streakhq/internal/importer"
	"github.com/alexanderramin/streakhq/internal/ops"
	"github.com/alexanderramin/streakhq/internal/persist"
	"github.com/alexanderramin/streakhq/internal/service"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{ops.ErrCategoryNotFound, http.StatusNotFound},
	{ops.ErrTaskNotFound, http.StatusNotFound},
	{ops.ErrProjectNotFound, http.StatusNotFound},
	{ops.ErrCategoryExists, http.StatusConflict},
	{ops.ErrNoPendingXP, http.StatusConflict},
	{ops.ErrSpendGateLocked, http.StatusConflict},
	{ops.ErrEmptyName, http.StatusUnprocessableEntity},
	{ops.ErrInvalidTask, http.StatusUnprocessableEntity},
	{ops.ErrInvalidDate, http.StatusUnprocessableEntity},
	{ops.ErrInvalidAmount, http.StatusUnprocessableEntity},
	{ops.ErrInvalidLedgerType, http.StatusUnprocessableEntity},
	{ops.ErrInvalidSettings, http.StatusUnprocessableEntity},
	{ops.ErrInvalidProjectInfo, http.StatusUnprocessableEntity},
	{importer.ErrInvalidFormat, http.StatusUnprocessableEntity},
	{persist.ErrNoSession, http.StatusUnauthorized},
	{persist.ErrCloudDisabled, http.StatusServiceUnavailable},
	{service.ErrNotOpen, http.StatusServiceUnavailable},
}

func statusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
}

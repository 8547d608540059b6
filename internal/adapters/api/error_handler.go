package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	errorspkg "weathermap.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFor maps an error onto its HTTP status and client-facing message
func statusFor(err error) (int, string) {
	var appErr *errorspkg.AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, "Internal server error"
	}

	switch appErr.Type {
	case errorspkg.ValidationError:
		return http.StatusBadRequest, appErr.Message
	case errorspkg.NotFoundError:
		return http.StatusNotFound, appErr.Message
	case errorspkg.SessionClosedError:
		return http.StatusGone, appErr.Message
	case errorspkg.UnavailableError:
		return http.StatusServiceUnavailable, appErr.Message
	case errorspkg.ExternalAPIError:
		return http.StatusServiceUnavailable, "External service unavailable"
	case errorspkg.LibraryLoadError:
		return http.StatusServiceUnavailable, "Map library could not be loaded"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// handleError handles different types of application errors
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	statusCode, message := statusFor(err)
	if statusCode >= http.StatusInternalServerError {
		slog.Error("Request failed", "path", c.FullPath(), "status", statusCode, "error", err)
	}
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// getMetrics handles GET /api/metrics requests
func (s *HTTPServerAdapter) getMetrics(c *gin.Context) {
	slog.Debug("Metrics endpoint called")

	metrics, err := s.metricsCollector.GetMetrics(c.Request.Context())
	if err != nil {
		slog.Error("Error getting metrics", "error", err)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// getHealth handles GET /api/health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.healthChecker.CheckAll(c.Request.Context())

	status, code := "healthy", http.StatusOK
	for _, component := range results {
		if component.Status == "unhealthy" {
			status, code = "unhealthy", http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(code, gin.H{
		"status":     status,
		"components": results,
	})
}

package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/naatacademy/naat-api/internal/audit"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error         string   `json:"error"`
	Code          string   `json:"code,omitempty"`          // machine-readable error code
	MissingFields []string `json:"missingFields,omitempty"` // required fields absent from a create or update
	Details       any      `json:"details,omitempty"`       // additional context
}

// MutationResponse is returned by create, update and delete endpoints.
type MutationResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
	Success bool   `json:"success"`
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	HasMore    bool  `json:"has_more"`
	TotalPages int   `json:"total_pages,omitempty"`
}

func newPaginatedResponse(data any, total int64, limit, offset int) PaginatedResponse {
	resp := PaginatedResponse{
		Data:    data,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+limit) < total,
	}
	if limit > 0 {
		resp.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return resp
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

// respondMissingFields sends a 400 listing the required fields that were
// absent, empty or zero.
func respondMissingFields(c *gin.Context, missing []string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:         "missing required fields",
		Code:          "missing_fields",
		MissingFields: missing,
	})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: "not_found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
}

// respondError sends an error response with the given status code.
// Use the specific helpers (respondBadRequest, respondNotFound, etc.) when possible.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// --- Success Response Helpers ---

func respondCreated(c *gin.Context, message string, id uint) {
	c.JSON(http.StatusCreated, MutationResponse{Message: message, ID: id, Success: true})
}

func respondMutation(c *gin.Context, message string, id uint) {
	c.JSON(http.StatusOK, MutationResponse{Message: message, ID: id, Success: true})
}

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseCount reads a non-negative integer from the query string. An absent
// value yields def; values above max are clamped. Malformed values get a 400.
func parseCount(c *gin.Context, paramName string, def, max int) (int, bool) {
	return countValue(c, c.Query(paramName), paramName, def, max)
}

// parseCountParam is parseCount for a route parameter. The query string is
// never consulted.
func parseCountParam(c *gin.Context, paramName string, def, max int) (int, bool) {
	return countValue(c, c.Param(paramName), paramName, def, max)
}

func countValue(c *gin.Context, raw, paramName string, def, max int) (int, bool) {
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	if max > 0 && n > max {
		n = max
	}
	return n, true
}

// requestInfo identifies the caller for the audit trail.
func requestInfo(c *gin.Context) audit.RequestInfo {
	return audit.RequestInfo{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

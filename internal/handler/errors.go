package handler

import "github.com/gin-gonic/gin"

// Machine-readable error codes surfaced alongside the human-readable message.
const (
	CodeValidation   = "validation_error"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeRateLimited  = "rate_limited"
	CodeInternal     = "internal"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Code  string `json:"code" example:"not_found"`
	Error string `json:"error" example:"An error message"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Code: code, Error: message})
}

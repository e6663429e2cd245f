package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response defines the standard API response envelope.
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    Meta        `json:"meta"`
}

// ErrorInfo provides details for error responses.
type ErrorInfo struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// Meta contains request-scoped metadata.
type Meta struct {
	RequestID  string      `json:"requestId"`
	Timestamp  string      `json:"timestamp"`
	Fallback   bool        `json:"fallback,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination holds pagination metadata for list responses.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Success writes a success response with the standard envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
		Meta: Meta{
			RequestID: getRequestID(c),
			Timestamp: time.Now().Format(time.RFC3339),
		},
	})
}

// SuccessWithFallback writes a success response carrying the fallback
// flag for unpaginated payloads served from seed data.
func SuccessWithFallback(c *gin.Context, code int, message string, data interface{}, fallback bool) {
	c.JSON(code, Response{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
		Meta: Meta{
			RequestID: getRequestID(c),
			Timestamp: time.Now().Format(time.RFC3339),
			Fallback:  fallback,
		},
	})
}

// SuccessWithPagination writes a success response with pagination
// metadata. The fallback flag marks responses served from seed data
// after an upstream failure.
func SuccessWithPagination(c *gin.Context, code int, message string, data interface{}, p Pagination, fallback bool) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit > 0 && p.TotalPages == 0 {
		p.TotalPages = (p.TotalItems + p.Limit - 1) / p.Limit
	}
	c.JSON(code, Response{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
		Meta: Meta{
			RequestID:  getRequestID(c),
			Timestamp:  time.Now().Format(time.RFC3339),
			Fallback:   fallback,
			Pagination: &p,
		},
	})
}

// Error writes an error response with provided API error code and message.
func Error(c *gin.Context, code int, errCode, message string) {
	c.JSON(code, Response{
		Success: false,
		Code:    code,
		Message: message,
		Error: &ErrorInfo{
			Code:    errCode,
			Message: message,
		},
		Meta: Meta{
			RequestID: getRequestID(c),
			Timestamp: time.Now().Format(time.RFC3339),
		},
	})
}

// ValidationFailed writes a 400 carrying the collected validation messages.
func ValidationFailed(c *gin.Context, messages []string) {
	c.JSON(400, Response{
		Success: false,
		Code:    400,
		Message: "Validation failed",
		Error: &ErrorInfo{
			Code:    "VALIDATION_FAILED",
			Message: "Validation failed",
			Details: messages,
		},
		Meta: Meta{
			RequestID: getRequestID(c),
			Timestamp: time.Now().Format(time.RFC3339),
		},
	})
}

func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return uuid.New().String()[:8]
}

// NowISO returns the current time in ISO 8601 format in the store's
// timezone (Cairo, UTC+2).
func NowISO() string {
	eet := time.FixedZone("EET", 2*3600)
	return time.Now().In(eet).Format("2006-01-02T15:04:05-07:00")
}

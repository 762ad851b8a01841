package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Response defines the standard API response envelope. Its data field is the
// same "data" key the upstream AddressKit API may wrap payloads in.
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
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta contains request-scoped metadata.
type Meta struct {
	RequestID    string `json:"requestId"`
	Timestamp    string `json:"timestamp"`
	Total        *int   `json:"total,omitempty"`
	Query        string `json:"query,omitempty"`
	ProvinceCode string `json:"provinceCode,omitempty"`
	DistrictCode string `json:"districtCode,omitempty"`
}

// Success writes a success response with the standard envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
		Meta:    NewMeta(c),
	})
}

// SuccessWithMeta writes a success response with caller-filled metadata.
// Request id and timestamp are filled in when left empty.
func SuccessWithMeta(c *gin.Context, code int, message string, data interface{}, meta Meta) {
	base := NewMeta(c)
	if meta.RequestID == "" {
		meta.RequestID = base.RequestID
	}
	if meta.Timestamp == "" {
		meta.Timestamp = base.Timestamp
	}
	c.JSON(code, Response{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
		Meta:    meta,
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
		Meta: NewMeta(c),
	})
}

// AbortError writes an error response and stops the middleware chain.
func AbortError(c *gin.Context, code int, errCode, message string) {
	Error(c, code, errCode, message)
	c.Abort()
}

// NewMeta returns metadata carrying the current request id and time.
func NewMeta(c *gin.Context) Meta {
	return Meta{
		RequestID: getRequestID(c),
		Timestamp: NowISO(),
	}
}

// IntPtr returns a pointer to n, for optional meta fields.
func IntPtr(n int) *int { return &n }

func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return uuid.New().String()[:8]
}

// NowISO returns the current time in ISO 8601 format with ICT (UTC+7) timezone.
func NowISO() string {
	ict := time.FixedZone("ICT", 7*3600)
	return time.Now().In(ict).Format(time.RFC3339)
}

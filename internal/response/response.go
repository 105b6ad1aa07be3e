// Package response holds the JSON envelopes shared by the HTTP handlers.
package response

import (
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/notify"
	"github.com/gin-gonic/gin"
)

// RateLimitKey is where the rate limiter middleware leaves its *RateLimit.
const RateLimitKey = "rateLimiter"

type ApiResponse struct {
	Message         string        `json:"message"`
	Data            any           `json:"data,omitempty"`
	Error           bool          `json:"error,omitempty"`
	Meta            *Pagination   `json:"meta,omitempty"`
	Toast           *notify.Toast `json:"toast,omitempty"`
	Rate            *RateLimit    `json:"rate_limit,omitempty"`
	RequestedEntity string        `json:"requested_entity,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type RateLimit struct {
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	ResetAt        time.Time `json:"reset_at"`
	ResetInSeconds int       `json:"reset_in_seconds"`
}

func rateFromContext(c *gin.Context) *RateLimit {
	if c == nil {
		return nil
	}
	if v, ok := c.Get(RateLimitKey); ok {
		if rl, ok := v.(*RateLimit); ok {
			return rl
		}
	}
	return nil
}

func entity(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return ""
	}
	return c.Request.Method + " " + c.FullPath()
}

func Success(c *gin.Context, message string, data any) ApiResponse {
	return ApiResponse{
		Message:         message,
		Data:            data,
		Rate:            rateFromContext(c),
		RequestedEntity: entity(c),
	}
}

func Paginated(c *gin.Context, message string, data any, meta *Pagination) ApiResponse {
	return ApiResponse{
		Message:         message,
		Data:            data,
		Meta:            meta,
		Rate:            rateFromContext(c),
		RequestedEntity: entity(c),
	}
}

func Error(c *gin.Context, message string) ApiResponse {
	return ApiResponse{
		Message:         message,
		Error:           true,
		Rate:            rateFromContext(c),
		RequestedEntity: entity(c),
	}
}

// WithToast attaches a toast to any envelope.
func (r ApiResponse) WithToast(t *notify.Toast) ApiResponse {
	r.Toast = t
	return r
}

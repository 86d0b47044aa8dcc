package models

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Gin context keys shared by middleware and the response envelope
const (
	ContextKeyRequestID = "requestID"
	ContextKeyRateLimit = "rateLimit"
)

// ApiResponse is the envelope every endpoint answers with
type ApiResponse struct {
	Message         string      `json:"message"`
	Data            any         `json:"data,omitempty"`
	Error           bool        `json:"error,omitempty"`
	Meta            *Pagination `json:"meta"`
	Rate            *RateLimit  `json:"rate_limit,omitempty"`
	RequestedEntity string      `json:"requested_entity,omitempty"`
	RequestID       string      `json:"request_id,omitempty"`
}

type Pagination struct {
	Page       int `json:"page" example:"1"`
	Limit      int `json:"limit" example:"12"`
	Total      int `json:"total" example:"42"`
	TotalPages int `json:"total_pages" example:"4"`
}

// NewPagination fills TotalPages as ceil(total/limit); zero items is zero pages
func NewPagination(page, limit, total int) *Pagination {
	p := &Pagination{Page: page, Limit: limit, Total: total}
	if limit > 0 {
		p.TotalPages = (total + limit - 1) / limit
	}
	return p
}

// RateLimit is the caller's current window, echoed in every response
type RateLimit struct {
	Limit          int       `json:"limit"`
	Remaining      int       `json:"remaining"`
	ResetAt        time.Time `json:"reset_at"`
	ResetInSeconds int       `json:"reset_in_seconds"`
}

func envelope(c *gin.Context, message string, data any, meta *Pagination, isErr bool) ApiResponse {
	resp := ApiResponse{Message: message, Data: data, Meta: meta, Error: isErr}
	if c == nil {
		return resp
	}
	if rl, ok := c.Value(ContextKeyRateLimit).(*RateLimit); ok {
		resp.Rate = rl
	}
	if c.Request != nil {
		resp.RequestedEntity = c.Request.Method + " " + c.FullPath()
		resp.RequestID = c.GetString(ContextKeyRequestID)
	}
	return resp
}

func SuccessResponse(c *gin.Context, message string, data any) ApiResponse {
	return envelope(c, message, data, nil, false)
}

func PaginatedResponse(c *gin.Context, message string, data any, meta *Pagination) ApiResponse {
	return envelope(c, message, data, meta, false)
}

func ErrorResponse(c *gin.Context, message string) ApiResponse {
	return envelope(c, message, nil, nil, true)
}

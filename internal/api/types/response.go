// internal/api/types/response.go
package types

import "hydroflow-bot/internal/domain"

// PaginatedResponse is a page of T plus the paging window and total count.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
}

// MessageResponse lists the replies produced for an inbound message.
type MessageResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Error         string                `json:"error,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

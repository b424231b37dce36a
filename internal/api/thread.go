package api

import (
	"github.com/nanashi-dev/nanashi/internal/domain"
)

// Request DTOs

type CreateThreadRequest struct {
	BoardId string `json:"board_id" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Body    string `json:"body" validate:"required"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Response DTOs

type CreateThreadResponse struct {
	ThreadId string `json:"thread_id"`
}

// ThreadResponse wraps a full thread with its posts
type ThreadResponse struct {
	domain.ThreadPage
}

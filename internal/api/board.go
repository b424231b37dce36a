package api

import (
	"github.com/nanashi-dev/nanashi/internal/domain"
)

// Request DTOs

type CreateBoardRequest struct {
	Slug        string `json:"slug" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
}

// Response DTOs

type CreateBoardResponse struct {
	BoardId string `json:"board_id"`
}

// BoardListResponse wraps the board directory
type BoardListResponse struct {
	Boards []domain.BoardSummary `json:"boards"`
}

// BoardResponse wraps a board with its thread listing
type BoardResponse struct {
	domain.BoardPage
}

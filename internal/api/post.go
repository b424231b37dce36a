package api

// Request DTOs

type CreatePostRequest struct {
	ThreadId string `json:"thread_id" validate:"required"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Body     string `json:"body" validate:"required"`
}

// Response DTOs

type CreatePostResponse struct {
	PostId string `json:"post_id"`
}

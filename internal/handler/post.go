package handler

import (
	"net/http"
	"time"

	"github.com/nanashi-dev/nanashi/internal/api"
	"github.com/nanashi-dev/nanashi/internal/domain"
	"github.com/nanashi-dev/nanashi/internal/identity"
	"github.com/nanashi-dev/nanashi/internal/utils"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var body api.CreatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	visitor := identity.FromRequest(r, time.Now())

	postId, err := h.post.Create(visitor, domain.PostCreationData{
		ThreadId: body.ThreadId,
		Name:     body.Name,
		Email:    body.Email,
		Body:     body.Body,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.CreatePostResponse{PostId: postId})
}

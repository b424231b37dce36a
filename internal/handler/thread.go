package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/nanashi-dev/nanashi/internal/api"
	"github.com/nanashi-dev/nanashi/internal/domain"
	"github.com/nanashi-dev/nanashi/internal/identity"
	"github.com/nanashi-dev/nanashi/internal/utils"
)

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	visitor := identity.FromRequest(r, time.Now())

	threadId, err := h.thread.Create(visitor, domain.ThreadCreationData{
		BoardId: body.BoardId,
		Title:   body.Title,
		Body:    body.Body,
		Name:    body.Name,
		Email:   body.Email,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.CreateThreadResponse{ThreadId: threadId})
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId := mux.Vars(r)["thread"]

	thread, err := h.thread.Get(threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.ThreadResponse{ThreadPage: *thread})
}

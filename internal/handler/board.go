package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/nanashi-dev/nanashi/internal/api"
	"github.com/nanashi-dev/nanashi/internal/domain"
	"github.com/nanashi-dev/nanashi/internal/utils"
)

func (h *Handler) GetBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.board.All()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.BoardListResponse{Boards: boards})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	board, err := h.board.Get(slug)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.BoardResponse{BoardPage: *board})
}

// CreateBoard is the seed/admin surface; it sits behind the admin key
// middleware, not user auth.
func (h *Handler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var body api.CreateBoardRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	boardId, err := h.board.Create(domain.BoardCreationData{
		Slug:        body.Slug,
		Title:       body.Title,
		Description: body.Description,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.CreateBoardResponse{BoardId: boardId})
}

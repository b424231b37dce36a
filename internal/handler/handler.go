package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nanashi-dev/nanashi/internal/service"
)

type Handler struct {
	board  service.BoardService
	thread service.ThreadService
	post   service.PostService
	health Pinger
}

func New(board service.BoardService, thread service.ThreadService, post service.PostService, health Pinger) *Handler {
	return &Handler{board, thread, post, health}
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

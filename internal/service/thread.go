package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/nanashi-dev/nanashi/internal/config"
	"github.com/nanashi-dev/nanashi/internal/domain"
	internal_errors "github.com/nanashi-dev/nanashi/internal/errors"
	"github.com/nanashi-dev/nanashi/internal/identity"
	"github.com/nanashi-dev/nanashi/internal/ratelimit"
	"github.com/nanashi-dev/nanashi/internal/service/utils"
)

type ThreadService interface {
	Create(visitor identity.Identity, data domain.ThreadCreationData) (string, error)
	Get(id string) (*domain.ThreadPage, error)
}

type Thread struct {
	storage ThreadStorage
	posts   *Post // reuses the reply path's trip/clamp/sage rules for the opening post
	limiter *ratelimit.Limiter
	cfg     *config.Config
}

type ThreadStorage interface {
	// CreateThread inserts the thread and its opening post (No = 1) and
	// updates board activity in a single transaction.
	CreateThread(thread *domain.Thread, op *domain.Post) (string, error)
	GetThread(id string) (*domain.ThreadPage, error)
	BoardExists(id string) (bool, error)
}

func NewThread(storage ThreadStorage, posts *Post, limiter *ratelimit.Limiter, cfg *config.Config) *Thread {
	return &Thread{storage, posts, limiter, cfg}
}

func (s *Thread) Create(visitor identity.Identity, data domain.ThreadCreationData) (string, error) {
	boardId := strings.TrimSpace(data.BoardId)
	if boardId == "" {
		return "", &internal_errors.ErrorWithStatusCode{Message: "board_id is required", StatusCode: 400}
	}
	title := utils.CleanText(data.Title)
	if title == "" {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Title is required", StatusCode: 400}
	}
	body := utils.CleanText(data.Body)
	if body == "" {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Body is required", StatusCode: 400}
	}

	// Existence comes before admission: requests to a missing board get 404
	// without consuming a cooldown slot.
	exists, err := s.storage.BoardExists(boardId)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Board not found", StatusCode: 404}
	}

	key := fmt.Sprintf("thread:%s:%s", boardId, visitor.AddrHash)
	if !s.limiter.CheckAndRecord(key, 1, s.cfg.Public.ThreadCooldown*time.Second) {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Creating threads too fast, try again later", StatusCode: 429}
	}

	op := s.posts.buildPost(visitor, "", data.Name, data.Email, body)
	op.No = 1

	thread := &domain.Thread{
		BoardId:     boardId,
		Title:       utils.ClampRunes(title, s.cfg.Public.MaxTitleLen),
		Body:        op.Body,
		AuthorName:  op.Name,
		AuthorTrip:  op.Trip,
		AuthorEmail: op.Email,
	}

	id, err := s.storage.CreateThread(thread, op)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Thread) Get(id string) (*domain.ThreadPage, error) {
	thread, err := s.storage.GetThread(id)
	if err != nil {
		return nil, err
	}
	return thread, nil
}

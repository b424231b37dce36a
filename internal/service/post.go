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
	"github.com/nanashi-dev/nanashi/internal/tripcode"
)

type PostService interface {
	Create(visitor identity.Identity, data domain.PostCreationData) (string, error)
}

// Post coordinates reply creation: admission, trip resolution, clamping,
// sage detection, then one atomic storage write.
type Post struct {
	storage PostStorage
	limiter *ratelimit.Limiter
	cfg     *config.Config
}

type PostStorage interface {
	// CreatePost assigns the next No within the thread, inserts the post and
	// updates board/thread ordering timestamps in a single transaction.
	CreatePost(post *domain.Post) (string, error)
	ThreadExists(id string) (bool, error)
}

func NewPost(storage PostStorage, limiter *ratelimit.Limiter, cfg *config.Config) *Post {
	return &Post{storage, limiter, cfg}
}

func (s *Post) Create(visitor identity.Identity, data domain.PostCreationData) (string, error) {
	threadId := strings.TrimSpace(data.ThreadId)
	if threadId == "" {
		return "", &internal_errors.ErrorWithStatusCode{Message: "thread_id is required", StatusCode: 400}
	}
	body := utils.CleanText(data.Body)
	if body == "" {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Body is required", StatusCode: 400}
	}

	// Existence comes before admission: requests to a missing thread get 404
	// without consuming a cooldown slot. The FOR UPDATE lock inside the
	// storage transaction stays the authoritative guard.
	exists, err := s.storage.ThreadExists(threadId)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: 404}
	}

	key := fmt.Sprintf("post:%s:%s", threadId, visitor.AddrHash)
	if !s.limiter.CheckAndRecord(key, 1, s.cfg.Public.ReplyCooldown*time.Second) {
		return "", &internal_errors.ErrorWithStatusCode{Message: "Posting too fast, try again later", StatusCode: 429}
	}

	post := s.buildPost(visitor, threadId, data.Name, data.Email, body)

	id, err := s.storage.CreatePost(post)
	if err != nil {
		return "", err
	}
	return id, nil
}

// buildPost applies trip resolution, field clamps and sage detection shared
// by replies and thread opening posts.
func (s *Post) buildPost(visitor identity.Identity, threadId, rawName, rawEmail, body string) *domain.Post {
	limits := s.cfg.Public

	parsed := tripcode.Resolve(utils.CleanText(rawName), s.cfg.Private.TripSalt)
	name := utils.ClampRunes(parsed.DisplayName, limits.MaxNameLen)
	if name == "" {
		name = tripcode.DefaultDisplayName
	}
	trip := utils.ClampRunes(parsed.Trip, limits.MaxTripLen)
	email := utils.ClampRunes(utils.CleanText(rawEmail), limits.MaxEmailLen)

	return &domain.Post{
		ThreadId:  threadId,
		Name:      name,
		Trip:      trip,
		Email:     email,
		Body:      utils.ClampRunes(body, limits.MaxBodyLen),
		DayId:     visitor.DayId,
		AddrHash:  visitor.AddrHash,
		AgentHash: visitor.AgentHash,
		WasSaged:  strings.EqualFold(email, "sage"),
	}
}

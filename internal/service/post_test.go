package service

import (
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/nanashi-dev/nanashi/internal/config"
	"github.com/nanashi-dev/nanashi/internal/domain"
	internal_errors "github.com/nanashi-dev/nanashi/internal/errors"
	"github.com/nanashi-dev/nanashi/internal/identity"
	"github.com/nanashi-dev/nanashi/internal/ratelimit"
)

// Mock structs
type MockPostStorage struct {
	CreatePostFunc   func(post *domain.Post) (string, error)
	ThreadExistsFunc func(id string) (bool, error)
	LastPost         *domain.Post
}

func (m *MockPostStorage) CreatePost(post *domain.Post) (string, error) {
	m.LastPost = post
	if m.CreatePostFunc != nil {
		return m.CreatePostFunc(post)
	}
	return "post-1", nil
}

func (m *MockPostStorage) ThreadExists(id string) (bool, error) {
	if m.ThreadExistsFunc != nil {
		return m.ThreadExistsFunc(id)
	}
	return true, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Private.TripSalt = "test-salt"
	return cfg
}

func newTestPost(t *testing.T) (*Post, *MockPostStorage) {
	t.Helper()
	storage := &MockPostStorage{}
	limiter := ratelimit.New(time.Hour)
	t.Cleanup(limiter.Stop)
	return NewPost(storage, limiter, testConfig()), storage
}

func testVisitor(addr string) identity.Identity {
	return identity.Derive(addr, "test-agent", time.Now())
}

func statusCode(t *testing.T, err error) int {
	t.Helper()
	var e *internal_errors.ErrorWithStatusCode
	if !errors.As(err, &e) {
		t.Fatalf("expected ErrorWithStatusCode, got %v", err)
	}
	return e.StatusCode
}

func TestPostCreate(t *testing.T) {
	service, storage := newTestPost(t)

	id, err := service.Create(testVisitor("203.0.113.1"), domain.PostCreationData{
		ThreadId: "thread-1",
		Name:     "Bob",
		Body:     "hello",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id != "post-1" {
		t.Errorf("Unexpected id: got %s, expected post-1", id)
	}

	post := storage.LastPost
	if post.ThreadId != "thread-1" || post.Name != "Bob" || post.Body != "hello" {
		t.Errorf("Unexpected post fields: %+v", post)
	}
	if post.DayId == "" || post.AddrHash == "" || post.AgentHash == "" {
		t.Errorf("identity fields not set: %+v", post)
	}
	if post.WasSaged {
		t.Error("post without sage control should not be saged")
	}
}

func TestPostCreateValidation(t *testing.T) {
	cases := []struct {
		name string
		data domain.PostCreationData
	}{
		{"missing thread id", domain.PostCreationData{Body: "hello"}},
		{"missing body", domain.PostCreationData{ThreadId: "thread-1"}},
		{"whitespace body", domain.PostCreationData{ThreadId: "thread-1", Body: "   \n\t "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := newTestPost(t)
			_, err := service.Create(testVisitor("203.0.113.1"), tc.data)
			if got := statusCode(t, err); got != 400 {
				t.Errorf("expected 400, got %d", got)
			}
		})
	}
}

func TestPostCreateRateLimited(t *testing.T) {
	service, _ := newTestPost(t)
	visitor := testVisitor("203.0.113.1")
	data := domain.PostCreationData{ThreadId: "thread-1", Body: "hello"}

	if _, err := service.Create(visitor, data); err != nil {
		t.Fatalf("first post should succeed: %v", err)
	}
	_, err := service.Create(visitor, data)
	if got := statusCode(t, err); got != 429 {
		t.Errorf("expected 429, got %d", got)
	}

	// a different thread is a different key
	if _, err := service.Create(visitor, domain.PostCreationData{ThreadId: "thread-2", Body: "hello"}); err != nil {
		t.Errorf("post to another thread should succeed: %v", err)
	}
	// so is a different visitor
	if _, err := service.Create(testVisitor("203.0.113.2"), data); err != nil {
		t.Errorf("post from another visitor should succeed: %v", err)
	}
}

func TestPostCreateMissingThread(t *testing.T) {
	service, storage := newTestPost(t)
	storage.ThreadExistsFunc = func(id string) (bool, error) {
		return false, nil
	}
	visitor := testVisitor("203.0.113.1")
	data := domain.PostCreationData{ThreadId: "nope", Body: "hello"}

	// repeated requests to a missing thread keep getting 404, never 429:
	// the existence check runs before admission and consumes no cooldown slot
	for i := 0; i < 2; i++ {
		_, err := service.Create(visitor, data)
		if got := statusCode(t, err); got != 404 {
			t.Errorf("request %d: expected 404, got %d", i+1, got)
		}
	}
	if storage.LastPost != nil {
		t.Error("storage write attempted for a missing thread")
	}
}

func TestPostCreateStorageError(t *testing.T) {
	service, storage := newTestPost(t)
	mockError := &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: 404}
	storage.CreatePostFunc = func(post *domain.Post) (string, error) {
		return "", mockError
	}

	_, err := service.Create(testVisitor("203.0.113.1"), domain.PostCreationData{ThreadId: "nope", Body: "hello"})
	if !errors.Is(err, mockError) {
		t.Errorf("Expected %v, got: %v", mockError, err)
	}
}

func TestPostCreateClampsBody(t *testing.T) {
	service, storage := newTestPost(t)

	_, err := service.Create(testVisitor("203.0.113.1"), domain.PostCreationData{
		ThreadId: "thread-1",
		Body:     strings.Repeat("x", 5000),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := utf8.RuneCountInString(storage.LastPost.Body); got != 4000 {
		t.Errorf("body stored with %d runes, want 4000", got)
	}
}

func TestPostCreateTripcode(t *testing.T) {
	service, storage := newTestPost(t)
	visitor := testVisitor("203.0.113.1")

	if _, err := service.Create(visitor, domain.PostCreationData{
		ThreadId: "thread-1", Name: "Bob#secret123", Body: "hello",
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	first := storage.LastPost
	if first.Name != "Bob" {
		t.Errorf("Name = %q, want Bob", first.Name)
	}
	if first.Trip == "" || len(first.Trip) > 10 {
		t.Errorf("Trip = %q, want non-empty, at most 10 chars", first.Trip)
	}

	// same secret later yields the identical signature
	if _, err := service.Create(visitor, domain.PostCreationData{
		ThreadId: "thread-2", Name: "Bob#secret123", Body: "hello again",
	}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if storage.LastPost.Trip != first.Trip {
		t.Errorf("same secret gave trips %q and %q", first.Trip, storage.LastPost.Trip)
	}
}

func TestPostCreateSage(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"sage", true},
		{"SAGE", true},
		{"Sage", true},
		{" sage ", true}, // trimmed before comparison
		{"sageru", false},
		{"bob@example.com", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run("email "+tc.email, func(t *testing.T) {
			service, storage := newTestPost(t)
			_, err := service.Create(testVisitor("203.0.113.1"), domain.PostCreationData{
				ThreadId: "thread-1", Email: tc.email, Body: "hello",
			})
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if storage.LastPost.WasSaged != tc.want {
				t.Errorf("WasSaged = %v for email %q, want %v", storage.LastPost.WasSaged, tc.email, tc.want)
			}
		})
	}
}

func TestPostCreateDefaultName(t *testing.T) {
	service, storage := newTestPost(t)

	_, err := service.Create(testVisitor("203.0.113.1"), domain.PostCreationData{
		ThreadId: "thread-1", Name: "   ", Body: "hello",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if storage.LastPost.Name != "Anonymous" {
		t.Errorf("Name = %q, want Anonymous", storage.LastPost.Name)
	}
}

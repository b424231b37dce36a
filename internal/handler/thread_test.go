package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/nanashi-dev/nanashi/internal/domain"
	internal_errors "github.com/nanashi-dev/nanashi/internal/errors"
	"github.com/nanashi-dev/nanashi/internal/identity"
)

type MockThreadService struct {
	MockCreate func(visitor identity.Identity, data domain.ThreadCreationData) (string, error)
	MockGet    func(id string) (*domain.ThreadPage, error)
}

func (m *MockThreadService) Create(visitor identity.Identity, data domain.ThreadCreationData) (string, error) {
	if m.MockCreate != nil {
		return m.MockCreate(visitor, data)
	}
	return "thread-1", nil
}

func (m *MockThreadService) Get(id string) (*domain.ThreadPage, error) {
	if m.MockGet != nil {
		return m.MockGet(id)
	}
	return &domain.ThreadPage{}, nil
}

func TestCreateThreadHandler(t *testing.T) {
	h := &Handler{}

	route := "/v1/threads"
	router := mux.NewRouter()
	router.HandleFunc(route, h.CreateThread).Methods("POST")
	requestBody := []byte(`{"board_id": "board-1", "title": "Hello", "body": "World"}`)

	t.Run("successful request", func(t *testing.T) {
		h.thread = &MockThreadService{
			MockCreate: func(visitor identity.Identity, data domain.ThreadCreationData) (string, error) {
				assert.Equal(t, "board-1", data.BoardId)
				assert.Equal(t, "Hello", data.Title)
				assert.Equal(t, "World", data.Body)
				return "thread-42", nil
			},
		}
		req := httptest.NewRequest(http.MethodPost, route, bytes.NewBuffer(requestBody))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp map[string]string
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "thread-42", resp["thread_id"])
	})

	t.Run("missing title", func(t *testing.T) {
		h.thread = &MockThreadService{}
		req := httptest.NewRequest(http.MethodPost, route, bytes.NewBuffer([]byte(`{"board_id": "b", "body": "World"}`)))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rate limited", func(t *testing.T) {
		h.thread = &MockThreadService{
			MockCreate: func(visitor identity.Identity, data domain.ThreadCreationData) (string, error) {
				return "", &internal_errors.ErrorWithStatusCode{Message: "slow down", StatusCode: 429}
			},
		}
		req := httptest.NewRequest(http.MethodPost, route, bytes.NewBuffer(requestBody))
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	})
}

func TestGetThreadHandler(t *testing.T) {
	h := &Handler{}

	router := mux.NewRouter()
	router.HandleFunc("/v1/threads/{thread}", h.GetThread).Methods("GET")

	t.Run("successful request", func(t *testing.T) {
		page := &domain.ThreadPage{}
		page.Id = "thread-1"
		page.Title = "Hello"
		page.Posts = []domain.Post{{No: 1, Name: "Anonymous", Body: "World"}}
		h.thread = &MockThreadService{
			MockGet: func(id string) (*domain.ThreadPage, error) {
				assert.Equal(t, "thread-1", id)
				return page, nil
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/v1/threads/thread-1", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Title string `json:"title"`
			Posts []struct {
				No int `json:"no"`
			} `json:"posts"`
		}
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "Hello", resp.Title)
		assert.Len(t, resp.Posts, 1)
		assert.Equal(t, 1, resp.Posts[0].No)
	})

	t.Run("not found", func(t *testing.T) {
		h.thread = &MockThreadService{
			MockGet: func(id string) (*domain.ThreadPage, error) {
				return nil, &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: 404}
			},
		}
		req := httptest.NewRequest(http.MethodGet, "/v1/threads/missing", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

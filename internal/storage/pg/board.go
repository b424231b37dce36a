package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/nanashi-dev/nanashi/internal/domain"
	internal_errors "github.com/nanashi-dev/nanashi/internal/errors"
)

func (s *Storage) CreateBoard(data domain.BoardCreationData) (string, error) {
	id := uuid.NewString()
	createdTs := time.Now().UTC().Round(time.Microsecond)
	_, err := s.db.Exec(`
	INSERT INTO boards(id, slug, title, description, activity_at, created_at)
	VALUES($1, $2, $3, NULLIF($4, ''), $5, $5)`,
		id, data.Slug, data.Title, data.Description, createdTs)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return "", &internal_errors.ErrorWithStatusCode{Message: "Board already exists", StatusCode: 409}
		}
		return "", fmt.Errorf("failed to insert board: %w", err)
	}
	return id, nil
}

// GetBoards lists all boards ordered by last activity, newest first.
func (s *Storage) GetBoards() ([]domain.BoardSummary, error) {
	rows, err := s.db.Query(`
	SELECT
		b.id, b.slug, b.title, COALESCE(b.description, ''),
		b.activity_at, b.created_at,
		COUNT(t.id)
	FROM boards b
	LEFT JOIN threads t ON t.board_id = b.id
	GROUP BY b.id
	ORDER BY b.activity_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to read boards: %w", err)
	}
	defer rows.Close()

	var boards []domain.BoardSummary
	for rows.Next() {
		var b domain.BoardSummary
		if err := rows.Scan(&b.Id, &b.Slug, &b.Title, &b.Description, &b.ActivityAt, &b.CreatedAt, &b.Threads); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate boards: %w", err)
	}
	return boards, nil
}

// BoardExists is the cheap pre-admission check; thread creation re-validates
// the board inside its own transaction.
func (s *Storage) BoardExists(id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM boards WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check board existence: %w", err)
	}
	return exists, nil
}

// GetBoard returns one board with its most recently bumped threads, capped at
// the configured page size.
func (s *Storage) GetBoard(slug string) (*domain.BoardPage, error) {
	var page domain.BoardPage
	err := s.db.QueryRow(`
	SELECT id, slug, title, COALESCE(description, ''), activity_at, created_at
	FROM boards
	WHERE slug = $1`, slug).Scan(
		&page.Id, &page.Slug, &page.Title, &page.Description, &page.ActivityAt, &page.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "Board not found", StatusCode: 404}
		}
		return nil, fmt.Errorf("failed to read board: %w", err)
	}

	rows, err := s.db.Query(`
	SELECT
		t.id, t.title, COUNT(p.id) FILTER (WHERE p.no > 1), t.last_bumped_at
	FROM threads t
	LEFT JOIN posts p ON p.thread_id = t.id
	WHERE t.board_id = $1
	GROUP BY t.id
	ORDER BY t.last_bumped_at DESC
	LIMIT $2`, page.Id, s.cfg.Public.ThreadsPerPage)
	if err != nil {
		return nil, fmt.Errorf("failed to read threads: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t domain.ThreadSummary
		if err := rows.Scan(&t.Id, &t.Title, &t.Replies, &t.LastBumpedAt); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		page.Threads = append(page.Threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate threads: %w", err)
	}

	return &page, nil
}

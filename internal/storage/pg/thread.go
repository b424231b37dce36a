package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nanashi-dev/nanashi/internal/domain"
	internal_errors "github.com/nanashi-dev/nanashi/internal/errors"
)

// CreateThread writes the thread, its opening post (No = 1) and the board
// activity update in one transaction. A thread never exists without at least
// one post.
func (s *Storage) CreateThread(thread *domain.Thread, op *domain.Post) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var boardId string
	err = tx.QueryRow(`SELECT id FROM boards WHERE id = $1`, thread.BoardId).Scan(&boardId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", &internal_errors.ErrorWithStatusCode{Message: "Board not found", StatusCode: 404}
		}
		return "", fmt.Errorf("failed to validate board: %w", err)
	}

	threadId := uuid.NewString()
	createdTs := time.Now().UTC().Round(time.Microsecond)
	_, err = tx.Exec(`
	INSERT INTO threads(id, board_id, title, body, author_name, author_trip, author_email, last_bumped_at, updated_at, created_at)
	VALUES($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $8, $8)`,
		threadId, boardId, thread.Title, thread.Body,
		thread.AuthorName, thread.AuthorTrip, thread.AuthorEmail, createdTs)
	if err != nil {
		return "", fmt.Errorf("failed to insert thread: %w", err)
	}

	_, err = tx.Exec(`
	INSERT INTO posts(id, thread_id, no, name, trip, email, body, day_id, addr_hash, agent_hash, was_saged, created_at)
	VALUES($1, $2, 1, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, $11)`,
		uuid.NewString(), threadId, op.Name, op.Trip, op.Email, op.Body,
		op.DayId, op.AddrHash, op.AgentHash, op.WasSaged, createdTs)
	if err != nil {
		return "", fmt.Errorf("failed to insert opening post: %w", err)
	}

	_, err = tx.Exec(`UPDATE boards SET activity_at = GREATEST(activity_at, $2) WHERE id = $1`, boardId, createdTs)
	if err != nil {
		return "", fmt.Errorf("failed to update board activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return threadId, nil
}

func (s *Storage) GetThread(id string) (*domain.ThreadPage, error) {
	var page domain.ThreadPage
	var trip, email sql.NullString
	err := s.db.QueryRow(`
	SELECT
		t.id, t.board_id, t.title, t.body,
		t.author_name, t.author_trip, t.author_email,
		t.last_bumped_at, t.updated_at, t.created_at,
		b.slug, b.title
	FROM threads t
	JOIN boards b ON b.id = t.board_id
	WHERE t.id = $1`, id).Scan(
		&page.Id, &page.BoardId, &page.Title, &page.Body,
		&page.AuthorName, &trip, &email,
		&page.LastBumpedAt, &page.UpdatedAt, &page.CreatedAt,
		&page.BoardSlug, &page.BoardTitle,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: 404}
		}
		return nil, fmt.Errorf("failed to read thread: %w", err)
	}
	page.AuthorTrip = trip.String
	page.AuthorEmail = email.String

	rows, err := s.db.Query(`
	SELECT
		id, thread_id, no, name, COALESCE(trip, ''), COALESCE(email, ''),
		body, day_id, addr_hash, agent_hash, was_saged, created_at
	FROM posts
	WHERE thread_id = $1
	ORDER BY no ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.Id, &p.ThreadId, &p.No, &p.Name, &p.Trip, &p.Email,
			&p.Body, &p.DayId, &p.AddrHash, &p.AgentHash, &p.WasSaged, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		page.Posts = append(page.Posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}

	return &page, nil
}

package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nanashi-dev/nanashi/internal/domain"
	internal_errors "github.com/nanashi-dev/nanashi/internal/errors"

	_ "github.com/lib/pq"
)

// ThreadExists is the cheap pre-admission check; the FOR UPDATE lock in
// CreatePost remains the authoritative guard against races with deletion.
func (s *Storage) ThreadExists(id string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM threads WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check thread existence: %w", err)
	}
	return exists, nil
}

// CreatePost assigns the next sequence number within the thread and writes the
// post plus the board/thread ordering updates in one transaction. The FOR
// UPDATE lock on the thread row serializes concurrent replies to the same
// thread, so the max(no) read and the insert can never interleave; the
// UNIQUE(thread_id, no) constraint backstops it.
func (s *Storage) CreatePost(post *domain.Post) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // The rollback will be ignored if the tx has been committed later in the function.

	var boardId string
	err = tx.QueryRow(`SELECT board_id FROM threads WHERE id = $1 FOR UPDATE`, post.ThreadId).Scan(&boardId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", &internal_errors.ErrorWithStatusCode{Message: "Thread not found", StatusCode: 404}
		}
		return "", fmt.Errorf("failed to lock thread: %w", err)
	}

	var maxNo int
	err = tx.QueryRow(`SELECT COALESCE(MAX(no), 0) FROM posts WHERE thread_id = $1`, post.ThreadId).Scan(&maxNo)
	if err != nil {
		return "", fmt.Errorf("failed to read max post number: %w", err)
	}

	id := uuid.NewString()
	createdTs := time.Now().UTC().Round(time.Microsecond) // database anyway rounds to microsecond
	_, err = tx.Exec(`
	INSERT INTO posts(id, thread_id, no, name, trip, email, body, day_id, addr_hash, agent_hash, was_saged, created_at)
	VALUES($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10, $11, $12)`,
		id, post.ThreadId, maxNo+1, post.Name, post.Trip, post.Email, post.Body,
		post.DayId, post.AddrHash, post.AgentHash, post.WasSaged, createdTs)
	if err != nil {
		return "", fmt.Errorf("failed to insert post: %w", err)
	}

	// GREATEST keeps the ordering markers monotonic when transactions commit
	// out of createdTs order.
	_, err = tx.Exec(`UPDATE boards SET activity_at = GREATEST(activity_at, $2) WHERE id = $1`, boardId, createdTs)
	if err != nil {
		return "", fmt.Errorf("failed to update board activity: %w", err)
	}

	// Sage touches only the secondary marker; listing order is untouched.
	if post.WasSaged {
		_, err = tx.Exec(`UPDATE threads SET updated_at = GREATEST(updated_at, $2) WHERE id = $1`, post.ThreadId, createdTs)
	} else {
		_, err = tx.Exec(`UPDATE threads SET last_bumped_at = GREATEST(last_bumped_at, $2), updated_at = GREATEST(updated_at, $2) WHERE id = $1`, post.ThreadId, createdTs)
	}
	if err != nil {
		return "", fmt.Errorf("failed to update thread timestamps: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

package domain

import (
	"time"
)

type Thread struct {
	Id          string `json:"id"`
	BoardId     string `json:"board_id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	AuthorName  string `json:"author_name"`
	AuthorTrip  string `json:"author_trip,omitempty"`
	AuthorEmail string `json:"author_email,omitempty"`
	// LastBumpedAt controls board listing order and only advances on non-sage posts.
	// UpdatedAt moves on every post, saged or not.
	LastBumpedAt time.Time `json:"last_bumped_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// ThreadSummary is the board-page projection: title, reply count, bump order.
type ThreadSummary struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	Replies      int       `json:"replies"`
	LastBumpedAt time.Time `json:"last_bumped_at"`
}

// ThreadPage is a thread with its posts in ascending No order,
// plus board context for the page header.
type ThreadPage struct {
	Thread
	BoardSlug  string `json:"board_slug"`
	BoardTitle string `json:"board_title"`
	Posts      []Post `json:"posts"`
}

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	BoardId string
	Title   string
	Body    string
	Name    string
	Email   string
}

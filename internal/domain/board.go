package domain

import (
	"time"
)

type Board struct {
	Id          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ActivityAt  time.Time `json:"activity_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// BoardSummary is the listing projection: board metadata plus thread count.
type BoardSummary struct {
	Board
	Threads int `json:"threads"`
}

// BoardPage is a single board with its most recently bumped threads.
type BoardPage struct {
	Board
	Threads []ThreadSummary `json:"threads"`
}

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Slug        string
	Title       string
	Description string
}

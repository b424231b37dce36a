package domain

import (
	"time"
)

type Post struct {
	Id       string `json:"id"`
	ThreadId string `json:"thread_id"`
	// No is 1-based and contiguous within a thread.
	No    int    `json:"no"`
	Name  string `json:"name"`
	Trip  string `json:"trip,omitempty"`
	Email string `json:"email,omitempty"`
	Body  string `json:"body"`
	// DayId is the rotating per-visitor pseudonym shown next to the post.
	DayId string `json:"day_id"`
	// AddrHash/AgentHash correlate a visitor internally (rate-limit keys).
	// Never rendered to users.
	AddrHash  string    `json:"-"`
	AgentHash string    `json:"-"`
	WasSaged  bool      `json:"was_saged"`
	CreatedAt time.Time `json:"created_at"`
}

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	ThreadId string
	Name     string
	Email    string
	Body     string
}

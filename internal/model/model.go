package model

import (
	"time"
)

// Match represents one recorded self-play match.
type Match struct {
	ID         string        `json:"id"`
	Label      string        `json:"label,omitempty"`
	Seed       int64         `json:"seed"`
	Winner     string        `json:"winner,omitempty"` // alpha, beta, or draw
	Turns      int           `json:"turns"`
	Digest     string        `json:"digest"` // hex digest of the final position
	FinalState string        `json:"final_state"`
	CreatedAt  time.Time     `json:"created_at"`
	FinishedAt *time.Time    `json:"finished_at,omitempty"`
	Players    []MatchPlayer `json:"players,omitempty"`
}

// MatchPlayer represents one side of a recorded match.
type MatchPlayer struct {
	MatchID    string `json:"match_id"`
	Player     string `json:"player"` // alpha or beta
	Strategy   string `json:"strategy"`
	Systems    int    `json:"systems"`     // systems controlled at the end
	Ships      int    `json:"ships"`       // total ships at the end
	OrdersSent int    `json:"orders_sent"` // orders submitted over the whole match
}

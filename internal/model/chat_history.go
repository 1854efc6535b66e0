package model

import "time"

// ChatHistoryRecord is one stored conversation turn. At most 100
// records are retained per user; insertion evicts the oldest excess.
type ChatHistoryRecord struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	Intent    Intent    `json:"intent"`
	Timestamp time.Time `json:"timestamp"`
}

package dto

import (
	"time"

	"sahayak/internal/models"
)

type SessionStartRequest struct {
	UserID      string            `json:"user_id,omitempty"`
	Language    string            `json:"language,omitempty"`
	UserContext map[string]string `json:"user_context,omitempty"`
}

type SessionStartResponse struct {
	SessionID        string    `json:"session_id"`
	Language         string    `json:"language"`
	ExpiresAt        time.Time `json:"expires_at"`
	GreetingMessage  string    `json:"greeting_message"`
	GreetingAudioURL string    `json:"greeting_audio_url,omitempty"`
}

type SessionStatsResponse struct {
	TotalSessions    int `json:"total_sessions"`
	ActiveSessions   int `json:"active_sessions"`
	InactiveSessions int `json:"inactive_sessions"`
}

type SessionHistoryResponse struct {
	SessionID string           `json:"session_id"`
	Messages  []models.Message `json:"messages"`
	Total     int              `json:"total"`
}

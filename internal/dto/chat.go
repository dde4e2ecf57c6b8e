package dto

import "sahayak/internal/models"

type ChatQueryRequest struct {
	Query       string            `json:"query"`
	Language    string            `json:"language,omitempty"`
	SessionID   string            `json:"session_id,omitempty"`
	UserContext map[string]string `json:"user_context,omitempty"`
	VoiceInput  bool              `json:"voice_input"`
}

type SuggestedAction struct {
	Action   string `json:"action"`
	Label    string `json:"label"`
	SchemeID string `json:"scheme_id,omitempty"`
}

// SchemeSummary is the trimmed scheme view embedded in chat responses.
type SchemeSummary struct {
	SchemeID    string `json:"scheme_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Helpline    string `json:"helpline,omitempty"`
	Website     string `json:"website,omitempty"`
}

type ChatResponseData struct {
	ResponseText          string            `json:"response_text"`
	ResponseAudioURL      string            `json:"response_audio_url,omitempty"`
	Language              string            `json:"language"`
	Schemes               []SchemeSummary   `json:"schemes"`
	SuggestedActions      []SuggestedAction `json:"suggested_actions"`
	SessionID             string            `json:"session_id"`
	Intent                models.Intent     `json:"intent,omitempty"`
	NeedsClarification    bool              `json:"needs_clarification"`
	ClarificationQuestion string            `json:"clarification_question,omitempty"`
}

type ResponseMetadata struct {
	ProcessingTimeMs float64 `json:"processing_time_ms"`
	ModelUsed        string  `json:"model_used,omitempty"`
}

type ChatQueryResponse struct {
	Success  bool             `json:"success"`
	Data     ChatResponseData `json:"data"`
	Metadata ResponseMetadata `json:"metadata"`
}

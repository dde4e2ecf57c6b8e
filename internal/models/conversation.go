package models

import "time"

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

type Intent string

const (
	IntentSchemeDiscovery     Intent = "scheme_discovery"
	IntentEligibilityCheck    Intent = "eligibility_check"
	IntentApplicationGuidance Intent = "application_guidance"
	IntentDocumentAssistance  Intent = "document_assistance"
	IntentStatusCheck         Intent = "status_check"
	IntentGeneralQuery        Intent = "general_query"
	IntentComplaint           Intent = "complaint"
)

// Message is a single conversation turn.
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Language  string      `json:"language"`
	Timestamp time.Time   `json:"timestamp"`
	AudioURL  string      `json:"audio_url,omitempty"`
}

// ConversationContext accumulates what the assistant has learned across
// turns of one session.
type ConversationContext struct {
	CurrentIntent        Intent            `json:"current_intent,omitempty"`
	CollectedInformation map[string]string `json:"collected_information,omitempty"`
	MentionedSchemes     []string          `json:"mentioned_schemes,omitempty"`
	PendingQuestions     []string          `json:"pending_questions,omitempty"`
	LastTopic            string            `json:"last_topic,omitempty"`
	ClarificationNeeded  bool              `json:"clarification_needed"`
}

// ContextUpdate enumerates the known context update kinds so merge semantics
// are exhaustive: list-valued fields extend, scalar fields overwrite.
type ContextUpdate struct {
	Intent              *Intent
	Info                map[string]string
	MentionedSchemes    []string
	PendingQuestions    []string
	Topic               *string
	ClarificationNeeded *bool
}

// Apply merges the update into the context.
func (c *ConversationContext) Apply(u ContextUpdate) {
	if u.Intent != nil {
		c.CurrentIntent = *u.Intent
	}
	if len(u.Info) > 0 {
		if c.CollectedInformation == nil {
			c.CollectedInformation = make(map[string]string, len(u.Info))
		}
		for k, v := range u.Info {
			c.CollectedInformation[k] = v
		}
	}
	c.MentionedSchemes = append(c.MentionedSchemes, u.MentionedSchemes...)
	c.PendingQuestions = append(c.PendingQuestions, u.PendingQuestions...)
	if u.Topic != nil {
		c.LastTopic = *u.Topic
	}
	if u.ClarificationNeeded != nil {
		c.ClarificationNeeded = *u.ClarificationNeeded
	}
}

// Session is a bounded-lifetime conversation. A session past ExpiresAt or
// with IsActive=false is logically gone even if still resident in the store.
type Session struct {
	SessionID string              `json:"session_id"`
	UserID    string              `json:"user_id,omitempty"`
	Language  string              `json:"language"`
	Messages  []Message           `json:"messages"`
	Context   ConversationContext `json:"context"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	ExpiresAt time.Time           `json:"expires_at"`
	IsActive  bool                `json:"is_active"`
}

// Expired reports whether the session has passed its expiry at the given
// instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Clone returns a deep copy so callers read a snapshot while the store
// keeps mutating its own copy.
func (s *Session) Clone() *Session {
	out := *s
	out.Messages = make([]Message, len(s.Messages))
	copy(out.Messages, s.Messages)
	out.Context.MentionedSchemes = append([]string(nil), s.Context.MentionedSchemes...)
	out.Context.PendingQuestions = append([]string(nil), s.Context.PendingQuestions...)
	if s.Context.CollectedInformation != nil {
		out.Context.CollectedInformation = make(map[string]string, len(s.Context.CollectedInformation))
		for k, v := range s.Context.CollectedInformation {
			out.Context.CollectedInformation[k] = v
		}
	}
	return &out
}

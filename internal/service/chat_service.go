package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"sahayak/internal/dto"
	"sahayak/internal/models"
	"sahayak/pkg/config"
	"sahayak/pkg/language"

	"go.uber.org/zap"
)

// ChatService orchestrates one conversational turn: session bookkeeping,
// scheme matching, LLM response and optional voice output. Voice synthesis
// is best effort; a TTS failure never fails the turn.
type ChatService struct {
	sessions *SessionService
	matcher  *MatcherService
	dialogue DialogueResponder
	speech   SpeechCodec
	config   *config.Config
	logger   *zap.Logger
}

func NewChatService(
	sessions *SessionService,
	matcher *MatcherService,
	dialogue DialogueResponder,
	speech SpeechCodec,
	cfg *config.Config,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		sessions: sessions,
		matcher:  matcher,
		dialogue: dialogue,
		speech:   speech,
		config:   cfg,
		logger:   logger,
	}
}

// Start opens a session and returns a localized greeting, synthesized to
// audio when a codec is configured.
func (s *ChatService) Start(ctx context.Context, req *dto.SessionStartRequest) (*dto.SessionStartResponse, error) {
	lang := language.Normalize(req.Language)
	if lang == "" || !language.IsSupported(lang) {
		lang = s.config.Language.Default
	}

	session, err := s.sessions.Create(ctx, lang, req.UserID, req.UserContext)
	if err != nil {
		return nil, err
	}

	greeting := language.Greeting(lang)
	audioURL := ""
	if s.speech != nil {
		if audio, err := s.speech.Synthesize(ctx, greeting, lang, models.VoiceFemale, 0.9); err != nil {
			s.logger.Warn("Greeting synthesis failed", zap.Error(err))
		} else {
			audioURL = audio.AudioURL
		}
	}

	return &dto.SessionStartResponse{
		SessionID:        session.SessionID,
		Language:         lang,
		GreetingMessage:  greeting,
		GreetingAudioURL: audioURL,
		ExpiresAt:        session.ExpiresAt,
	}, nil
}

// Handle processes one user query end to end.
func (s *ChatService) Handle(ctx context.Context, req *dto.ChatQueryRequest) (*dto.ChatQueryResponse, error) {
	start := time.Now()

	lang := language.Normalize(req.Language)
	if lang == "" || !language.IsSupported(lang) {
		lang = s.config.Language.Default
	}

	session, err := s.getOrCreateSession(ctx, req, lang)
	if err != nil {
		return nil, err
	}
	history := session.Messages

	// The user turn is committed before any collaborator runs, so a slow
	// or failing LLM call never loses what the user said.
	userMsg := &models.Message{
		Role:     models.RoleUser,
		Content:  req.Query,
		Language: lang,
	}
	session, err = s.sessions.Update(ctx, session.SessionID, userMsg, &models.ContextUpdate{Info: req.UserContext})
	if err != nil {
		return nil, fmt.Errorf("record user message: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session expired mid-request")
	}

	criteria := criteriaFromContext(&session.Context, req.Query)
	matched := s.matcher.Search(criteria, 10)

	dialogueCtx, cancel := context.WithTimeout(ctx, s.config.GigaChat.Timeout)
	defer cancel()
	result, err := s.dialogue.Respond(dialogueCtx, req.Query, lang, history, &session.Context, matched.Schemes)
	if err != nil {
		return nil, fmt.Errorf("generate response: %w", err)
	}

	audioURL := s.maybeSynthesize(ctx, result.ResponseText, lang, req.VoiceInput)

	assistantMsg := &models.Message{
		Role:     models.RoleAssistant,
		Content:  result.ResponseText,
		Language: lang,
		AudioURL: audioURL,
	}
	mentioned := make([]string, 0, 3)
	for i, scheme := range matched.Schemes {
		if i == 3 {
			break
		}
		mentioned = append(mentioned, scheme.SchemeID)
	}
	needsClarification := result.NeedsClarification
	if _, err := s.sessions.Update(ctx, session.SessionID, assistantMsg, &models.ContextUpdate{
		Intent:              &result.Intent,
		MentionedSchemes:    mentioned,
		ClarificationNeeded: &needsClarification,
	}); err != nil {
		s.logger.Warn("Failed to record assistant message", zap.Error(err), zap.String("session_id", session.SessionID))
	}

	summaries := make([]dto.SchemeSummary, 0, 5)
	for i, scheme := range matched.Schemes {
		if i == 5 {
			break
		}
		summaries = append(summaries, schemeSummary(scheme, lang))
	}

	return &dto.ChatQueryResponse{
		Success: true,
		Data: dto.ChatResponseData{
			ResponseText:          result.ResponseText,
			ResponseAudioURL:      audioURL,
			Language:              lang,
			Schemes:               summaries,
			SuggestedActions:      result.SuggestedActions,
			SessionID:             session.SessionID,
			Intent:                result.Intent,
			NeedsClarification:    result.NeedsClarification,
			ClarificationQuestion: result.ClarificationQuestion,
		},
		Metadata: dto.ResponseMetadata{
			ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000,
			ModelUsed:        "GigaChat",
		},
	}, nil
}

func (s *ChatService) getOrCreateSession(ctx context.Context, req *dto.ChatQueryRequest, lang string) (*models.Session, error) {
	if req.SessionID != "" {
		session, err := s.sessions.Get(ctx, req.SessionID)
		if err != nil {
			return nil, fmt.Errorf("load session: %w", err)
		}
		if session != nil {
			return session, nil
		}
		s.logger.Info("Session expired or unknown, starting fresh", zap.String("session_id", req.SessionID))
	}
	return s.sessions.Create(ctx, lang, "", req.UserContext)
}

// maybeSynthesize renders the reply as audio for voice turns and for short
// text turns. Long text replies stay text only.
func (s *ChatService) maybeSynthesize(ctx context.Context, text, lang string, voiceInput bool) string {
	if s.speech == nil {
		return ""
	}
	if !voiceInput && len(text) >= 500 {
		return ""
	}
	audio, err := s.speech.Synthesize(ctx, text, lang, models.VoiceFemale, 0.9)
	if err != nil {
		s.logger.Warn("Response synthesis failed", zap.Error(err))
		return ""
	}
	return audio.AudioURL
}

// criteriaFromContext turns the profile details collected over the
// conversation into sparse search criteria, with the raw query as keywords.
func criteriaFromContext(convContext *models.ConversationContext, query string) *models.SchemeSearchCriteria {
	criteria := &models.SchemeSearchCriteria{Keywords: query}
	info := convContext.CollectedInformation

	if v, ok := info["age"]; ok {
		if age, err := strconv.Atoi(v); err == nil {
			criteria.Age = &age
		}
	}
	if v, ok := info["income"]; ok {
		if income, err := strconv.Atoi(v); err == nil {
			criteria.Income = &income
		}
	}
	criteria.Occupation = info["occupation"]
	criteria.State = info["state"]
	criteria.Gender = info["gender"]
	if v, ok := info["has_bpl_card"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			criteria.HasBPLCard = &b
		}
	}
	return criteria
}

func schemeSummary(scheme *models.Scheme, lang string) dto.SchemeSummary {
	summary := dto.SchemeSummary{
		SchemeID:    scheme.SchemeID,
		Name:        scheme.Name.Get(lang),
		Description: scheme.Description.Get(lang),
	}
	if scheme.Helpline != nil {
		summary.Helpline = *scheme.Helpline
	}
	if scheme.Website != nil {
		summary.Website = *scheme.Website
	}
	return summary
}

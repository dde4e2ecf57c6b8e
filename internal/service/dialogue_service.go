package service

import (
	"context"
	"fmt"
	"strings"

	"sahayak/internal/dto"
	"sahayak/internal/models"
	"sahayak/pkg/config"
	"sahayak/pkg/language"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

// historyWindow limits how many past messages are inlined into the prompt.
const historyWindow = 5

// DialogueResult is what the conversation layer gets back for one turn.
type DialogueResult struct {
	ResponseText          string
	Intent                models.Intent
	SuggestedActions      []dto.SuggestedAction
	NeedsClarification    bool
	ClarificationQuestion string
}

// DialogueResponder generates one conversational turn. ChatService depends
// on this interface so tests can substitute a canned responder.
type DialogueResponder interface {
	Respond(ctx context.Context, query, lang string, history []models.Message, convContext *models.ConversationContext, schemes []*models.Scheme) (*DialogueResult, error)
	Close() error
}

// SchemeSummarizer produces a short spoken-style description of one scheme.
type SchemeSummarizer interface {
	SummarizeScheme(ctx context.Context, scheme *models.Scheme, lang string) string
}

// DialogueService drives the LLM side of a conversation: it grounds the
// model on the matched schemes, detects the user's intent and falls back to
// a canned localized reply when the model is unreachable.
type DialogueService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	config *config.GigaChatConfig
	logger *zap.Logger
}

func buildSystemInstruction() string {
	return `You are Sahayak, a friendly assistant that helps citizens of India discover and apply for government welfare schemes.

# YOUR ROLE

1. Explain government schemes (central and state) in simple, everyday language
2. Help users understand whether they qualify for a scheme
3. Guide users through application steps and required documents
4. Collect missing profile details (age, occupation, state, income) by asking one question at a time

# RULES

- Always answer in the language the user writes in. If the language code is given, answer in that language
- Only talk about the schemes provided in the context. Never invent scheme names, benefit amounts or eligibility rules
- Quote benefit amounts exactly as given in the context
- Keep answers short: 2-4 sentences for voice users
- Use simple words. Many users are first-time smartphone users from rural areas
- When information needed to judge eligibility is missing, ask for exactly one missing detail
- Never ask for Aadhaar numbers, bank account numbers or any other identifiers. Only ask whether the user HAS the document
- If you do not know the answer, say so and suggest visiting the nearest Common Service Centre (CSC)

# STYLE

- Warm, respectful and encouraging
- Address the user politely (use "aap" forms in Hindi)
- No markdown, no bullet lists: plain sentences suitable for text-to-speech`
}

func NewDialogueService(cfg *config.GigaChatConfig, logger *zap.Logger) (*DialogueService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.3

	return &DialogueService{
		client: client,
		model:  model,
		config: cfg,
		logger: logger,
	}, nil
}

// Respond generates the assistant's reply for one user turn. The model
// failure path is deliberate: the caller always gets a usable result, with
// a localized apology and general_query intent when generation fails.
func (s *DialogueService) Respond(
	ctx context.Context,
	query, lang string,
	history []models.Message,
	convContext *models.ConversationContext,
	schemes []*models.Scheme,
) (*DialogueResult, error) {
	intent := detectIntent(query)
	prompt := s.buildPrompt(query, lang, history, convContext, schemes)

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil || len(resp.Choices) == 0 {
		if err == nil {
			err = fmt.Errorf("no response from LLM")
		}
		s.logger.Warn("LLM generation failed, using fallback reply", zap.Error(err))
		return &DialogueResult{
			ResponseText: fallbackReply(lang),
			Intent:       models.IntentGeneralQuery,
		}, nil
	}

	text := sanitizeUTF8(strings.TrimSpace(resp.Choices[0].Message.Content))
	needsClarification, question := detectClarification(text)

	return &DialogueResult{
		ResponseText:          text,
		Intent:                intent,
		SuggestedActions:      suggestActions(intent, schemes),
		NeedsClarification:    needsClarification,
		ClarificationQuestion: question,
	}, nil
}

func (s *DialogueService) buildPrompt(
	query, lang string,
	history []models.Message,
	convContext *models.ConversationContext,
	schemes []*models.Scheme,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Respond in %s (language code: %s).\n\n", language.Name(lang), lang)

	if len(schemes) > 0 {
		b.WriteString("Relevant government schemes:\n")
		for i, scheme := range schemes {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "- %s (%s): %s Benefit: %s\n",
				scheme.Name.Get(lang),
				scheme.SchemeID,
				scheme.Description.Get(lang),
				scheme.Benefits.Description.Get(lang),
			)
		}
		b.WriteString("\n")
	}

	if convContext != nil && len(convContext.CollectedInformation) > 0 {
		b.WriteString("What we know about the user so far:\n")
		for k, v := range convContext.CollectedInformation {
			fmt.Fprintf(&b, "- %s: %s\n", k, v)
		}
		b.WriteString("\n")
	}

	if len(history) > 0 {
		start := 0
		if len(history) > historyWindow {
			start = len(history) - historyWindow
		}
		b.WriteString("Conversation so far:\n")
		for _, m := range history[start:] {
			fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "User: %s", query)
	return b.String()
}

// SummarizeScheme asks the model for a 2-3 sentence spoken-style summary of
// the scheme. When generation fails the scheme's own localized description
// is returned instead, so the caller always gets usable text.
func (s *DialogueService) SummarizeScheme(ctx context.Context, scheme *models.Scheme, lang string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarize this government scheme in %s (language code: %s) in 2-3 short sentences suitable for reading aloud. Mention who it is for and the main benefit.\n\n", language.Name(lang), lang)
	fmt.Fprintf(&b, "Scheme: %s\nDescription: %s\nBenefit: %s\n",
		scheme.Name.Get(lang),
		scheme.Description.Get(lang),
		scheme.Benefits.Description.Get(lang),
	)

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: b.String()},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil || len(resp.Choices) == 0 {
		s.logger.Warn("Scheme summary generation failed, using stored description",
			zap.String("scheme_id", scheme.SchemeID),
			zap.Error(err),
		)
		return scheme.Description.Get(lang)
	}
	return sanitizeUTF8(strings.TrimSpace(resp.Choices[0].Message.Content))
}

// detectIntent classifies the query with keyword rules. The first matching
// group wins; order reflects specificity, not frequency.
func detectIntent(query string) models.Intent {
	q := strings.ToLower(query)

	switch {
	case containsAny(q, "eligible", "eligibility", "qualify", "am i", "can i get", "पात्र", "पात्रता", "मिल सकता"):
		return models.IntentEligibilityCheck
	case containsAny(q, "apply", "application", "how to get", "registration", "आवेदन", "अप्लाई"):
		return models.IntentApplicationGuidance
	case containsAny(q, "document", "paper", "certificate", "aadhaar", "दस्तावेज", "कागज"):
		return models.IntentDocumentAssistance
	case containsAny(q, "status", "track", "स्थिति", "स्टेटस"):
		return models.IntentStatusCheck
	case containsAny(q, "complaint", "problem", "not received", "शिकायत"):
		return models.IntentComplaint
	case containsAny(q, "scheme", "yojana", "yojna", "benefit", "help", "योजना", "लाभ", "सहायता"):
		return models.IntentSchemeDiscovery
	default:
		return models.IntentGeneralQuery
	}
}

// suggestActions derives up to three tap targets from the matched schemes.
func suggestActions(intent models.Intent, schemes []*models.Scheme) []dto.SuggestedAction {
	var actions []dto.SuggestedAction
	for _, scheme := range schemes {
		if len(actions) == 3 {
			break
		}
		switch intent {
		case models.IntentApplicationGuidance:
			actions = append(actions, dto.SuggestedAction{
				Action:   "view_application_steps",
				Label:    fmt.Sprintf("How to apply for %s", scheme.Name.Get("en")),
				SchemeID: scheme.SchemeID,
			})
		case models.IntentDocumentAssistance:
			actions = append(actions, dto.SuggestedAction{
				Action:   "view_documents",
				Label:    fmt.Sprintf("Documents for %s", scheme.Name.Get("en")),
				SchemeID: scheme.SchemeID,
			})
		default:
			actions = append(actions, dto.SuggestedAction{
				Action:   "check_eligibility",
				Label:    fmt.Sprintf("Check eligibility for %s", scheme.Name.Get("en")),
				SchemeID: scheme.SchemeID,
			})
		}
	}
	return actions
}

// detectClarification reports whether the reply ends by asking the user for
// a detail. A trailing question mark in the last sentence is the signal.
func detectClarification(text string) (bool, string) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasSuffix(trimmed, "?") {
		return false, ""
	}
	idx := strings.LastIndexAny(trimmed[:len(trimmed)-1], ".!?।")
	question := strings.TrimSpace(trimmed[idx+1:])
	return true, question
}

func fallbackReply(lang string) string {
	if strings.HasPrefix(lang, "hi") {
		return "क्षमा करें, मुझे अभी जवाब देने में समस्या हो रही है। कृपया थोड़ी देर बाद फिर से पूछें।"
	}
	return "Sorry, I am having trouble answering right now. Please try again in a moment."
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func (s *DialogueService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}

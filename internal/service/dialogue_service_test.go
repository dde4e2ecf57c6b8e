package service

import (
	"testing"

	"sahayak/internal/models"
	"sahayak/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDetectIntent(t *testing.T) {
	cases := []struct {
		query string
		want  models.Intent
	}{
		{"Am I eligible for PM Kisan?", models.IntentEligibilityCheck},
		{"क्या मैं पात्र हूं?", models.IntentEligibilityCheck},
		{"How to apply for the pension scheme", models.IntentApplicationGuidance},
		{"आवेदन कैसे करें", models.IntentApplicationGuidance},
		{"Which documents do I need", models.IntentDocumentAssistance},
		{"मुझे कौन से दस्तावेज चाहिए", models.IntentDocumentAssistance},
		{"track my payment status", models.IntentStatusCheck},
		{"I have a complaint, money not received", models.IntentComplaint},
		{"koi yojana batao", models.IntentSchemeDiscovery},
		{"सरकारी योजना के बारे में बताओ", models.IntentSchemeDiscovery},
		{"namaste", models.IntentGeneralQuery},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, detectIntent(tc.query), "query: %s", tc.query)
	}
}

func TestDetectIntentOrderPrefersEligibility(t *testing.T) {
	// A query mentioning both eligibility and application classifies as the
	// more specific eligibility check.
	assert.Equal(t, models.IntentEligibilityCheck, detectIntent("am i eligible and how to apply"))
}

func TestDetectClarification(t *testing.T) {
	ok, question := detectClarification("PM Kisan is for farmers. How old are you?")
	assert.True(t, ok)
	assert.Equal(t, "How old are you?", question)

	ok, question = detectClarification("आप किसान हैं। आपकी उम्र क्या है?")
	assert.True(t, ok)
	assert.Equal(t, "आपकी उम्र क्या है?", question)

	ok, question = detectClarification("You can apply at the nearest CSC center.")
	assert.False(t, ok)
	assert.Empty(t, question)

	ok, question = detectClarification("What is your occupation?")
	assert.True(t, ok)
	assert.Equal(t, "What is your occupation?", question)
}

func TestSuggestActions(t *testing.T) {
	catalog, err := repository.NewSchemeCatalog(zap.NewNop())
	require.NoError(t, err)
	schemes := catalog.ListActive(0, 0)
	require.GreaterOrEqual(t, len(schemes), 4)

	actions := suggestActions(models.IntentApplicationGuidance, schemes)
	require.Len(t, actions, 3)
	assert.Equal(t, "view_application_steps", actions[0].Action)
	assert.Equal(t, schemes[0].SchemeID, actions[0].SchemeID)
	assert.Contains(t, actions[0].Label, schemes[0].Name.Get("en"))

	actions = suggestActions(models.IntentDocumentAssistance, schemes[:1])
	require.Len(t, actions, 1)
	assert.Equal(t, "view_documents", actions[0].Action)

	actions = suggestActions(models.IntentSchemeDiscovery, schemes[:2])
	require.Len(t, actions, 2)
	assert.Equal(t, "check_eligibility", actions[0].Action)

	assert.Empty(t, suggestActions(models.IntentSchemeDiscovery, nil))
}

func TestFallbackReply(t *testing.T) {
	assert.Contains(t, fallbackReply("hi"), "क्षमा करें")
	assert.Contains(t, fallbackReply("en"), "Sorry")
	assert.Contains(t, fallbackReply("ta"), "Sorry")
}

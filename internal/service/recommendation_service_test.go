package service

import (
	"testing"

	"sahayak/internal/models"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func eligibleResult(id, name string, pct float64, priority models.Priority, missingDocs ...string) models.EligibilityResult {
	return models.EligibilityResult{
		SchemeID:         id,
		SchemeName:       name,
		IsEligible:       true,
		MatchPercentage:  pct,
		Priority:         priority,
		MissingDocuments: missingDocs,
	}
}

func TestSummarizeEligibleResults(t *testing.T) {
	svc := NewRecommendationService(zap.NewNop())

	results := []models.EligibilityResult{
		eligibleResult("PM-KISAN-001", "PM Kisan Samman Nidhi", 100, models.PriorityHigh),
		eligibleResult("MGNREGA-004", "MGNREGA", 100, models.PriorityHigh),
		{
			SchemeID:        "PMAY-G-002",
			SchemeName:      "PMAY Gramin",
			MatchPercentage: 50,
			Priority:        models.PriorityLow,
			MissingCriteria: []string{"BPL card"},
		},
	}

	recommendations, nextSteps := svc.Summarize(results)

	assert.Contains(t, recommendations, "You are eligible for 2 government schemes!")
	assert.Contains(t, recommendations, "PM Kisan Samman Nidhi is highly recommended for you")

	assert.Contains(t, nextSteps, "Apply for PM Kisan Samman Nidhi")
	assert.Contains(t, nextSteps, "Apply for MGNREGA")
	assert.LessOrEqual(t, len(nextSteps), 5)
}

func TestSummarizeNoEligibleResults(t *testing.T) {
	svc := NewRecommendationService(zap.NewNop())

	results := []models.EligibilityResult{
		{
			SchemeID:        "APY-007",
			SchemeName:      "Atal Pension Yojana",
			MatchPercentage: 40,
			Priority:        models.PriorityLow,
		},
	}

	recommendations, nextSteps := svc.Summarize(results)

	assert.Contains(t, recommendations, "You don't fully match any schemes yet, but here are close matches")
	assert.Equal(t, []string{
		"Visit nearest CSC center for personalized guidance",
		"Call national helpline: 1800-XXX-XXXX",
	}, nextSteps)
}

func TestSummarizeDocumentAdvice(t *testing.T) {
	svc := NewRecommendationService(zap.NewNop())

	results := []models.EligibilityResult{
		eligibleResult("PM-KISAN-001", "PM Kisan Samman Nidhi", 75, models.PriorityMedium, "bank account"),
		eligibleResult("APY-007", "Atal Pension Yojana", 75, models.PriorityMedium, "bank account", "Aadhaar card"),
	}

	recommendations, _ := svc.Summarize(results)

	// Deduplicated across results, capped at three documents.
	assert.Contains(t, recommendations,
		"Arrange these documents to improve eligibility: bank account, Aadhaar card")
}

func TestSummarizeNextStepForNearMiss(t *testing.T) {
	svc := NewRecommendationService(zap.NewNop())

	results := []models.EligibilityResult{
		{
			SchemeID:         "PMAY-G-002",
			SchemeName:       "PMAY Gramin",
			MatchPercentage:  60,
			Priority:         models.PriorityLow,
			MissingDocuments: []string{"bpl card"},
		},
	}

	_, nextSteps := svc.Summarize(results)

	assert.Contains(t, nextSteps, "Get bpl card to qualify for PMAY Gramin")
}

func TestSummarizeHighPriorityCalloutRequiresEligible(t *testing.T) {
	svc := NewRecommendationService(zap.NewNop())

	// A high-percentage result alone, without any eligible scheme, gets
	// the close-matches message and no callout.
	results := []models.EligibilityResult{
		{
			SchemeID:        "NSP-PMS-006",
			SchemeName:      "Post Matric Scholarship",
			MatchPercentage: 90,
			Priority:        models.PriorityHigh,
			MissingCriteria: []string{"occupation (requires: student)"},
		},
	}

	recommendations, _ := svc.Summarize(results)

	assert.NotContains(t, recommendations, "Post Matric Scholarship is highly recommended for you")
	assert.Contains(t, recommendations, "You don't fully match any schemes yet, but here are close matches")
}

package service

import (
	"fmt"
	"strings"

	"sahayak/internal/models"

	"go.uber.org/zap"
)

// RecommendationService turns a ranked list of eligibility results into the
// human-readable guidance returned alongside a batch check: overall
// recommendations, document advice and concrete next steps.
type RecommendationService struct {
	logger *zap.Logger
}

func NewRecommendationService(logger *zap.Logger) *RecommendationService {
	return &RecommendationService{logger: logger}
}

// Summarize builds the recommendation and next-step lists for a set of
// results. Results are expected in descending match order, the way
// EligibilityService.CheckBatch returns them.
func (s *RecommendationService) Summarize(results []models.EligibilityResult) ([]string, []string) {
	return s.buildRecommendations(results), s.buildNextSteps(results)
}

func (s *RecommendationService) buildRecommendations(results []models.EligibilityResult) []string {
	recommendations := []string{}

	var eligible []models.EligibilityResult
	for _, r := range results {
		if r.IsEligible {
			eligible = append(eligible, r)
		}
	}

	if len(eligible) > 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("You are eligible for %d government schemes!", len(eligible)))
		for _, r := range eligible {
			if r.Priority == models.PriorityHigh {
				recommendations = append(recommendations,
					fmt.Sprintf("%s is highly recommended for you", r.SchemeName))
				break
			}
		}
	} else {
		recommendations = append(recommendations,
			"You don't fully match any schemes yet, but here are close matches")
	}

	// Collect document advice from the strongest matches only.
	top := results
	if len(top) > 5 {
		top = top[:5]
	}
	var docs []string
	for _, r := range top {
		for _, doc := range r.MissingDocuments {
			docs = appendUnique(docs, doc)
		}
	}
	if len(docs) > 0 {
		if len(docs) > 3 {
			docs = docs[:3]
		}
		recommendations = append(recommendations,
			fmt.Sprintf("Arrange these documents to improve eligibility: %s", strings.Join(docs, ", ")))
	}

	return recommendations
}

func (s *RecommendationService) buildNextSteps(results []models.EligibilityResult) []string {
	steps := []string{}

	top := results
	if len(top) > 3 {
		top = top[:3]
	}
	for _, r := range top {
		switch {
		case r.IsEligible:
			steps = append(steps, fmt.Sprintf("Apply for %s", r.SchemeName))
		case r.MatchPercentage >= 50 && len(r.MissingDocuments) > 0:
			steps = append(steps,
				fmt.Sprintf("Get %s to qualify for %s", r.MissingDocuments[0], r.SchemeName))
		}
	}

	if len(steps) == 0 {
		steps = append(steps,
			"Visit nearest CSC center for personalized guidance",
			"Call national helpline: 1800-XXX-XXXX",
		)
	}

	if len(steps) > 5 {
		steps = steps[:5]
	}
	return steps
}

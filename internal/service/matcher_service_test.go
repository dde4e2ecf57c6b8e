package service

import (
	"testing"

	"sahayak/internal/models"
	"sahayak/internal/repository"
	"sahayak/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testWeights() config.MatcherConfig {
	return config.MatcherConfig{
		AgeWeight:        20,
		IncomeWeight:     15,
		OccupationWeight: 25,
		StateWeight:      15,
		CategoryWeight:   15,
		GenderWeight:     5,
		BPLWeight:        5,
		KeywordBonus:     10,
	}
}

func newTestMatcher(t *testing.T) (*MatcherService, *repository.SchemeCatalog) {
	t.Helper()
	catalog, err := repository.NewSchemeCatalog(zap.NewNop())
	require.NoError(t, err)
	return NewMatcherService(catalog, testWeights(), zap.NewNop()), catalog
}

func intPtr(v int) *int           { return &v }
func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestScoreEmptyCriteria(t *testing.T) {
	matcher, catalog := newTestMatcher(t)

	for _, scheme := range catalog.All() {
		assert.Zero(t, matcher.Score(scheme, &models.SchemeSearchCriteria{}), "scheme %s", scheme.SchemeID)
	}
}

func TestScoreFarmerProfile(t *testing.T) {
	matcher, catalog := newTestMatcher(t)
	criteria := &models.SchemeSearchCriteria{
		Age:        intPtr(45),
		Income:     intPtr(150000),
		Occupation: "farmer",
		State:      "Uttar Pradesh",
	}

	// Age, income (no limit), occupation and state all satisfied.
	assert.InDelta(t, 100, matcher.Score(catalog.GetByID("PM-KISAN-001"), criteria), 0.01)

	// Income over the 120000 limit and no occupation restriction to earn:
	// only age and state score, for 35 of an attainable 75.
	assert.InDelta(t, 46.67, matcher.Score(catalog.GetByID("PMAY-G-002"), criteria), 0.01)
}

func TestScoreKeywordBonusIsCapped(t *testing.T) {
	matcher, catalog := newTestMatcher(t)
	criteria := &models.SchemeSearchCriteria{
		Age:      intPtr(70),
		Keywords: "pension",
	}

	// Age matches and the keyword bonus pushes past the base maximum.
	assert.InDelta(t, 100, matcher.Score(catalog.GetByID("IGNOAPS-009"), criteria), 0.01)

	// Age fails the 18-40 window; only the keyword bonus scores.
	assert.InDelta(t, 50, matcher.Score(catalog.GetByID("APY-007"), criteria), 0.01)
}

func TestScoreKeywordsAloneScoreZero(t *testing.T) {
	matcher, catalog := newTestMatcher(t)

	// With no base criteria the attainable maximum is zero, and the bonus
	// alone cannot be normalized into a score.
	criteria := &models.SchemeSearchCriteria{Keywords: "pension"}
	assert.Zero(t, matcher.Score(catalog.GetByID("IGNOAPS-009"), criteria))
}

func TestScoreCategoryPartialCredit(t *testing.T) {
	matcher, catalog := newTestMatcher(t)
	criteria := &models.SchemeSearchCriteria{
		Category: []models.SchemeCategory{models.CategoryAgriculture, models.CategoryHousing},
	}

	// PM-KISAN carries agriculture but not housing: half the category weight.
	assert.InDelta(t, 50, matcher.Score(catalog.GetByID("PM-KISAN-001"), criteria), 0.01)
}

func TestSearchRanksAndLimits(t *testing.T) {
	matcher, _ := newTestMatcher(t)
	criteria := &models.SchemeSearchCriteria{
		Age:        intPtr(45),
		Income:     intPtr(150000),
		Occupation: "farmer",
		State:      "Uttar Pradesh",
	}

	resp := matcher.Search(criteria, 0)
	require.NotEmpty(t, resp.Schemes)
	assert.Equal(t, len(resp.Schemes), resp.Total)

	// Descending by score, catalog order breaking ties: PM-KISAN and
	// MGNREGA both hit 100 and PM-KISAN comes first in the catalog.
	assert.Equal(t, "PM-KISAN-001", resp.Schemes[0].SchemeID)
	assert.Equal(t, "MGNREGA-004", resp.Schemes[1].SchemeID)
	for i := 1; i < len(resp.Schemes); i++ {
		assert.GreaterOrEqual(t,
			resp.MatchScores[resp.Schemes[i-1].SchemeID],
			resp.MatchScores[resp.Schemes[i].SchemeID])
	}

	limited := matcher.Search(criteria, 2)
	assert.Len(t, limited.Schemes, 2)
	assert.Equal(t, 2, limited.Total)
}

func TestSearchExcludesInactiveSchemes(t *testing.T) {
	matcher, _ := newTestMatcher(t)

	// A profile tailored to the inactive UP-KVY scheme.
	criteria := &models.SchemeSearchCriteria{
		Age:        intPtr(22),
		Occupation: "student",
		Gender:     "female",
		State:      "Uttar Pradesh",
		HasBPLCard: boolPtr(true),
	}

	resp := matcher.Search(criteria, 0)
	for _, scheme := range resp.Schemes {
		assert.NotEqual(t, "UP-KVY-011", scheme.SchemeID)
	}
}

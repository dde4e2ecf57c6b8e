package service

import (
	"sort"
	"strings"

	"sahayak/internal/dto"
	"sahayak/internal/models"
	"sahayak/internal/repository"
	"sahayak/pkg/config"

	"go.uber.org/zap"
)

// MatcherService computes soft relevance scores for open-ended scheme
// search. Scoring weights come from configuration.
type MatcherService struct {
	catalog *repository.SchemeCatalog
	weights config.MatcherConfig
	logger  *zap.Logger
}

func NewMatcherService(catalog *repository.SchemeCatalog, weights config.MatcherConfig, logger *zap.Logger) *MatcherService {
	return &MatcherService{
		catalog: catalog,
		weights: weights,
		logger:  logger,
	}
}

// Score returns the relevance of a scheme for the criteria in [0, 100].
// Every populated criterion field contributes its weight to the attainable
// maximum; the scheme earns the weight only when it satisfies the field. A
// criteria object with no populated fields scores zero against everything.
func (m *MatcherService) Score(scheme *models.Scheme, criteria *models.SchemeSearchCriteria) float64 {
	var score, maxScore float64
	eligibility := &scheme.Eligibility

	if criteria.Age != nil {
		maxScore += m.weights.AgeWeight
		age := *criteria.Age
		belowMin := eligibility.AgeMin != nil && age < *eligibility.AgeMin
		aboveMax := eligibility.AgeMax != nil && age > *eligibility.AgeMax
		if !belowMin && !aboveMax {
			score += m.weights.AgeWeight
		}
	}

	if criteria.Income != nil {
		maxScore += m.weights.IncomeWeight
		if eligibility.IncomeLimit == nil || *criteria.Income <= *eligibility.IncomeLimit {
			score += m.weights.IncomeWeight
		}
	}

	if criteria.Occupation != "" {
		maxScore += m.weights.OccupationWeight
		if containsFold(eligibility.Occupation, criteria.Occupation) {
			score += m.weights.OccupationWeight
		}
	}

	if criteria.State != "" {
		maxScore += m.weights.StateWeight
		if len(eligibility.States) > 0 {
			if contains(eligibility.States, "all") || contains(eligibility.States, criteria.State) {
				score += m.weights.StateWeight
			}
		}
	}

	if len(criteria.Category) > 0 {
		maxScore += m.weights.CategoryWeight
		// Partial credit per matching category.
		per := m.weights.CategoryWeight / float64(len(criteria.Category))
		for _, cat := range criteria.Category {
			if scheme.HasCategory(cat) {
				score += per
			}
		}
	}

	if criteria.Gender != "" {
		maxScore += m.weights.GenderWeight
		if eligibility.Gender == nil || *eligibility.Gender == "Any" || strings.EqualFold(*eligibility.Gender, criteria.Gender) {
			score += m.weights.GenderWeight
		}
	}

	if criteria.HasBPLCard != nil {
		maxScore += m.weights.BPLWeight
		if eligibility.BPLCard == nil || *eligibility.BPLCard == *criteria.HasBPLCard {
			score += m.weights.BPLWeight
		}
	}

	// Keyword overlap is a flat bonus outside the normalized base.
	if criteria.Keywords != "" {
		schemeText := strings.ToLower(scheme.Name.Get("en") + " " + scheme.Description.Get("en"))
		for _, word := range strings.Fields(strings.ToLower(criteria.Keywords)) {
			if strings.Contains(schemeText, word) {
				score += m.weights.KeywordBonus
				break
			}
		}
	}

	if maxScore > 0 {
		normalized := score / maxScore * 100
		if normalized > 100 {
			normalized = 100
		}
		return normalized
	}
	return 0
}

// Search ranks active schemes by relevance, descending. Ties keep catalog
// order. The limit truncates after sorting; the score map covers every
// scheme that scored above zero.
func (m *MatcherService) Search(criteria *models.SchemeSearchCriteria, limit int) *dto.SchemeSearchResponse {
	type scored struct {
		scheme *models.Scheme
		score  float64
	}

	var matched []scored
	scores := make(map[string]float64)

	for _, scheme := range m.catalog.All() {
		if !scheme.IsActive {
			continue
		}
		score := m.Score(scheme, criteria)
		if score > 0 {
			matched = append(matched, scored{scheme, score})
			scores[scheme.SchemeID] = score
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	schemes := make([]*models.Scheme, 0, len(matched))
	for _, m := range matched {
		schemes = append(schemes, m.scheme)
	}

	m.logger.Info("Scheme search completed", zap.Int("matches", len(schemes)))

	return &dto.SchemeSearchResponse{
		Total:       len(schemes),
		Schemes:     schemes,
		MatchScores: scores,
	}
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func containsFold(list []string, value string) bool {
	for _, v := range list {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

package service

import (
	"context"

	"sahayak/internal/dto"
	"sahayak/internal/models"
	"sahayak/internal/repository"

	"go.uber.org/zap"
)

// SchemeService is the façade the HTTP layer talks to for scheme lookup,
// search and eligibility checking. It composes the catalog, the matcher,
// the eligibility evaluator and the recommendation builder.
type SchemeService struct {
	catalog        *repository.SchemeCatalog
	matcher        *MatcherService
	eligibility    *EligibilityService
	recommendation *RecommendationService
	logger         *zap.Logger
}

func NewSchemeService(
	catalog *repository.SchemeCatalog,
	matcher *MatcherService,
	eligibility *EligibilityService,
	recommendation *RecommendationService,
	logger *zap.Logger,
) *SchemeService {
	return &SchemeService{
		catalog:        catalog,
		matcher:        matcher,
		eligibility:    eligibility,
		recommendation: recommendation,
		logger:         logger,
	}
}

// Search ranks active schemes against sparse search criteria.
func (s *SchemeService) Search(criteria *models.SchemeSearchCriteria, limit int) *dto.SchemeSearchResponse {
	return s.matcher.Search(criteria, limit)
}

// GetByID returns a scheme by its id, or nil for an unknown id.
func (s *SchemeService) GetByID(id string) *models.Scheme {
	return s.catalog.GetByID(id)
}

// List pages through active schemes in catalog order.
func (s *SchemeService) List(skip, limit int) ([]*models.Scheme, int) {
	return s.catalog.ListActive(skip, limit), s.catalog.Count()
}

// ByCategory returns active schemes carrying the given category.
func (s *SchemeService) ByCategory(category models.SchemeCategory, limit int) []*models.Scheme {
	return s.catalog.ListByCategory(category, limit)
}

// CheckEligibility runs a full batch check and wraps it with the generated
// recommendations and next steps.
func (s *SchemeService) CheckEligibility(ctx context.Context, req *dto.EligibilityCheckRequest) (*dto.EligibilityCheckResponse, error) {
	results, eligibleCount, err := s.eligibility.CheckBatch(ctx, req.SchemeIDs, &req.UserProfile)
	if err != nil {
		return nil, err
	}

	recommendations, nextSteps := s.recommendation.Summarize(results)

	return &dto.EligibilityCheckResponse{
		UserID:               req.UserProfile.UserID,
		TotalSchemesChecked:  len(results),
		EligibleSchemesCount: eligibleCount,
		Results:              results,
		Recommendations:      recommendations,
		NextSteps:            nextSteps,
	}, nil
}

// QuickCheck is the lightweight variant used mid-conversation: only
// high-priority eligible schemes, capped at five.
func (s *SchemeService) QuickCheck(ctx context.Context, profile *models.UserProfile) (*dto.QuickCheckResponse, error) {
	results, eligibleCount, err := s.eligibility.CheckBatch(ctx, nil, profile)
	if err != nil {
		return nil, err
	}

	top := []models.EligibilityResult{}
	for _, r := range results {
		if r.IsEligible && r.Priority == models.PriorityHigh {
			top = append(top, r)
			if len(top) == 5 {
				break
			}
		}
	}

	recommendations, nextSteps := s.recommendation.Summarize(results)

	return &dto.QuickCheckResponse{
		Success:              true,
		EligibleSchemesCount: eligibleCount,
		TopSchemes:           top,
		Recommendations:      recommendations,
		NextSteps:            nextSteps,
	}, nil
}

package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"sahayak/internal/models"
	"sahayak/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds the parallel per-scheme evaluations in CheckBatch.
const batchConcurrency = 8

// EligibilityService performs deterministic criterion-by-criterion checks of
// a user profile against scheme eligibility rules. Unlike the matcher's soft
// relevance scores, every evaluated criterion here is a boolean pass/fail.
type EligibilityService struct {
	catalog *repository.SchemeCatalog
	logger  *zap.Logger
}

func NewEligibilityService(catalog *repository.SchemeCatalog, logger *zap.Logger) *EligibilityService {
	return &EligibilityService{
		catalog: catalog,
		logger:  logger,
	}
}

// Evaluate checks the profile against one scheme. Each criterion the scheme
// enforces counts toward the denominator; the match percentage is the share
// of satisfied criteria. Age always counts, so a scheme enforcing nothing
// else reports 100% on the free age match.
func (s *EligibilityService) Evaluate(scheme *models.Scheme, profile *models.UserProfile) models.EligibilityResult {
	eligibility := &scheme.Eligibility
	var matched, missing, missingDocs []string
	totalCriteria := 0
	matchedCriteria := 0

	// Age is always counted: a scheme without an age floor matches any age.
	totalCriteria++
	if eligibility.AgeMin != nil {
		switch {
		case profile.Age < *eligibility.AgeMin:
			missing = append(missing, fmt.Sprintf("age (must be ≥ %d)", *eligibility.AgeMin))
		case eligibility.AgeMax != nil && profile.Age > *eligibility.AgeMax:
			missing = append(missing, fmt.Sprintf("age (must be ≤ %d)", *eligibility.AgeMax))
		default:
			matched = append(matched, "age")
			matchedCriteria++
		}
	} else {
		matched = append(matched, "age")
		matchedCriteria++
	}

	if len(eligibility.Occupation) > 0 {
		totalCriteria++
		if contains(eligibility.Occupation, string(profile.Occupation)) {
			matched = append(matched, "occupation")
			matchedCriteria++
		} else {
			missing = append(missing, fmt.Sprintf("occupation (requires: %s)", strings.Join(eligibility.Occupation, ", ")))
		}
	}

	// Income is skipped entirely when the profile does not state one: an
	// unknown income neither penalizes the percentage nor vetoes eligibility.
	if eligibility.IncomeLimit != nil && profile.AnnualIncome != nil {
		totalCriteria++
		if *profile.AnnualIncome <= *eligibility.IncomeLimit {
			matched = append(matched, "income")
			matchedCriteria++
		} else {
			missing = append(missing, fmt.Sprintf("income (must be ≤ ₹%d)", *eligibility.IncomeLimit))
		}
	}

	if len(eligibility.States) > 0 && !contains(eligibility.States, "all") {
		totalCriteria++
		if contains(eligibility.States, profile.State) {
			matched = append(matched, "location")
			matchedCriteria++
		} else {
			missing = append(missing, fmt.Sprintf("location (only for: %s)", strings.Join(eligibility.States, ", ")))
		}
	}

	if eligibility.Gender != nil && *eligibility.Gender != "Any" {
		totalCriteria++
		if strings.EqualFold(string(profile.Gender), *eligibility.Gender) {
			matched = append(matched, "gender")
			matchedCriteria++
		} else {
			missing = append(missing, fmt.Sprintf("gender (requires: %s)", *eligibility.Gender))
		}
	}

	if eligibility.BPLCard != nil && *eligibility.BPLCard {
		totalCriteria++
		if profile.HasBPLCard {
			matched = append(matched, "BPL card")
			matchedCriteria++
		} else {
			missing = append(missing, "BPL card")
		}
	}

	if eligibility.LandOwnership != nil && *eligibility.LandOwnership {
		totalCriteria++
		if profile.IsFarmer && profile.LandSizeAcres != nil && *profile.LandSizeAcres > 0 {
			matched = append(matched, "land ownership")
			matchedCriteria++
		} else {
			missing = append(missing, "land ownership")
		}
	}

	// A missing bank account is a missing document, not a missing
	// criterion: it lowers the percentage but never vetoes eligibility.
	if eligibility.BankAccount != nil && *eligibility.BankAccount {
		totalCriteria++
		if profile.HasBankAccount {
			matched = append(matched, "bank account")
			matchedCriteria++
		} else {
			missingDocs = append(missingDocs, "bank account")
		}
	}

	for _, doc := range scheme.DocumentsRequired {
		switch doc {
		case "aadhaar":
			if !profile.HasAadhaar {
				missingDocs = appendUnique(missingDocs, "Aadhaar card")
			}
		case "pan_card":
			if !profile.HasPAN {
				missingDocs = appendUnique(missingDocs, "PAN card")
			}
		case "bank_account":
			if !profile.HasBankAccount {
				missingDocs = appendUnique(missingDocs, "bank account")
			}
		}
	}

	var matchPercentage float64
	if totalCriteria > 0 {
		matchPercentage = float64(matchedCriteria) / float64(totalCriteria) * 100
	}

	isEligible := matchPercentage >= 70 && len(missing) == 0

	var recommendation string
	switch {
	case isEligible && len(missingDocs) > 0:
		recommendation = fmt.Sprintf("You are eligible! Arrange these documents: %s", strings.Join(missingDocs, ", "))
	case isEligible:
		recommendation = "You are eligible! You can apply now."
	case matchPercentage >= 50:
		top := missing
		if len(top) > 2 {
			top = top[:2]
		}
		recommendation = fmt.Sprintf("Partially eligible. Missing: %s", strings.Join(top, ", "))
	default:
		recommendation = "Not eligible for this scheme"
	}

	priority := models.PriorityLow
	switch {
	case matchPercentage >= 90:
		priority = models.PriorityHigh
	case matchPercentage >= 70:
		priority = models.PriorityMedium
	}

	return models.EligibilityResult{
		SchemeID:         scheme.SchemeID,
		SchemeName:       scheme.Name.Get("en"),
		IsEligible:       isEligible,
		MatchPercentage:  math.Round(matchPercentage*10) / 10,
		MatchedCriteria:  emptyIfNil(matched),
		MissingCriteria:  emptyIfNil(missing),
		MissingDocuments: emptyIfNil(missingDocs),
		Recommendation:   recommendation,
		Priority:         priority,
	}
}

// CheckBatch evaluates the profile against the given scheme ids, or against
// every active scheme when ids is empty. Results with a zero match are
// dropped; the rest are sorted descending by percentage, catalog order
// breaking ties. Returns the ranked results and the eligible count.
func (s *EligibilityService) CheckBatch(ctx context.Context, schemeIDs []string, profile *models.UserProfile) ([]models.EligibilityResult, int, error) {
	var schemes []*models.Scheme
	if len(schemeIDs) > 0 {
		for _, id := range schemeIDs {
			if scheme := s.catalog.GetByID(id); scheme != nil {
				schemes = append(schemes, scheme)
			}
		}
	} else {
		schemes = s.catalog.ListActive(0, 0)
	}

	results := make([]*models.EligibilityResult, len(schemes))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)
	for i, scheme := range schemes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result := s.Evaluate(scheme, profile)
			mu.Lock()
			results[i] = &result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("eligibility batch cancelled: %w", err)
	}

	var ranked []models.EligibilityResult
	for _, r := range results {
		if r != nil && r.MatchPercentage > 0 {
			ranked = append(ranked, *r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchPercentage > ranked[j].MatchPercentage
	})

	eligibleCount := 0
	for _, r := range ranked {
		if r.IsEligible {
			eligibleCount++
		}
	}

	s.logger.Info("Checked eligibility",
		zap.Int("eligible", eligibleCount),
		zap.Int("checked", len(ranked)),
	)
	return ranked, eligibleCount, nil
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

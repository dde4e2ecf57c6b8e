package dto

import "sahayak/internal/models"

type SchemeSearchResponse struct {
	Total       int                `json:"total"`
	Schemes     []*models.Scheme   `json:"schemes"`
	MatchScores map[string]float64 `json:"match_scores,omitempty"`
}

type EligibilityCheckRequest struct {
	UserProfile         models.UserProfile `json:"user_profile"`
	SchemeIDs           []string           `json:"scheme_ids,omitempty"`
	IncludeStateSchemes bool               `json:"include_state_schemes"`
}

type EligibilityCheckResponse struct {
	UserID               string                     `json:"user_id,omitempty"`
	TotalSchemesChecked  int                        `json:"total_schemes_checked"`
	EligibleSchemesCount int                        `json:"eligible_schemes_count"`
	Results              []models.EligibilityResult `json:"results"`
	Recommendations      []string                   `json:"recommendations"`
	NextSteps            []string                   `json:"next_steps"`
}

type QuickCheckResponse struct {
	Success              bool                       `json:"success"`
	EligibleSchemesCount int                        `json:"eligible_schemes_count"`
	TopSchemes           []models.EligibilityResult `json:"top_schemes"`
	Recommendations      []string                   `json:"recommendations"`
	NextSteps            []string                   `json:"next_steps"`
}

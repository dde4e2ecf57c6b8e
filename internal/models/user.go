package models

import "fmt"

type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

type MaritalStatus string

const (
	MaritalSingle    MaritalStatus = "single"
	MaritalMarried   MaritalStatus = "married"
	MaritalWidowed   MaritalStatus = "widowed"
	MaritalDivorced  MaritalStatus = "divorced"
	MaritalSeparated MaritalStatus = "separated"
)

type Occupation string

const (
	OccupationFarmer             Occupation = "farmer"
	OccupationLaborer            Occupation = "laborer"
	OccupationStudent            Occupation = "student"
	OccupationUnemployed         Occupation = "unemployed"
	OccupationSelfEmployed       Occupation = "self_employed"
	OccupationGovernmentEmployee Occupation = "government_employee"
	OccupationPrivateEmployee    Occupation = "private_employee"
	OccupationRetired            Occupation = "retired"
	OccupationHomemaker          Occupation = "homemaker"
	OccupationOther              Occupation = "other"
)

// UserProfile is a caller-supplied profile for eligibility checking.
// It is never persisted by the core.
type UserProfile struct {
	UserID        string        `json:"user_id,omitempty"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	State         string        `json:"state"`
	District      string        `json:"district,omitempty"`
	Occupation    Occupation    `json:"occupation"`
	AnnualIncome  *int          `json:"annual_income,omitempty"`
	Education     string        `json:"education,omitempty"`
	MaritalStatus MaritalStatus `json:"marital_status,omitempty"`
	Category      string        `json:"category,omitempty"`

	// Document availability
	HasAadhaar     bool `json:"has_aadhaar"`
	HasPAN         bool `json:"has_pan"`
	HasBankAccount bool `json:"has_bank_account"`
	HasBPLCard     bool `json:"has_bpl_card"`
	HasRationCard  bool `json:"has_ration_card"`

	// Specific conditions
	HasDisability        bool     `json:"has_disability"`
	DisabilityPercentage *int     `json:"disability_percentage,omitempty"`
	IsFarmer             bool     `json:"is_farmer"`
	LandSizeAcres        *float64 `json:"land_size_acres,omitempty"`

	PreferredLanguage string `json:"preferred_language,omitempty"`
}

// Validate enforces the profile bounds before any scoring happens.
func (p *UserProfile) Validate() error {
	if p.Age < 0 || p.Age > 120 {
		return fmt.Errorf("age must be between 0 and 120, got %d", p.Age)
	}
	if p.State == "" {
		return fmt.Errorf("state is required")
	}
	if p.AnnualIncome != nil && *p.AnnualIncome < 0 {
		return fmt.Errorf("annual_income must not be negative")
	}
	if p.DisabilityPercentage != nil {
		if *p.DisabilityPercentage < 0 || *p.DisabilityPercentage > 100 {
			return fmt.Errorf("disability_percentage must be between 0 and 100")
		}
	}
	if p.LandSizeAcres != nil && *p.LandSizeAcres < 0 {
		return fmt.Errorf("land_size_acres must not be negative")
	}
	return nil
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// EligibilityResult is the per-scheme outcome of an eligibility evaluation.
// It is computed per request and never stored.
type EligibilityResult struct {
	SchemeID         string   `json:"scheme_id"`
	SchemeName       string   `json:"scheme_name"`
	IsEligible       bool     `json:"is_eligible"`
	MatchPercentage  float64  `json:"match_percentage"`
	MatchedCriteria  []string `json:"matched_criteria"`
	MissingCriteria  []string `json:"missing_criteria"`
	MissingDocuments []string `json:"missing_documents"`
	Recommendation   string   `json:"recommendation"`
	Priority         Priority `json:"priority"`
}

package models

import (
	"fmt"
	"time"
)

type SchemeCategory string

const (
	CategoryAgriculture        SchemeCategory = "agriculture"
	CategoryEducation          SchemeCategory = "education"
	CategoryHealthcare         SchemeCategory = "healthcare"
	CategoryHousing            SchemeCategory = "housing"
	CategoryEmployment         SchemeCategory = "employment"
	CategoryWomenWelfare       SchemeCategory = "women_welfare"
	CategorySeniorCitizen      SchemeCategory = "senior_citizen"
	CategoryDisability         SchemeCategory = "disability"
	CategoryFinancialInclusion SchemeCategory = "financial_inclusion"
	CategorySkillDevelopment   SchemeCategory = "skill_development"
	CategorySocialSecurity     SchemeCategory = "social_security"
	CategoryEntrepreneurship   SchemeCategory = "entrepreneurship"
)

type BenefitType string

const (
	BenefitDirectTransfer BenefitType = "direct_transfer"
	BenefitSubsidy        BenefitType = "subsidy"
	BenefitLoan           BenefitType = "loan"
	BenefitInsurance      BenefitType = "insurance"
	BenefitTraining       BenefitType = "training"
	BenefitInfrastructure BenefitType = "infrastructure"
	BenefitService        BenefitType = "service"
)

// MultilingualText maps language codes to localized text. English is
// mandatory and serves as the fallback for every other language.
type MultilingualText map[string]string

// Get returns the text in the requested language, falling back to English.
func (t MultilingualText) Get(lang string) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	return t["en"]
}

// EligibilityCriteria describes the enforced dimensions of a scheme.
// A nil field means the criterion is not enforced.
type EligibilityCriteria struct {
	AgeMin        *int     `json:"age_min,omitempty"`
	AgeMax        *int     `json:"age_max,omitempty"`
	IncomeLimit   *int     `json:"income_limit,omitempty"`
	Occupation    []string `json:"occupation,omitempty"`
	Gender        *string  `json:"gender,omitempty"`
	Category      []string `json:"category,omitempty"`
	States        []string `json:"states,omitempty"`
	LandOwnership *bool    `json:"land_ownership,omitempty"`
	Education     *string  `json:"education,omitempty"`
	MaritalStatus *string  `json:"marital_status,omitempty"`
	Disability    *bool    `json:"disability,omitempty"`
	BPLCard       *bool    `json:"bpl_card,omitempty"`
	RationCard    *string  `json:"ration_card,omitempty"`
	BankAccount   *bool    `json:"bank_account,omitempty"`
}

type SchemeBenefits struct {
	Amount             *int             `json:"amount,omitempty"`
	Frequency          *string          `json:"frequency,omitempty"`
	Type               BenefitType      `json:"type"`
	Description        MultilingualText `json:"description"`
	Duration           *string          `json:"duration,omitempty"`
	AdditionalBenefits []string         `json:"additional_benefits,omitempty"`
}

type ApplicationStep struct {
	StepNumber        int              `json:"step_number"`
	Description       MultilingualText `json:"description"`
	Online            bool             `json:"online"`
	RequiredDocuments []string         `json:"required_documents,omitempty"`
}

// Scheme is a government welfare program record. Schemes are loaded once at
// startup and never mutated afterwards.
type Scheme struct {
	SchemeID           string              `json:"scheme_id"`
	Name               MultilingualText    `json:"name"`
	Description        MultilingualText    `json:"description"`
	Ministry           string              `json:"ministry"`
	Category           []SchemeCategory    `json:"category"`
	Eligibility        EligibilityCriteria `json:"eligibility"`
	Benefits           SchemeBenefits      `json:"benefits"`
	DocumentsRequired  []string            `json:"documents_required"`
	ApplicationProcess []ApplicationStep   `json:"application_process"`
	Helpline           *string             `json:"helpline,omitempty"`
	Website            *string             `json:"website,omitempty"`
	LastUpdated        time.Time           `json:"last_updated"`
	IsActive           bool                `json:"is_active"`
	LaunchDate         *string             `json:"launch_date,omitempty"`
	StateSpecific      *string             `json:"state_specific,omitempty"`
}

// Validate checks the structural invariants of a scheme record.
func (s *Scheme) Validate() error {
	if s.SchemeID == "" {
		return fmt.Errorf("scheme_id is required")
	}
	if s.Name.Get("en") == "" {
		return fmt.Errorf("scheme %s: english name is required", s.SchemeID)
	}
	if s.Description.Get("en") == "" {
		return fmt.Errorf("scheme %s: english description is required", s.SchemeID)
	}
	if len(s.Category) == 0 {
		return fmt.Errorf("scheme %s: at least one category is required", s.SchemeID)
	}
	return nil
}

// HasCategory reports whether the scheme carries the given category tag.
func (s *Scheme) HasCategory(cat SchemeCategory) bool {
	for _, c := range s.Category {
		if c == cat {
			return true
		}
	}
	return false
}

// SchemeSearchCriteria is a sparse query object. Absent fields do not
// penalize a scheme.
type SchemeSearchCriteria struct {
	Age           *int             `json:"age,omitempty"`
	Income        *int             `json:"income,omitempty"`
	Occupation    string           `json:"occupation,omitempty"`
	State         string           `json:"state,omitempty"`
	Category      []SchemeCategory `json:"category,omitempty"`
	Gender        string           `json:"gender,omitempty"`
	Education     string           `json:"education,omitempty"`
	HasBPLCard    *bool            `json:"has_bpl_card,omitempty"`
	HasDisability *bool            `json:"has_disability,omitempty"`
	Keywords      string           `json:"keywords,omitempty"`
}

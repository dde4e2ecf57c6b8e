package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"sahayak/internal/models"

	"go.uber.org/zap"
)

//go:embed data/schemes.json
var schemesData []byte

// SchemeCatalog holds the scheme records in load order. It is populated once
// by NewSchemeCatalog and read-only afterwards.
type SchemeCatalog struct {
	schemes []*models.Scheme
	byID    map[string]*models.Scheme
	logger  *zap.Logger
}

// NewSchemeCatalog parses the embedded scheme collection. A record that fails
// validation is logged and skipped; one bad record does not abort ingestion.
func NewSchemeCatalog(logger *zap.Logger) (*SchemeCatalog, error) {
	return newSchemeCatalog(schemesData, logger)
}

func newSchemeCatalog(data []byte, logger *zap.Logger) (*SchemeCatalog, error) {
	c := &SchemeCatalog{
		byID:   make(map[string]*models.Scheme),
		logger: logger,
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse schemes database: %w", err)
	}

	for i, record := range raw {
		scheme := &models.Scheme{IsActive: true}
		if err := json.Unmarshal(record, scheme); err != nil {
			logger.Error("Failed to decode scheme record",
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		if err := scheme.Validate(); err != nil {
			logger.Error("Skipping invalid scheme record",
				zap.Int("index", i),
				zap.String("scheme_id", scheme.SchemeID),
				zap.Error(err),
			)
			continue
		}
		normalizeCriteria(&scheme.Eligibility)
		c.schemes = append(c.schemes, scheme)
		c.byID[scheme.SchemeID] = scheme
	}

	logger.Info("Scheme catalog loaded", zap.Int("schemes", len(c.schemes)))
	return c, nil
}

// A scheme that does not state a bank account requirement requires one.
func normalizeCriteria(e *models.EligibilityCriteria) {
	if e.BankAccount == nil {
		required := true
		e.BankAccount = &required
	}
}

// GetByID returns the scheme with the given id, or nil when unknown.
func (c *SchemeCatalog) GetByID(id string) *models.Scheme {
	return c.byID[id]
}

// ListActive returns active schemes in load order, skipping the first skip
// entries and returning at most limit.
func (c *SchemeCatalog) ListActive(skip, limit int) []*models.Scheme {
	var out []*models.Scheme
	for _, s := range c.schemes {
		if !s.IsActive {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// ListByCategory returns active schemes carrying the category, in load order.
func (c *SchemeCatalog) ListByCategory(category models.SchemeCategory, limit int) []*models.Scheme {
	var out []*models.Scheme
	for _, s := range c.schemes {
		if !s.IsActive || !s.HasCategory(category) {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// All returns every scheme in load order, including inactive ones.
func (c *SchemeCatalog) All() []*models.Scheme {
	return c.schemes
}

// Count returns the number of loaded schemes.
func (c *SchemeCatalog) Count() int {
	return len(c.schemes)
}

package repository

import (
	"testing"

	"sahayak/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCatalog(t *testing.T) *SchemeCatalog {
	t.Helper()
	catalog, err := NewSchemeCatalog(zap.NewNop())
	require.NoError(t, err)
	return catalog
}

func TestCatalogLoadsEmbeddedSchemes(t *testing.T) {
	catalog := newTestCatalog(t)

	assert.Equal(t, 12, catalog.Count())

	for _, scheme := range catalog.All() {
		assert.NoError(t, scheme.Validate(), "scheme %s", scheme.SchemeID)
	}
}

func TestCatalogGetByID(t *testing.T) {
	catalog := newTestCatalog(t)

	scheme := catalog.GetByID("PM-KISAN-001")
	require.NotNil(t, scheme)
	assert.Equal(t, "PM Kisan Samman Nidhi", scheme.Name.Get("en"))
	assert.True(t, scheme.HasCategory(models.CategoryAgriculture))

	assert.Nil(t, catalog.GetByID("NO-SUCH-SCHEME"))
}

func TestCatalogListActiveExcludesInactive(t *testing.T) {
	catalog := newTestCatalog(t)

	active := catalog.ListActive(0, 0)
	assert.Len(t, active, 11)
	for _, scheme := range active {
		assert.True(t, scheme.IsActive)
		assert.NotEqual(t, "UP-KVY-011", scheme.SchemeID)
	}

	// Insertion order is preserved.
	assert.Equal(t, "PM-KISAN-001", active[0].SchemeID)
}

func TestCatalogListActivePagination(t *testing.T) {
	catalog := newTestCatalog(t)

	all := catalog.ListActive(0, 0)
	page := catalog.ListActive(2, 3)
	require.Len(t, page, 3)
	assert.Equal(t, all[2].SchemeID, page[0].SchemeID)
	assert.Equal(t, all[4].SchemeID, page[2].SchemeID)

	assert.Empty(t, catalog.ListActive(100, 10))
}

func TestCatalogListByCategory(t *testing.T) {
	catalog := newTestCatalog(t)

	education := catalog.ListByCategory(models.CategoryEducation, 0)
	require.Len(t, education, 1)
	assert.Equal(t, "NSP-PMS-006", education[0].SchemeID)

	women := catalog.ListByCategory(models.CategoryWomenWelfare, 0)
	require.Len(t, women, 1)
	assert.Equal(t, "PMMVY-010", women[0].SchemeID)

	assert.Empty(t, catalog.ListByCategory(models.CategoryDisability, 0))
}

func TestCatalogSkipsInvalidRecords(t *testing.T) {
	data := []byte(`[
		{
			"scheme_id": "TEST-001",
			"name": {"en": "Test Scheme"},
			"description": {"en": "A scheme used in tests"},
			"ministry": "Ministry of Testing",
			"category": ["agriculture"],
			"eligibility": {},
			"benefits": {"type": "direct_transfer", "description": {"en": "cash"}},
			"documents_required": ["aadhaar"],
			"application_process": []
		},
		{
			"scheme_id": "TEST-002",
			"name": {"hi": "बिना अंग्रेज़ी नाम"},
			"description": {"en": "Missing the english name"},
			"ministry": "Ministry of Testing",
			"category": ["healthcare"],
			"eligibility": {},
			"benefits": {"type": "service", "description": {"en": "care"}},
			"documents_required": [],
			"application_process": []
		}
	]`)

	catalog, err := newSchemeCatalog(data, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, catalog.Count())
	assert.NotNil(t, catalog.GetByID("TEST-001"))
	assert.Nil(t, catalog.GetByID("TEST-002"))

	// An unstated bank account requirement is normalized to required.
	loaded := catalog.GetByID("TEST-001")
	require.NotNil(t, loaded.Eligibility.BankAccount)
	assert.True(t, *loaded.Eligibility.BankAccount)
}

func TestCatalogRejectsMalformedJSON(t *testing.T) {
	_, err := newSchemeCatalog([]byte(`{"not": "an array"`), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse schemes database")
}

func TestCatalogBankAccountNormalization(t *testing.T) {
	catalog := newTestCatalog(t)

	// Explicit true and explicit false survive loading untouched.
	kisan := catalog.GetByID("PM-KISAN-001")
	require.NotNil(t, kisan.Eligibility.BankAccount)
	assert.True(t, *kisan.Eligibility.BankAccount)

	pmjay := catalog.GetByID("AB-PMJAY-003")
	require.NotNil(t, pmjay.Eligibility.BankAccount)
	assert.False(t, *pmjay.Eligibility.BankAccount)
}

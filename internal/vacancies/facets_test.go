package vacancies

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFacetsWithNothingSelected(t *testing.T) {
	items := Enrich(sampleRecords())
	f := Facets(items, DefaultCriteria())

	assert.Equal(t, []string{"Bali", "DKI Jakarta", "Jawa Barat"}, f.Provinces)
	assert.Equal(t, []string{"Data & AI", "Operations & Logistics", "Pertanian", "Web & Software Dev"}, f.Categories)
	assert.Equal(t, []string{"PT A", "PT B", "PT C", "PT D"}, f.Companies)
}

func TestSelectedFacetDoesNotConstrainItself(t *testing.T) {
	items := Enrich(sampleRecords())
	c := DefaultCriteria()
	c.Province = "Jawa Barat"

	assert.Equal(t, []string{"Bali", "DKI Jakarta", "Jawa Barat"}, AvailableValues(items, c, FacetProvince))
	assert.Equal(t, []string{"PT A", "PT B"}, AvailableValues(items, c, FacetCompany))
	assert.Equal(t, []string{"Data & AI", "Web & Software Dev"}, AvailableValues(items, c, FacetCategory))
}

func TestFacetsHonorSearchAndRatio(t *testing.T) {
	items := Enrich(sampleRecords())
	c := Criteria{Search: "data", MaxRatio: RatioCeiling(40)}

	// "Admin Data" has ratio 30, only reachable with the raised ceiling.
	assert.Equal(t, []string{"DKI Jakarta", "Jawa Barat"}, AvailableValues(items, c, FacetProvince))
	c.MaxRatio = RatioCeiling(10)
	assert.Equal(t, []string{"Jawa Barat"}, AvailableValues(items, c, FacetProvince))
}

func TestFacetsSkipBlankValues(t *testing.T) {
	items := Enrich([]Vacancy{
		vac("1", "Data Analyst", "", "", 1, 1),
		vac("2", "Data Analyst", "PT A", "Bali", 1, 1),
	})
	f := Facets(items, Criteria{})
	assert.Equal(t, []string{"Bali"}, f.Provinces)
	assert.Equal(t, []string{"PT A"}, f.Companies)
}

func TestFacetsEmptyDataset(t *testing.T) {
	f := Facets(nil, DefaultCriteria())
	assert.Empty(t, f.Provinces)
	assert.Empty(t, f.Categories)
	assert.Empty(t, f.Companies)
}

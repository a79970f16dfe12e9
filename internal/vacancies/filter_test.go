package vacancies

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func enrichedOne(v Vacancy) Enriched {
	return Enrich([]Vacancy{v})[0]
}

func TestKeepZeroQuotaIgnoresRatioCeiling(t *testing.T) {
	v := enrichedOne(vac("z", "Staf Gudang", "PT C", "Bali", 0, 0))
	assert.Nil(t, v.CompetitionRatio)
	assert.True(t, Keep(v, Criteria{MaxRatio: RatioCeiling(0)}))
}

func TestKeepRatioCeilingIsInclusive(t *testing.T) {
	v := enrichedOne(vac("r", "Data Analyst", "PT A", "Bali", 1, 10))
	assert.True(t, Keep(v, Criteria{MaxRatio: RatioCeiling(10)}))
	assert.False(t, Keep(v, Criteria{MaxRatio: RatioCeiling(9.99)}))
}

func TestKeepUnsetCeilingUsesDefault(t *testing.T) {
	v := enrichedOne(vac("r", "Data Analyst", "PT A", "Bali", 1, 11))
	assert.False(t, Keep(v, Criteria{}))
	assert.False(t, Keep(v, Criteria{MaxRatio: RatioCeiling(math.NaN())}))
	assert.True(t, Keep(v, Criteria{MaxRatio: RatioCeiling(20)}))
}

func TestKeepZeroCeilingKeepsOnlyZeroRatio(t *testing.T) {
	zero := enrichedOne(vac("z", "Data Analyst", "PT A", "Bali", 2, 0))
	three := enrichedOne(vac("t", "Data Analyst", "PT A", "Bali", 1, 3))
	undefined := enrichedOne(vac("u", "Data Analyst", "PT A", "Bali", 0, 5))

	c := Criteria{MaxRatio: RatioCeiling(0)}
	assert.True(t, Keep(zero, c))
	assert.False(t, Keep(three, c))
	assert.True(t, Keep(undefined, c))
	assert.Equal(t, 0.0, c.Ceiling())
}

func TestKeepFacetsExactAndAny(t *testing.T) {
	v := enrichedOne(vac("p", "Data Analyst", "PT A", "Jawa Barat", 1, 1))

	assert.True(t, Keep(v, Criteria{Province: "Jawa Barat"}))
	assert.False(t, Keep(v, Criteria{Province: "jawa barat"}))
	assert.True(t, Keep(v, Criteria{Province: AnyValue}))
	assert.True(t, Keep(v, Criteria{Province: ""}))
	assert.False(t, Keep(v, Criteria{Province: " Jawa Barat "}))
	assert.True(t, Keep(v, Criteria{Category: "Data & AI"}))
	assert.False(t, Keep(v, Criteria{Company: "PT B"}))
}

func TestKeepBlankFieldNeverMatchesSpecificValue(t *testing.T) {
	v := enrichedOne(vac("b", "Data Analyst", "PT A", "", 1, 1))
	assert.False(t, Keep(v, Criteria{Province: "Bali"}))
	assert.True(t, Keep(v, Criteria{Province: AnyValue}))
}

func TestKeepSearchIsCaseInsensitive(t *testing.T) {
	v := enrichedOne(vac("s", "Data Analyst", "PT A", "Bali", 1, 1))
	assert.True(t, Keep(v, Criteria{Search: "ANALYST"}))
	assert.True(t, Keep(v, Criteria{Search: "ta an"}))
	assert.False(t, Keep(v, Criteria{Search: "analyst "}))
	assert.True(t, Keep(v, Criteria{Search: ""}))
	assert.False(t, Keep(v, Criteria{Search: "engineer"}))
}

func TestKeepEqualsConjunctionOfSingleRules(t *testing.T) {
	items := Enrich(sampleRecords())
	loose := RatioCeiling(math.MaxFloat64)
	criteria := []Criteria{
		{Province: "Jawa Barat", Search: "data", MaxRatio: RatioCeiling(10)},
		{Category: "Data & AI", Company: "PT A", MaxRatio: RatioCeiling(40)},
		{Province: "DKI Jakarta", MaxRatio: RatioCeiling(1)},
		{Search: "a", Company: "PT D", MaxRatio: RatioCeiling(2)},
		{Province: "Jawa Barat", MaxRatio: RatioCeiling(0)},
	}
	for _, c := range criteria {
		for _, v := range items {
			want := Keep(v, Criteria{Province: c.Province, MaxRatio: loose}) &&
				Keep(v, Criteria{Category: c.Category, MaxRatio: loose}) &&
				Keep(v, Criteria{Company: c.Company, MaxRatio: loose}) &&
				Keep(v, Criteria{Search: c.Search, MaxRatio: loose}) &&
				Keep(v, Criteria{MaxRatio: c.MaxRatio})
			assert.Equal(t, want, Keep(v, c), "item %s criteria %+v", v.ID, c)
		}
	}
}

func TestFilterKeepsInputOrder(t *testing.T) {
	items := Enrich(sampleRecords())
	got := Filter(items, DefaultCriteria())
	assert.Equal(t, []string{"1", "2", "3", "5"}, keysOf(got))
}

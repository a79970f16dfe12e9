package vacancies

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMatchesKeywordGroups(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Android Developer", "Mobile Development"},
		{"Frontend Engineer", "Web & Software Dev"},
		{"UI/UX Designer", "UI/UX Design"},
		{"Barista", "Hospitality & Tourism"},
		{"Guru Matematika", "Education & Training"},
		{"Staf Hukum", "Legal"},
		{"Perawat", "Health & Medical"},
		{"Staf Gudang", "Operations & Logistics"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.title, "Whatever"))
			assert.Equal(t, tt.want, Classify(tt.title, ""))
		})
	}
}

func TestClassifyEarlierRuleWins(t *testing.T) {
	// "data" is checked before "admin".
	assert.Equal(t, "Data & AI", Classify("Admin Data", ""))
	// "android" is checked before "developer".
	assert.Equal(t, "Mobile Development", Classify("Android Developer", ""))
}

func TestClassifyMatchesNaiveSubstrings(t *testing.T) {
	// "ai" inside "pantai".
	assert.Equal(t, "Data & AI", Classify("Penjaga Pantai", "Pariwisata"))
}

func TestClassifyNoMatchKeepsSpecificCategory(t *testing.T) {
	assert.Equal(t, "Pertanian", Classify("Petani Muda", "Pertanian"))
	assert.Equal(t, FallbackCategory, Classify("Petani Muda", "Other"))
	assert.Equal(t, FallbackCategory, Classify("Petani Muda", "Lainnya"))
	assert.Equal(t, FallbackCategory, Classify("Petani Muda", ""))
}

func TestClassifyEmptyTitle(t *testing.T) {
	assert.Equal(t, FallbackCategory, Classify("", "Data & AI"))
	assert.Equal(t, FallbackCategory, Classify("", ""))
}

func TestCategoriesKeepPriorityOrder(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 22)
	assert.Equal(t, "Mobile Development", cats[0])
	assert.Equal(t, "Data & AI", cats[3])
	assert.Equal(t, "Education & Training", cats[len(cats)-1])
}

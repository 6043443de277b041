package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDefaultWeightsSumToOne guards the weight partition invariant: the total
// possible final score must be exactly 100.
func TestDefaultWeightsSumToOne(t *testing.T) {
	weights := DefaultWeights()

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 0.0001)
}

// TestDefaultWeightsCoverAllSections ensures no section is left unweighted.
func TestDefaultWeightsCoverAllSections(t *testing.T) {
	weights := DefaultWeights()

	assert.Len(t, weights, len(AllSections))
	for _, section := range AllSections {
		w, ok := weights[section]
		assert.True(t, ok, "missing weight for %s", section)
		assert.Greater(t, w, 0.0)
	}
}

// TestCategoryOrderIsStable pins the display order used by every renderer.
func TestCategoryOrderIsStable(t *testing.T) {
	expected := []Category{
		CategoryOverall,
		CategoryBusiness,
		CategoryTechno,
		CategoryGBP,
		CategoryListings,
		CategoryReputation,
		CategoryPerformance,
		CategorySEO,
	}
	assert.Equal(t, expected, AllCategories)
}

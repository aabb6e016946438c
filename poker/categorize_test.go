package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizePocket(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cards string
		want  PocketCategory
	}{
		{"AsAh", CategoryPremium},
		{"JcJd", CategoryPremium},
		{"AdKc", CategoryPremium},
		{"KsAs", CategoryPremium},
		{"TsTh", CategoryStrong},
		{"AhQd", CategoryStrong},
		{"JsAc", CategoryStrong},
		{"9c9d", CategoryMedium},
		{"7h7s", CategoryMedium},
		{"KhQh", CategoryMedium},
		{"QdJd", CategoryMedium},
		{"AsTs", CategoryMedium},
		{"6c6d", CategoryWeak},
		{"2s2h", CategoryWeak},
		{"8h7h", CategoryWeak},
		{"9s7s", CategoryWeak},
		{"KdQc", CategoryTrash},
		{"9s6s", CategoryTrash},
		{"7c2d", CategoryTrash},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			t.Parallel()
			c := MustParseCards(tt.cards)
			assert.Equal(t, tt.want, CategorizePocket(c[0], c[1]))
			assert.Equal(t, tt.want, CategorizePocket(c[1], c[0]), "order must not matter")
		})
	}
}

func TestPocketCategoryString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Premium", CategoryPremium.String())
	assert.Equal(t, "Trash", CategoryTrash.String())
	assert.Equal(t, "Unknown", PocketCategory(99).String())
	assert.Greater(t, CategoryPremium, CategoryStrong)
}

package search

import (
	"testing"

	"github.com/phrazzld/snapdex/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Card.Title
	}
	return out
}

func TestSearch(t *testing.T) {
	cards := domain.SampleCards()

	testCases := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "empty query keeps collection order",
			filter: Filter{},
			want:   []string{"Majestic Oak", "Ruby Crystal", "Aqua Serpent"},
		},
		{
			name:   "whitespace query behaves as empty",
			filter: Filter{Query: "   "},
			want:   []string{"Majestic Oak", "Ruby Crystal", "Aqua Serpent"},
		},
		{
			name:   "substring match",
			filter: Filter{Query: "oak"},
			want:   []string{"Majestic Oak"},
		},
		{
			name:   "case insensitive",
			filter: Filter{Query: "RUBY"},
			want:   []string{"Ruby Crystal"},
		},
		{
			name:   "scattered characters",
			filter: Filter{Query: "aqsrp"},
			want:   []string{"Aqua Serpent"},
		},
		{
			name:   "no match",
			filter: Filter{Query: "zzz"},
			want:   []string{},
		},
		{
			name:   "type filter without query",
			filter: Filter{Type: domain.CardTypeFire},
			want:   []string{"Ruby Crystal"},
		},
		{
			name:   "type filter excludes query matches",
			filter: Filter{Query: "oak", Type: domain.CardTypeWater},
			want:   []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Search(cards, tc.filter)
			assert.Equal(t, tc.want, titles(got))
		})
	}
}

func TestSearch_RanksTighterMatchFirst(t *testing.T) {
	cards := []domain.Card{
		{ID: "1", Title: "Stone Oak Totem", Type: domain.CardTypeRock},
		{ID: "2", Title: "Oak", Type: domain.CardTypeGrass},
	}

	got := Search(cards, Filter{Query: "oak"})
	require.Len(t, got, 2)
	assert.Equal(t, "Oak", got[0].Card.Title)
	assert.GreaterOrEqual(t, got[0].Score, got[1].Score)
}

func TestSearch_ResultsDoNotAlias(t *testing.T) {
	cards := domain.SampleCards()

	got := Search(cards, Filter{Query: "oak"})
	require.Len(t, got, 1)
	require.NotEmpty(t, got[0].Card.Stats)

	got[0].Card.Stats[0].Category = "changed"
	assert.NotEqual(t, "changed", cards[0].Stats[0].Category)
}

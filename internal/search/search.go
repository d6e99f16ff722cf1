// Package search finds cards in a collection by fuzzy title match.
package search

import (
	"strings"

	"github.com/phrazzld/snapdex/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Filter narrows a search.
type Filter struct {
	// Query is matched fuzzily against card titles. Empty matches everything.
	Query string
	// Type restricts results to one card type when set.
	Type domain.CardType
}

// Result is a matched card with its relevance score.
type Result struct {
	Card  domain.Card
	Score int
}

// searchItems implements fuzzy.Source over card titles.
type searchItems []domain.Card

func (items searchItems) Len() int {
	return len(items)
}

func (items searchItems) String(i int) string {
	return normalize(items[i].Title)
}

// Search returns the cards matching filter, best match first. With an empty
// query the collection order is kept.
func Search(cards []domain.Card, filter Filter) []Result {
	candidates := make(searchItems, 0, len(cards))
	for _, card := range cards {
		if filter.Type != "" && card.Type != filter.Type {
			continue
		}
		candidates = append(candidates, card)
	}

	query := normalize(filter.Query)
	if query == "" {
		results := make([]Result, len(candidates))
		for i, card := range candidates {
			results[i] = Result{Card: card.Clone()}
		}
		return results
	}

	matches := fuzzy.FindFrom(query, candidates)
	results := make([]Result, len(matches))
	for i, match := range matches {
		results[i] = Result{
			Card:  candidates[match.Index].Clone(),
			Score: match.Score,
		}
	}
	return results
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

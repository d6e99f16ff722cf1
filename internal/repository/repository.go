package repository

import (
	"context"

	"github.com/phrazzld/snapdex/internal/domain"
)

// Storage keys used for the collection and the display-ID counter.
const (
	CardsKey      = "snapDexCards"
	CounterKey    = "totalSnapDexCardsMade"
	CorruptBackup = CardsKey + ".corrupt"
)

// CardRepository is the durable storage of the card collection.
// All methods are synchronous; callers are expected to serialize access.
type CardRepository interface {
	// LoadCards returns the full persisted collection in stored order.
	// A store with no collection yields an empty slice and no error. An
	// undecodable payload yields an empty slice and an error wrapping
	// ErrCorruptCollection.
	LoadCards(ctx context.Context) ([]domain.Card, error)

	// SaveCards replaces the entire persisted collection.
	SaveCards(ctx context.Context, cards []domain.Card) error

	// GetCard looks a card up by ID. Returns ErrCardNotFound if absent,
	// including when the stored collection is undecodable.
	GetCard(ctx context.Context, id string) (*domain.Card, error)

	// SaveCard replaces the card with the same ID, or appends it if absent.
	SaveCard(ctx context.Context, card domain.Card) error

	// DeleteCard removes every card with the given ID.
	DeleteCard(ctx context.Context, id string) error

	// NextCardID increments and returns the persisted display-ID counter.
	// It never returns the same value twice for a given store.
	NextCardID(ctx context.Context) (int, error)
}

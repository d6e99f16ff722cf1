package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/snapdex/internal/domain"
	"github.com/phrazzld/snapdex/internal/kv"
)

// KVCardRepository implements CardRepository on a kv.Store.
type KVCardRepository struct {
	store  kv.Store
	logger *slog.Logger
}

// NewKVCardRepository creates a repository backed by store.
// If logger is nil, a default logger will be used.
func NewKVCardRepository(store kv.Store, logger *slog.Logger) *KVCardRepository {
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &KVCardRepository{
		store:  store,
		logger: logger.With(slog.String("component", "card_repository")),
	}
}

// Ensure KVCardRepository implements CardRepository interface
var _ CardRepository = (*KVCardRepository)(nil)

// LoadCards implements CardRepository.LoadCards.
// A payload that fails to decode is copied to CorruptBackup before the empty
// collection is returned, so a later save cannot destroy it.
func (r *KVCardRepository) LoadCards(ctx context.Context) ([]domain.Card, error) {
	data, err := r.store.Get(ctx, CardsKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []domain.Card{}, nil
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to read card collection", "error", err)
		return []domain.Card{}, newError("load", err)
	}

	var cards []domain.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		r.logger.ErrorContext(ctx, "failed to decode card collection, treating as empty",
			"error", err,
			"payload_bytes", len(data))

		if backupErr := r.store.Put(ctx, CorruptBackup, data); backupErr != nil {
			r.logger.ErrorContext(ctx, "failed to back up corrupt card collection",
				"error", backupErr)
		}
		return []domain.Card{}, newError("load", fmt.Errorf("%w: %v", ErrCorruptCollection, err))
	}

	if cards == nil {
		cards = []domain.Card{}
	}
	return cards, nil
}

// SaveCards implements CardRepository.SaveCards.
func (r *KVCardRepository) SaveCards(ctx context.Context, cards []domain.Card) error {
	if cards == nil {
		cards = []domain.Card{}
	}

	data, err := json.Marshal(cards)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to encode card collection", "error", err)
		return newError("save", err)
	}

	if err := r.store.Put(ctx, CardsKey, data); err != nil {
		r.logger.ErrorContext(ctx, "failed to write card collection",
			"error", err,
			"card_count", len(cards))
		return newError("save", err)
	}

	r.logger.DebugContext(ctx, "card collection saved", "card_count", len(cards))
	return nil
}

// GetCard implements CardRepository.GetCard. A corrupt collection holds no
// cards, so lookups against it report ErrCardNotFound.
func (r *KVCardRepository) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	cards, err := r.loadForUpdate(ctx)
	if err != nil {
		return nil, err
	}

	for _, card := range cards {
		if card.ID == id {
			found := card
			return &found, nil
		}
	}
	return nil, ErrCardNotFound
}

// SaveCard implements CardRepository.SaveCard.
func (r *KVCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	cards, err := r.loadForUpdate(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range cards {
		if cards[i].ID == card.ID {
			cards[i] = card
			replaced = true
			break
		}
	}
	if !replaced {
		cards = append(cards, card)
	}

	return r.SaveCards(ctx, cards)
}

// DeleteCard implements CardRepository.DeleteCard.
func (r *KVCardRepository) DeleteCard(ctx context.Context, id string) error {
	cards, err := r.loadForUpdate(ctx)
	if err != nil {
		return err
	}

	kept := cards[:0]
	for _, card := range cards {
		if card.ID != id {
			kept = append(kept, card)
		}
	}

	return r.SaveCards(ctx, kept)
}

// NextCardID implements CardRepository.NextCardID.
func (r *KVCardRepository) NextCardID(ctx context.Context) (int, error) {
	next, err := r.store.Increment(ctx, CounterKey)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to issue display id", "error", err)
		return 0, newError("next_id", err)
	}
	return int(next), nil
}

// loadForUpdate loads the collection for a lookup or read-modify-write. A
// corrupt collection is treated as empty (it has already been backed up);
// any other read failure aborts the operation.
func (r *KVCardRepository) loadForUpdate(ctx context.Context) ([]domain.Card, error) {
	cards, err := r.LoadCards(ctx)
	if err != nil && !errors.Is(err, ErrCorruptCollection) {
		return nil, err
	}
	return cards, nil
}

package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/snapdex/internal/domain"
	"github.com/phrazzld/snapdex/internal/repository"
)

// MockCardRepository implements repository.CardRepository over an in-memory
// slice and counter, with error injection and call tracking.
type MockCardRepository struct {
	mu sync.Mutex

	// Cards is the persisted collection.
	Cards []domain.Card
	// Counter is the last issued display ID.
	Counter int

	// Errors returned by the corresponding method when set
	LoadErr   error
	SaveErr   error
	NextIDErr error

	// Call tracking for verification
	LoadCalls   int
	SaveCalls   int
	NextIDCalls int
	// Saved holds every collection passed to SaveCards, in call order.
	Saved [][]domain.Card
}

var _ repository.CardRepository = (*MockCardRepository)(nil)

// NewMockCardRepository creates a repository pre-populated with cards.
func NewMockCardRepository(cards ...domain.Card) *MockCardRepository {
	return &MockCardRepository{Cards: cloneCards(cards)}
}

// LoadCards implements repository.CardRepository.
func (m *MockCardRepository) LoadCards(ctx context.Context) ([]domain.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LoadCalls++
	if m.LoadErr != nil {
		return []domain.Card{}, m.LoadErr
	}
	return cloneCards(m.Cards), nil
}

// SaveCards implements repository.CardRepository. The call is recorded even
// when SaveErr is set; the stored collection only changes on success.
func (m *MockCardRepository) SaveCards(ctx context.Context, cards []domain.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	m.Saved = append(m.Saved, cloneCards(cards))
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Cards = cloneCards(cards)
	return nil
}

// GetCard implements repository.CardRepository.
func (m *MockCardRepository) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	for _, card := range m.Cards {
		if card.ID == id {
			c := card.Clone()
			return &c, nil
		}
	}
	return nil, repository.ErrCardNotFound
}

// SaveCard implements repository.CardRepository.
func (m *MockCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	m.mu.Lock()
	cards := cloneCards(m.Cards)
	m.mu.Unlock()

	replaced := false
	for i := range cards {
		if cards[i].ID == card.ID {
			cards[i] = card.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		cards = append(cards, card.Clone())
	}
	return m.SaveCards(ctx, cards)
}

// DeleteCard implements repository.CardRepository.
func (m *MockCardRepository) DeleteCard(ctx context.Context, id string) error {
	m.mu.Lock()
	kept := make([]domain.Card, 0, len(m.Cards))
	for _, card := range m.Cards {
		if card.ID != id {
			kept = append(kept, card.Clone())
		}
	}
	m.mu.Unlock()

	return m.SaveCards(ctx, kept)
}

// NextCardID implements repository.CardRepository.
func (m *MockCardRepository) NextCardID(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.NextIDCalls++
	if m.NextIDErr != nil {
		return 0, m.NextIDErr
	}
	m.Counter++
	return m.Counter, nil
}

// Stored returns a copy of the persisted collection.
func (m *MockCardRepository) Stored() []domain.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneCards(m.Cards)
}

// SaveCount returns how many times SaveCards has been called.
func (m *MockCardRepository) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SaveCalls
}

// SetSaveErr changes the error SaveCards returns.
func (m *MockCardRepository) SetSaveErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveErr = err
}

func cloneCards(cards []domain.Card) []domain.Card {
	out := make([]domain.Card, len(cards))
	for i, card := range cards {
		out[i] = card.Clone()
	}
	return out
}

package generation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/phrazzld/snapdex/internal/domain"
)

// Values produced by PlaceholderService. PlaceholderTitle is the stem of the
// "Generated Card #N" title given to cards whose data carries no title.
const (
	PlaceholderTitle       = "Generated Card"
	PlaceholderDescription = "This is a newly generated card from an image capture."
)

// PlaceholderService stands in for a real backend by waiting a fixed delay
// and sampling stats and a card type at random. The random source and delay
// are injected so output is reproducible.
type PlaceholderService struct {
	mu    sync.Mutex
	rng   *rand.Rand
	delay time.Duration
}

// NewPlaceholderService creates a PlaceholderService drawing from rng.
// A nil rng is seeded from the current time.
func NewPlaceholderService(rng *rand.Rand, delay time.Duration) *PlaceholderService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if delay < 0 {
		delay = 0
	}
	return &PlaceholderService{rng: rng, delay: delay}
}

var _ Service = (*PlaceholderService)(nil)

// AnalyzeImage implements Service.AnalyzeImage. It waits for the configured
// delay and picks a random card type.
func (p *PlaceholderService) AnalyzeImage(ctx context.Context, _ Image) (*Analysis, error) {
	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	cardType := p.pickType()
	return &Analysis{
		Subject:      "Captured object",
		VisualTraits: "",
		Type:         string(cardType),
		Stats:        map[string]string{},
	}, nil
}

// GenerateCardData implements Service.GenerateCardData with stats sampled
// from fixed ranges. The title is left empty so the card is numbered once
// its display ID is issued.
func (p *PlaceholderService) GenerateCardData(ctx context.Context, _ Analysis) (*CardData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	power := 50 + p.rng.Intn(51)
	defense := 30 + p.rng.Intn(51)
	special := 40 + p.rng.Intn(51)
	p.mu.Unlock()
	typeName := p.pickType().DisplayName()

	return &CardData{
		Title:       "",
		Description: PlaceholderDescription,
		Stats: []domain.Stat{
			domain.NewStat("Power", domain.IntValue(power)),
			domain.NewStat("Defense", domain.IntValue(defense)),
			domain.NewStat("Special", domain.IntValue(special)),
			domain.NewStat("Type", domain.StringValue(typeName)),
		},
		ArtPrompt: "",
	}, nil
}

// GenerateImage implements Service.GenerateImage. The placeholder produces no artwork.
func (p *PlaceholderService) GenerateImage(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "", nil
}

func (p *PlaceholderService) pickType() domain.CardType {
	types := domain.AllCardTypes()
	p.mu.Lock()
	defer p.mu.Unlock()
	return types[p.rng.Intn(len(types))]
}

func (p *PlaceholderService) wait(ctx context.Context) error {
	if p.delay == 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

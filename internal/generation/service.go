package generation

import (
	"context"

	"github.com/phrazzld/snapdex/internal/domain"
)

// Image is a captured photo held in memory.
type Image struct {
	Data     []byte
	MIMEType string
}

// Empty reports whether the image carries no data.
func (i Image) Empty() bool {
	return len(i.Data) == 0
}

// Analysis is the classification of a photo.
type Analysis struct {
	Subject      string
	VisualTraits string
	// Type is a free-form type name; it is parsed into a domain.CardType
	// when the card is assembled.
	Type  string
	Stats map[string]string
}

// CardData holds the displayable fields derived from an Analysis.
type CardData struct {
	// Title may be left empty; the card is then titled PlaceholderTitle
	// followed by its display number.
	Title       string
	Description string
	Stats       []domain.Stat
	ArtPrompt   string
}

// Service defines the interface for generating card content from a photo.
// Implementations return an error rather than a partial result when a stage fails.
type Service interface {
	// AnalyzeImage classifies the captured photo.
	AnalyzeImage(ctx context.Context, image Image) (*Analysis, error)

	// GenerateCardData derives title, description, stats and an art prompt.
	GenerateCardData(ctx context.Context, analysis Analysis) (*CardData, error)

	// GenerateImage synthesizes artwork for prompt and returns a reference to
	// it. An empty reference means no artwork was produced.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

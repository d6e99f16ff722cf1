package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/snapdex/internal/generation"
)

// MockGenerationService implements generation.Service for testing.
// Each stage uses its Fn field when set, otherwise it returns the
// corresponding default value or error.
type MockGenerationService struct {
	AnalyzeImageFn     func(ctx context.Context, image generation.Image) (*generation.Analysis, error)
	GenerateCardDataFn func(ctx context.Context, analysis generation.Analysis) (*generation.CardData, error)
	GenerateImageFn    func(ctx context.Context, prompt string) (string, error)

	// Default response values
	Analysis *generation.Analysis
	CardData *generation.CardData
	ImageURL string

	// Per-stage default errors
	AnalyzeErr  error
	CardDataErr error
	ImageErr    error

	// Call tracking for verification
	mu                 sync.Mutex
	AnalyzeImageCalls  []generation.Image
	CardDataCalls      []generation.Analysis
	GenerateImageCalls []string
}

var _ generation.Service = (*MockGenerationService)(nil)

// NewMockGenerationService returns a mock whose defaults mirror generation.MockService.
func NewMockGenerationService() *MockGenerationService {
	return &MockGenerationService{
		Analysis: &generation.Analysis{
			Subject:      generation.MockSubject,
			VisualTraits: generation.MockVisualTraits,
			Type:         generation.MockType,
			Stats:        map[string]string{},
		},
		CardData: &generation.CardData{
			Title:       generation.MockTitle,
			Description: generation.MockDescription,
			ArtPrompt:   generation.MockArtPrompt,
		},
		ImageURL: generation.MockImageURL,
	}
}

// AnalyzeImage implements generation.Service.
func (m *MockGenerationService) AnalyzeImage(ctx context.Context, image generation.Image) (*generation.Analysis, error) {
	m.mu.Lock()
	m.AnalyzeImageCalls = append(m.AnalyzeImageCalls, image)
	m.mu.Unlock()

	if m.AnalyzeImageFn != nil {
		return m.AnalyzeImageFn(ctx, image)
	}
	if m.AnalyzeErr != nil {
		return nil, m.AnalyzeErr
	}
	return m.Analysis, nil
}

// GenerateCardData implements generation.Service.
func (m *MockGenerationService) GenerateCardData(ctx context.Context, analysis generation.Analysis) (*generation.CardData, error) {
	m.mu.Lock()
	m.CardDataCalls = append(m.CardDataCalls, analysis)
	m.mu.Unlock()

	if m.GenerateCardDataFn != nil {
		return m.GenerateCardDataFn(ctx, analysis)
	}
	if m.CardDataErr != nil {
		return nil, m.CardDataErr
	}
	return m.CardData, nil
}

// GenerateImage implements generation.Service.
func (m *MockGenerationService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.GenerateImageCalls = append(m.GenerateImageCalls, prompt)
	m.mu.Unlock()

	if m.GenerateImageFn != nil {
		return m.GenerateImageFn(ctx, prompt)
	}
	if m.ImageErr != nil {
		return "", m.ImageErr
	}
	return m.ImageURL, nil
}

// CallCounts returns how many times each stage has been called.
func (m *MockGenerationService) CallCounts() (analyze, cardData, image int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.AnalyzeImageCalls), len(m.CardDataCalls), len(m.GenerateImageCalls)
}

// Reset resets the call tracking state
func (m *MockGenerationService) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AnalyzeImageCalls = nil
	m.CardDataCalls = nil
	m.GenerateImageCalls = nil
}

package generation

import (
	"context"
)

// Fixed values returned by MockService.
const (
	MockSubject      = "Mock Subject"
	MockVisualTraits = "Mock visual traits"
	MockType         = "normal"
	MockTitle        = "Mock Card"
	MockDescription  = "Mock description"
	MockArtPrompt    = "Mock art prompt"
	MockImageURL     = "https://placekitten.com/300/300"
)

// MockService is a deterministic Service that never touches the network and
// never fails unless its context is cancelled.
type MockService struct{}

// NewMockService creates a MockService.
func NewMockService() *MockService {
	return &MockService{}
}

var _ Service = (*MockService)(nil)

// AnalyzeImage implements Service.AnalyzeImage.
func (m *MockService) AnalyzeImage(ctx context.Context, _ Image) (*Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Analysis{
		Subject:      MockSubject,
		VisualTraits: MockVisualTraits,
		Type:         MockType,
		Stats:        map[string]string{},
	}, nil
}

// GenerateCardData implements Service.GenerateCardData.
func (m *MockService) GenerateCardData(ctx context.Context, _ Analysis) (*CardData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &CardData{
		Title:       MockTitle,
		Description: MockDescription,
		Stats:       nil,
		ArtPrompt:   MockArtPrompt,
	}, nil
}

// GenerateImage implements Service.GenerateImage.
func (m *MockService) GenerateImage(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return MockImageURL, nil
}

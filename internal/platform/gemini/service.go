package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/snapdex/internal/config"
	"github.com/phrazzld/snapdex/internal/domain"
	"github.com/phrazzld/snapdex/internal/generation"
	"google.golang.org/genai"
)

const defaultImageMIMEType = "image/jpeg"

// modelsAPI is the subset of genai.Models used by Service.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// Service implements generation.Service with Gemini for text and Imagen for artwork.
type Service struct {
	models     modelsAPI
	logger     *slog.Logger
	model      string
	imageModel string
	maxRetries int
	baseDelay  time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand
}

var _ generation.Service = (*Service)(nil)

// NewService creates a Service with a Gemini API client built from cfg.
func NewService(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Service, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	logger = logger.With("component", "gemini")

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "Gemini service initialized",
		"model", cfg.ModelName,
		"image_model", cfg.ImageModelName)
	return newService(client.Models, logger, cfg)
}

func newService(models modelsAPI, logger *slog.Logger, cfg config.LLMConfig) (*Service, error) {
	if models == nil {
		return nil, ErrNilModelsClient
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}
	baseDelay := cfg.RetryDelay()
	if baseDelay < 0 {
		baseDelay = 2 * time.Second
	}

	return &Service{
		models:     models,
		logger:     logger,
		model:      cfg.ModelName,
		imageModel: cfg.ImageModelName,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// AnalyzeImage implements generation.Service.AnalyzeImage.
func (s *Service) AnalyzeImage(ctx context.Context, image generation.Image) (*generation.Analysis, error) {
	if image.Empty() {
		return nil, generation.ErrEmptyImage
	}
	mimeType := image.MIMEType
	if mimeType == "" {
		mimeType = defaultImageMIMEType
	}

	prompt, err := executeTemplate(ctx, s.logger, analysisTemplate, analysisPromptData{CardTypes: cardTypeList()})
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
			{InlineData: &genai.Blob{Data: image.Data, MIMEType: mimeType}},
		},
	}}

	var parsed analysisSchema
	if err := s.generateJSON(ctx, "analyze_image", contents, &parsed); err != nil {
		return nil, err
	}

	if strings.TrimSpace(parsed.Subject) == "" {
		return nil, fmt.Errorf("%w: analysis has no subject", generation.ErrInvalidResponse)
	}
	if parsed.Stats == nil {
		parsed.Stats = map[string]string{}
	}

	return &generation.Analysis{
		Subject:      parsed.Subject,
		VisualTraits: parsed.VisualTraits,
		Type:         parsed.Type,
		Stats:        parsed.Stats,
	}, nil
}

// GenerateCardData implements generation.Service.GenerateCardData.
func (s *Service) GenerateCardData(ctx context.Context, analysis generation.Analysis) (*generation.CardData, error) {
	prompt, err := executeTemplate(ctx, s.logger, cardDataTemplate, cardDataPromptData{
		Subject:      analysis.Subject,
		VisualTraits: analysis.VisualTraits,
		Type:         analysis.Type,
		Stats:        analysis.Stats,
	})
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}

	var parsed cardDataSchema
	if err := s.generateJSON(ctx, "generate_card_data", contents, &parsed); err != nil {
		return nil, err
	}

	if strings.TrimSpace(parsed.Title) == "" {
		return nil, fmt.Errorf("%w: card data has no title", generation.ErrInvalidResponse)
	}

	stats := make([]domain.Stat, 0, len(parsed.Stats))
	for _, raw := range parsed.Stats {
		stat, err := raw.toStat()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", generation.ErrInvalidResponse, err)
		}
		stats = append(stats, stat)
	}

	return &generation.CardData{
		Title:       parsed.Title,
		Description: parsed.Description,
		Stats:       stats,
		ArtPrompt:   parsed.ArtPrompt,
	}, nil
}

// GenerateImage implements generation.Service.GenerateImage. It returns the
// Cloud Storage URI when the model provides one, otherwise a data: URL.
func (s *Service) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", generation.ErrEmptyPrompt
	}

	var ref string
	err := s.withRetry(ctx, "generate_image", func(ctx context.Context) error {
		resp, err := s.models.GenerateImages(ctx, s.imageModel, prompt, &genai.GenerateImagesConfig{
			NumberOfImages: 1,
		})
		if err != nil {
			return err
		}
		ref, err = imageReference(resp)
		return err
	})
	if err != nil {
		return "", err
	}
	return ref, nil
}

// generateJSON calls GenerateContent in JSON mode and decodes the reply into out.
func (s *Service) generateJSON(ctx context.Context, operation string, contents []*genai.Content, out any) error {
	cfg := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	return s.withRetry(ctx, operation, func(ctx context.Context) error {
		resp, err := s.models.GenerateContent(ctx, s.model, contents, cfg)
		if err != nil {
			return err
		}
		text, err := responseText(resp)
		if err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(stripCodeFence(text)), out); err != nil {
			return fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
		}
		return nil
	})
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && !part.Thought {
			b.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: response has no text", generation.ErrInvalidResponse)
	}
	return b.String(), nil
}

// stripCodeFence removes a ```json fence some models wrap around JSON output.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func imageReference(resp *genai.GenerateImagesResponse) (string, error) {
	if resp == nil || len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0] == nil {
		return "", fmt.Errorf("%w: no image generated", generation.ErrInvalidResponse)
	}

	generated := resp.GeneratedImages[0]
	if generated.Image == nil {
		if generated.RAIFilteredReason != "" {
			return "", fmt.Errorf("%w: %s", generation.ErrContentBlocked, generated.RAIFilteredReason)
		}
		return "", fmt.Errorf("%w: image missing from response", generation.ErrInvalidResponse)
	}

	if generated.Image.GCSURI != "" {
		return generated.Image.GCSURI, nil
	}
	if len(generated.Image.ImageBytes) == 0 {
		return "", fmt.Errorf("%w: image has no data", generation.ErrInvalidResponse)
	}

	mimeType := generated.Image.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(generated.Image.ImageBytes), nil
}

package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/phrazzld/snapdex/internal/domain"
)

// analysisPromptData is passed to the image analysis template.
type analysisPromptData struct {
	CardTypes string
}

// cardDataPromptData is passed to the card data template.
type cardDataPromptData struct {
	Subject      string
	VisualTraits string
	Type         string
	Stats        map[string]string
}

// analysisSchema is the JSON the model returns for an image analysis.
type analysisSchema struct {
	Subject      string            `json:"subject"`
	VisualTraits string            `json:"visual_traits"`
	Type         string            `json:"type"`
	Stats        map[string]string `json:"stats"`
}

// cardDataSchema is the JSON the model returns for card content.
type cardDataSchema struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Stats       []statSchema `json:"stats"`
	ArtPrompt   string       `json:"art_prompt"`
}

// statSchema is one stat; Value is either a JSON integer or a JSON string.
type statSchema struct {
	Category string          `json:"category"`
	Value    json.RawMessage `json:"value"`
}

// toStat converts the wire stat. Whole numbers become integer values and
// anything else is kept as text.
func (s statSchema) toStat() (domain.Stat, error) {
	category := strings.TrimSpace(s.Category)
	if category == "" {
		return domain.Stat{}, fmt.Errorf("stat category is empty")
	}

	raw := bytes.TrimSpace(s.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.Stat{}, fmt.Errorf("stat %q has no value", category)
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return domain.Stat{}, fmt.Errorf("stat %q: %w", category, err)
		}
		return domain.NewStat(category, domain.StringValue(text)), nil
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return domain.Stat{}, fmt.Errorf("stat %q: unsupported value %s", category, raw)
	}
	if n, err := num.Int64(); err == nil {
		return domain.NewStat(category, domain.IntValue(int(n))), nil
	}
	return domain.NewStat(category, domain.StringValue(num.String())), nil
}

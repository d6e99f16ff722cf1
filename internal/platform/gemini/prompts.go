package gemini

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/phrazzld/snapdex/internal/domain"
)

const analysisTemplateText = `You are cataloguing a photo for a collectible card game.
Identify the main subject of the photo and describe its most distinctive visual traits.
Pick the single best fitting type from this list: {{.CardTypes}}.
Estimate up to four characteristic stats (for example age, height, habitat, rarity).

Respond with JSON only, in this shape:
{"subject": "...", "visual_traits": "...", "type": "...", "stats": {"name": "value"}}`

const cardDataTemplateText = `Create a collectible card for this subject.
Subject: {{.Subject}}
Visual traits: {{.VisualTraits}}
Type: {{.Type}}
{{- if .Stats}}
Observed stats:
{{- range $name, $value := .Stats}}
- {{$name}}: {{$value}}
{{- end}}
{{- end}}

Write a short evocative title, a one or two sentence description, three to five stats
and a prompt for an illustrator. Stat values are integers or short strings.

Respond with JSON only, in this shape:
{"title": "...", "description": "...", "stats": [{"category": "...", "value": 0}], "art_prompt": "..."}`

var (
	analysisTemplate = template.Must(template.New("analysis").Parse(analysisTemplateText))
	cardDataTemplate = template.Must(template.New("card_data").Parse(cardDataTemplateText))
)

func cardTypeList() string {
	types := domain.AllCardTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// executeTemplate renders tmpl with data.
func executeTemplate(ctx context.Context, logger *slog.Logger, tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s prompt template: %w", tmpl.Name(), err)
	}

	prompt := buf.String()
	logger.DebugContext(ctx, "Prompt generated successfully",
		"template_name", tmpl.Name(),
		"prompt_length", len(prompt))
	return prompt, nil
}

package news

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"newsopoly/internal/game"
)

// DefaultModel is the Gemini model used for headline classification.
const DefaultModel = "gemini-2.5-flash"

const classifyPrompt = `You are an AI News Analyst for a satirical stock market board game.
Your job is to read real-world news headlines and convert them into game events.

Game Context:
- The game has 6 industries (Tags): AI, CHIPS (Semiconductors), ENERGY (Oil & Green), GOV (Government/Central Banks), CRYPTO, MEDIA.
- "MARKET" news affects one specific industry.
- "NOISE" news is irrelevant pop culture or minor events (which becomes random chaos in-game).

Task:
1. Receive a list of news items (Title + Description).
2. For EACH item, classify it as "MARKET" or "NOISE".
3. If MARKET, assign ONE most relevant Tag from the 6 above.
4. If NOISE, tag is null.
5. Write a satirical one-sentence reason for the effect.
6. Determine sentiment direction (UP for positive news, DOWN for negative).
7. Return a JSON array of objects.

Output JSON Structure:
[
  {
    "source_title": "Original Title",
    "title": "Short, punchy headline",
    "reason": "Why it affects the market, 1 sentence",
    "type": "MARKET" | "NOISE",
    "tag": "AI" | "CHIPS" | "ENERGY" | "GOV" | "CRYPTO" | "MEDIA" | null,
    "direction": "UP" | "DOWN"
  }
]

Constraints:
- STRICTLY return valid JSON. No markdown fencing.
- Classify roughly 40-50% as NOISE to keep the game chaotic.
- If a news item is about a specific tech company (Nvidia, OpenAI), map it to AI or CHIPS.
- If it's about Bitcoin/Ethereum, map to CRYPTO.
- If it's about Elections/Taxes/War, map to GOV.
- If it's about Movies/Music/Celebrities, map to MEDIA.
- If it's strictly local or boring, make it NOISE.

Here is the news list to process:
`

// Classifier turns raw headlines into game events.
type Classifier interface {
	Classify(ctx context.Context, headlines []Headline) ([]game.MarketEvent, error)
}

// GeminiClassifier classifies headlines with the Gemini API.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

func NewGeminiClassifier(ctx context.Context, apiKey, model string) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key not configured")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClassifier{client: client, model: model}, nil
}

// Close releases the underlying API client.
func (c *GeminiClassifier) Close() error { return c.client.Close() }

func (c *GeminiClassifier) Classify(ctx context.Context, headlines []Headline) ([]game.MarketEvent, error) {
	if len(headlines) == 0 {
		return nil, nil
	}
	input, err := json.Marshal(headlines)
	if err != nil {
		return nil, fmt.Errorf("marshal headlines: %w", err)
	}

	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, genai.Text(classifyPrompt+string(input)))
	if err != nil {
		return nil, fmt.Errorf("classify headlines: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("empty classifier response")
	}
	return ParseClassified(text)
}

func responseText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				b.WriteString(string(txt))
			}
		}
	}
	return b.String()
}

// ParseClassified decodes the model's JSON array, tolerating the
// markdown fences Gemini sometimes wraps around it.
func ParseClassified(text string) ([]game.MarketEvent, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var events []game.MarketEvent
	if err := json.Unmarshal([]byte(cleaned), &events); err != nil {
		return nil, fmt.Errorf("decode classifier response: %w", err)
	}
	for i := range events {
		events[i] = game.NormalizeEvent(events[i])
	}
	return events, nil
}

package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/blaisecz/wellness-forecast/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

// DefaultSystemPrompt is used when no prompt could be loaded from Langfuse or disk.
const DefaultSystemPrompt = `You are a non-medical wellness assistant.

You receive one weekly wellness metric (sleep quality, physical activity, word positivity or blood pressure) together with its forecast analysis: a three-week projection, trend direction, healthy range breach, and the comparison between last week's forecast and the actual value. Base your conclusions only on the provided data.

Your goals:
- Explain in plain language what the recent weeks and the projection show.
- Give practical, behavioral suggestions that could move the metric back toward or keep it inside its healthy range.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- Focus only on behavior and routines.
- If data is limited or the projection is unavailable, say that explicitly.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "1-2 sentences describing the metric's recent weeks and forecast.",
  "actions": [
    "2-4 concrete, non-medical suggestions tailored to these numbers."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing one wellness metric.

- "metric" holds the weekly history (oldest first), the values we forecast for past weeks (null where no forecast existed), and the healthy range.
- "forecast" holds the three-week projection, its trend, whether it leaves the healthy range, and the alerts shown to the user.

JSON:

%s

Based on this data, respond in the required JSON format.`

// RecommendationLLM generates a recommendation for one analyzed metric.
type RecommendationLLM interface {
	GenerateRecommendation(ctx context.Context, recCtx *domain.RecommendationContext) (*domain.LLMRecommendationOutput, error)
}

// OpenAIClient implements RecommendationLLM using the OpenAI API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOpenAIClient creates a new OpenAI client for generating recommendations.
// Returns nil if apiKey is empty. An empty systemPrompt uses DefaultSystemPrompt.
func NewOpenAIClient(apiKey, model, systemPrompt string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// GenerateRecommendation calls OpenAI to generate a recommendation.
func (c *OpenAIClient) GenerateRecommendation(ctx context.Context, recCtx *domain.RecommendationContext) (*domain.LLMRecommendationOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	userPrompt, err := BuildUserPrompt(recCtx)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	return ParseRecommendation(resp.Choices[0].Message.Content)
}

// BuildUserPrompt renders the user message for a recommendation request.
func BuildUserPrompt(recCtx *domain.RecommendationContext) (string, error) {
	contextJSON, err := json.MarshalIndent(recCtx, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}
	return fmt.Sprintf(userPromptTemplate, string(contextJSON)), nil
}

// ParseRecommendation decodes the model's JSON answer. Models occasionally wrap
// the object in a markdown code fence; that wrapper is stripped.
func ParseRecommendation(content string) (*domain.LLMRecommendationOutput, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var output domain.LLMRecommendationOutput
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}
	if output.Summary == "" {
		return nil, fmt.Errorf("%w: empty summary", ErrOpenAIResponse)
	}
	return &output, nil
}

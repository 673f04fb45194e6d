// Package analyze calls the external analysis step that derives a summary
// and per-company sentiment from an article.
package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/jonesrussell/newsradar/internal/domain"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o-mini"

const systemPrompt = "You are a financial news analyst. " +
	"You read Korean business articles and report company-level sentiment as structured JSON."

// Analyzer produces an analysis result for one article. The analysis step
// is an external collaborator; callers decide the retry/skip policy when
// it fails.
type Analyzer interface {
	Analyze(ctx context.Context, article *domain.Article) (*domain.AnalysisResult, error)
}

// Config configures the OpenAI-backed analyzer.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIAnalyzer implements Analyzer against the OpenAI chat-completion API.
type OpenAIAnalyzer struct {
	client openai.Client
	model  string
}

// NewOpenAIAnalyzer creates a new OpenAI-backed analyzer.
func NewOpenAIAnalyzer(cfg Config) *OpenAIAnalyzer {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIAnalyzer{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Analyze submits one article and decodes the structured analysis response.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, article *domain.Article) (*domain.AnalysisResult, error) {
	response, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(systemPrompt),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(buildPrompt(article)),
					},
				},
			},
		},
		Temperature: openai.Float(0.1),
		MaxTokens:   openai.Int(2000),
	})
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, errors.New("analysis returned no choices")
	}

	result, err := DecodeResult(response.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}

	return result, nil
}

// buildPrompt renders the analysis request for one article.
func buildPrompt(article *domain.Article) string {
	var sb strings.Builder
	sb.WriteString("Analyze this news article. Provide:\n")
	sb.WriteString("- summary: 2-3 sentence Korean summary of the article\n")
	sb.WriteString("- companies: every company the article mentions, keyed by its display name, each with:\n")
	sb.WriteString("  - mapped_name: canonical company name\n")
	sb.WriteString("  - stock_code: exchange ticker, or empty string if unlisted/unknown\n")
	sb.WriteString("  - country: country of incorporation (e.g. Korea, USA)\n")
	sb.WriteString("  - listing_status: \"상장\" if listed, \"비상장\" otherwise\n")
	sb.WriteString("  - sentiment: positive, negative, or neutral for this company in this article\n\n")
	sb.WriteString("Respond with JSON only:\n")
	sb.WriteString(`{"summary": "...", "companies": {"name": {"mapped_name": "...", "stock_code": "...", "country": "...", "listing_status": "...", "sentiment": "..."}}}`)
	sb.WriteString("\n\nArticle:\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", article.Title)
	fmt.Fprintf(&sb, "Published: %s\n", article.PublishedAt)
	fmt.Fprintf(&sb, "Content: %s\n", article.Content)
	return sb.String()
}

// DecodeResult parses the model output into an AnalysisResult, tolerating
// a markdown code fence around the JSON payload.
func DecodeResult(content string) (*domain.AnalysisResult, error) {
	content = stripCodeFence(content)

	var result domain.AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parse analysis json: %w", err)
	}

	if result.Companies == nil {
		result.Companies = map[string]domain.CompanySentiment{}
	}

	return &result, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence if present.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

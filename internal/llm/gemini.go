package llm

import (
	"context"
	"strings"

	genai "google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// GeminiClient is a thin wrapper around the official genai client. It
// handles only the API calls; degraded-mode fallbacks and retry policy
// live in the analyze service.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  strings.TrimSpace(apiKey),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

func (g *GeminiClient) AnalyzeDocument(ctx context.Context, mineName string, pdf []byte) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: "application/pdf", Data: pdf}},
			{Text: analysisPrompt(mineName)},
		}}},
		nil,
	)
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

func (g *GeminiClient) GenerateSuggestions(ctx context.Context, mineName, analysis string) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{
			{Text: suggestionsPrompt(mineName, analysis)},
		}}},
		nil,
	)
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

func firstText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", ErrEmptyResponse
	}
	return b.String(), nil
}

package intelligence

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiOracle implements Oracle using Gemini text generation.
type GeminiOracle struct {
	client        *genai.Client
	model         string
	promptBuilder *PromptBuilder
}

func NewGeminiOracle(ctx context.Context, apiKey string, modelName string) (*GeminiOracle, error) {
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiOracle{
		client:        client,
		model:         modelName,
		promptBuilder: &PromptBuilder{},
	}, nil
}

func (o *GeminiOracle) AnalyzeDocument(ctx context.Context, sections []Section) (*DocumentIntelligence, error) {
	prompt := o.promptBuilder.BuildAnalysisPrompt(sections)
	raw, err := o.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return DecodeIntelligence(raw)
}

func (o *GeminiOracle) OptimizeSection(ctx context.Context, section Section, docCtx DocContext) (*SectionOptimization, error) {
	prompt := o.promptBuilder.BuildOptimizationPrompt(section, docCtx)
	raw, err := o.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return DecodeOptimization(raw, section.Header, section.Content)
}

func (o *GeminiOracle) PlanLayout(ctx context.Context, intel *DocumentIntelligence, headers []string) (*LayoutPlan, error) {
	prompt := o.promptBuilder.BuildLayoutPrompt(intel, headers)
	raw, err := o.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return DecodeLayoutPlan(raw)
}

func (o *GeminiOracle) generate(ctx context.Context, prompt string) (string, error) {
	contents := genai.Text(prompt)
	resp, err := o.client.Models.GenerateContent(ctx, o.model, contents, nil)
	if err != nil {
		return "", err
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

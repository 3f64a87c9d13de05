package intelligence

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIOracle implements Oracle using the OpenAI chat completions API.
type OpenAIOracle struct {
	client        *openai.Client
	model         string
	promptBuilder *PromptBuilder
}

func NewOpenAIOracle(apiKey, model, baseURL string) *OpenAIOracle {
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
	return &OpenAIOracle{
		client:        openai.NewClientWithConfig(cfg),
		model:         model,
		promptBuilder: &PromptBuilder{},
	}
}

func (o *OpenAIOracle) AnalyzeDocument(ctx context.Context, sections []Section) (*DocumentIntelligence, error) {
	raw, err := o.generate(ctx,
		"You are an expert document intelligence analyst specializing in professional document optimization. Respond with valid JSON only.",
		o.promptBuilder.BuildAnalysisPrompt(sections))
	if err != nil {
		return nil, err
	}
	return DecodeIntelligence(raw)
}

func (o *OpenAIOracle) OptimizeSection(ctx context.Context, section Section, docCtx DocContext) (*SectionOptimization, error) {
	raw, err := o.generate(ctx,
		"You are an expert content optimizer. Respond with valid JSON only.",
		o.promptBuilder.BuildOptimizationPrompt(section, docCtx))
	if err != nil {
		return nil, err
	}
	return DecodeOptimization(raw, section.Header, section.Content)
}

func (o *OpenAIOracle) PlanLayout(ctx context.Context, intel *DocumentIntelligence, headers []string) (*LayoutPlan, error) {
	raw, err := o.generate(ctx,
		"You are an expert document layout designer. Respond with valid JSON only.",
		o.promptBuilder.BuildLayoutPrompt(intel, headers))
	if err != nil {
		return nil, err
	}
	return DecodeLayoutPlan(raw)
}

func (o *OpenAIOracle) generate(ctx context.Context, system, prompt string) (string, error) {
	if strings.TrimSpace(o.model) == "" {
		return "", fmt.Errorf("openai model is required")
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("openai returned an empty response")
	}
	return text, nil
}

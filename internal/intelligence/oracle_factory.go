package intelligence

import (
	"context"
	"fmt"
	"strings"
)

type OracleOptions struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

func NewOracle(ctx context.Context, opts OracleOptions) (Oracle, error) {
	provider := strings.ToLower(strings.TrimSpace(opts.Provider))
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		return NewGeminiOracle(ctx, opts.APIKey, opts.Model)
	case "openai":
		return NewOpenAIOracle(opts.APIKey, opts.Model, opts.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported oracle provider: %s", opts.Provider)
	}
}

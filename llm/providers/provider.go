// Package providers builds the chat model behind the BookFinder agent.
package providers

import (
	"context"
	"errors"
	"fmt"

	"bookfinder/config"

	geminiModel "github.com/cloudwego/eino-ext/components/model/gemini"
	openaiModel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino-ext/components/model/qwen"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// ErrMissingAPIKey is returned when the selected provider has no API key configured.
var ErrMissingAPIKey = errors.New("API key is required")

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderQwen   = "qwen"
)

// NewChatModel creates a tool-calling chat model for the configured provider.
func NewChatModel(ctx context.Context, cfg config.LLMConfig) (model.ToolCallingChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: %w", cfg.Provider, ErrMissingAPIKey)
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIModel(ctx, cfg)
	case ProviderGemini:
		return NewGeminiModel(ctx, cfg)
	case ProviderQwen:
		return NewQwenModel(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}

// NewOpenAIModel creates an OpenAI (or OpenAI-compatible) chat model.
// Required environment variables:
//   - OPENAI_API_KEY
//
// Optional environment variables:
//   - OPENAI_BASE_URL: OpenAI-compatible endpoint (default: api.openai.com)
//   - OPENAI_MODEL: Model name (default: gpt-4o)
func NewOpenAIModel(ctx context.Context, cfg config.LLMConfig) (model.ToolCallingChatModel, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = "gpt-4o"
	}

	return openaiModel.NewChatModel(ctx, &openaiModel.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   modelName,
	})
}

// NewGeminiModel creates a Google Gemini chat model.
// Required environment variables:
//   - GEMINI_API_KEY
//
// Optional environment variables:
//   - GEMINI_MODEL: Model name (default: gemini-2.5-flash)
func NewGeminiModel(ctx context.Context, cfg config.LLMConfig) (model.ToolCallingChatModel, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return geminiModel.NewChatModel(ctx, &geminiModel.Config{
		Client: client,
		Model:  modelName,
	})
}

// NewQwenModel creates a DashScope Qwen chat model.
// Required environment variables:
//   - QWEN_API_KEY
//
// Optional environment variables:
//   - QWEN_BASE_URL, QWEN_MODEL (default: qwen-plus)
func NewQwenModel(ctx context.Context, cfg config.LLMConfig) (model.ToolCallingChatModel, error) {
	modelName := cfg.Model
	if modelName == "" {
		modelName = "qwen-plus"
	}

	return qwen.NewChatModel(ctx, &qwen.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   modelName,
	})
}

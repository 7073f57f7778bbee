package providers

import (
	"context"
	"errors"
	"testing"

	"bookfinder/config"
)

func TestNewChatModelMissingKey(t *testing.T) {
	for _, p := range []string{ProviderOpenAI, ProviderGemini, ProviderQwen} {
		_, err := NewChatModel(context.Background(), config.LLMConfig{Provider: p})
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("%s: error = %v, want ErrMissingAPIKey", p, err)
		}
	}
}

func TestNewChatModelUnsupported(t *testing.T) {
	_, err := NewChatModel(context.Background(), config.LLMConfig{Provider: "llama", APIKey: "k"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewChatModelOpenAI(t *testing.T) {
	m, err := NewChatModel(context.Background(), config.LLMConfig{
		Provider: ProviderOpenAI,
		APIKey:   "sk-test",
		BaseURL:  "http://127.0.0.1:1/v1",
	})
	if err != nil {
		t.Fatalf("NewChatModel() error = %v", err)
	}
	if m == nil {
		t.Fatal("nil model")
	}
}

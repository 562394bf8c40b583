// Package llm wraps the language-model backends behind one completion call.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotConfigured = errors.New("language model is not configured")
	ErrEmptyResponse = errors.New("empty response from language model")
)

// Request is a single, non-streaming completion.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
	Close() error
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Close() error
}

type Config struct {
	Provider       string // gemini | openai | vertex
	APIKey         string
	Model          string
	EmbeddingModel string
	ProjectID      string // vertex only
	Location       string // vertex only
}

// New builds the configured provider. A missing credential returns
// ErrNotConfigured so callers can keep serving and answer 500 per request.
func New(ctx context.Context, cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		if cfg.APIKey == "" {
			return nil, ErrNotConfigured
		}
		return NewGemini(ctx, cfg.APIKey, cfg.Model)
	case "openai":
		if cfg.APIKey == "" {
			return nil, ErrNotConfigured
		}
		return NewOpenAI(cfg.APIKey, cfg.Model)
	case "vertex":
		if cfg.ProjectID == "" {
			return nil, ErrNotConfigured
		}
		return NewVertexGemini(ctx, cfg.ProjectID, cfg.Location, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// NewEmbedder only supports Gemini embeddings; other providers return ErrNotConfigured.
func NewEmbedder(ctx context.Context, cfg Config) (Embedder, error) {
	p := strings.ToLower(cfg.Provider)
	if (p != "" && p != "gemini") || cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	return NewGeminiEmbedder(ctx, cfg.APIKey, cfg.EmbeddingModel)
}

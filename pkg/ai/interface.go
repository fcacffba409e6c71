// Package ai selects an API provider for front matter suggestions.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/xrsl/blogx/pkg/claude"
	"github.com/xrsl/blogx/pkg/gemini"
)

// Client is the common interface for AI providers
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Close()
}

// CachingClient supports prompt caching (optional interface)
type CachingClient interface {
	Client
	GenerateContentWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// DefaultModel returns the model used when none is configured.
func DefaultModel() string {
	return gemini.DefaultModel
}

// NewClient creates an AI client based on the model prefix
func NewClient(model string) (Client, error) {
	switch {
	case strings.HasPrefix(model, "gemini-"):
		return gemini.NewClient(model)
	case strings.HasPrefix(model, "claude-"):
		return claude.NewClient(model)
	default:
		return nil, fmt.Errorf("unknown model: %s (use gemini-* or claude-*)", model)
	}
}

// IsModelSupported checks if a model is supported by any provider
func IsModelSupported(model string) bool {
	switch {
	case strings.HasPrefix(model, "gemini-"):
		return gemini.IsModelSupported(model)
	case strings.HasPrefix(model, "claude-"):
		return claude.IsModelSupported(model)
	default:
		return false
	}
}

package providers

import (
	"context"
)

// CompletionRequest is one chat prompt plus the sampling parameters the
// caller wants for it.
type CompletionRequest struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

type SourceName string

const (
	SourceGroq SourceName = "GROQ"
)

// Client is a single "complete chat prompt" capability. Each call is one
// best-effort round trip: no retry, no caching.
type Client interface {
	Name() SourceName
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Error is a provider-level failure (network, auth, quota). Message carries
// whatever the upstream said, or DefaultErrorMessage when it said nothing.
type Error struct {
	Source  SourceName
	Message string
}

const DefaultErrorMessage = "Connection error"

func (e *Error) Error() string {
	if e.Message == "" {
		return DefaultErrorMessage
	}
	return e.Message
}

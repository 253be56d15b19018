package llm

import (
	"context"
	"errors"
)

// ErrService marks a failure of the external AI call itself: transport
// error, timeout, API error or an empty response. Callers treat it as
// the signal to fall back to local analysis.
var ErrService = errors.New("ai service unavailable")

// AnalyzeInput carries one document into the AI analyzer. FileName is
// used for logging only; the model sees the raw bytes.
type AnalyzeInput struct {
	FileName string
	MIMEType string
	Data     []byte
}

// Client abstracts the generative AI provider. Analyze returns the raw
// text of the model response; interpreting it is the caller's concern.
type Client interface {
	Analyze(ctx context.Context, input AnalyzeInput) (string, error)
	Available() bool
}

// Unavailable is the client used when no provider is configured. Every
// call fails with ErrService, which routes processing to the fallback
// analyzer.
type Unavailable struct{}

func (Unavailable) Analyze(ctx context.Context, input AnalyzeInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrService
}

func (Unavailable) Available() bool { return false }

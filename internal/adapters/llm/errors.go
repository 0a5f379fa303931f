package llm

import "errors"

var (
	// ErrRequest indicates the completion request itself failed.
	ErrRequest = errors.New("completion request failed")
	// ErrEmptyResponse indicates the provider returned no choices.
	ErrEmptyResponse = errors.New("empty completion response")
)

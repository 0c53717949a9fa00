package llm

import "errors"

var (
	// ErrOllamaUnavailable means the model server could not be reached.
	ErrOllamaUnavailable = errors.New("model server unavailable")

	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput means the reply did not contain the expected JSON.
	ErrInvalidOutput = errors.New("invalid llm output format")

	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)

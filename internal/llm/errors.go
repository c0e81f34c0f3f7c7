package llm

import "errors"

var (
	// ErrUnavailable indicates the Ollama server is unreachable.
	ErrUnavailable = errors.New("llm server unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the LLM response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrCircuitOpen indicates recent calls kept failing and new calls are
	// rejected until the breaker timeout elapses.
	ErrCircuitOpen = errors.New("llm circuit open")

	// ErrDisabled indicates the LLM integration is turned off.
	ErrDisabled = errors.New("llm disabled")
)

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	// ResponseSchema, when set, is sent as Ollama's "format" so the model is
	// constrained to JSON matching the schema.
	ResponseSchema json.RawMessage
	Temperature    *float64 // nil uses task default
	MaxTokens      *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the Ollama server is reachable.
	Available(ctx context.Context) bool
}

// ollamaClient implements LLMClient using the Ollama HTTP API. Every
// Generate call, retries included, runs through one circuit breaker.
type ollamaClient struct {
	cfg      LLMConfig
	http     *http.Client
	observer Observer
	breaker  *gobreaker.CircuitBreaker[*ollamaResponse]
}

// NewOllamaClient creates an LLMClient that talks to an Ollama instance.
func NewOllamaClient(cfg LLMConfig, observer Observer, logger *zap.Logger) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	failures := cfg.BreakerFailures
	if failures == 0 {
		failures = DefaultConfig().BreakerFailures
	}

	settings := gobreaker.Settings{
		Name:        "ollama",
		MaxRequests: 1,
		Timeout:     time.Duration(cfg.BreakerTimeoutMs) * time.Millisecond,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &ollamaClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
		breaker:  gobreaker.NewCircuitBreaker[*ollamaResponse](settings),
	}
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model   string          `json:"model"`
	System  string          `json:"system,omitempty"`
	Prompt  string          `json:"prompt"`
	Format  json.RawMessage `json:"format,omitempty"`
	Stream  bool            `json:"stream"`
	Options ollamaOptions   `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// statusError is a non-200 reply. Only 5xx replies are retried.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ollama returned status %d: %s", e.code, e.body)
}

func (c *ollamaClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	body := ollamaRequest{
		Model:  c.cfg.Model,
		System: req.SystemPrompt,
		Prompt: req.UserPrompt,
		Format: req.ResponseSchema,
		Stream: false,
		Options: ollamaOptions{
			Temperature: temp,
			NumPredict:  maxTok,
		},
	}
	timeout := time.Duration(c.cfg.TaskTimeout(req.Task)) * time.Millisecond

	attempts := 0
	resp, err := c.breaker.Execute(func() (*ollamaResponse, error) {
		return c.generateWithRetry(ctx, body, timeout, &attempts)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = ErrCircuitOpen
	}

	latency := time.Since(start).Milliseconds()
	event := LLMCallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Attempts:  attempts,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	}
	c.observer.OnCallComplete(event)

	if err != nil {
		return nil, err
	}
	return &GenerateResponse{
		Text:      resp.Response,
		Model:     resp.Model,
		LatencyMs: latency,
	}, nil
}

// generateWithRetry makes up to 1+MaxRetries attempts, each bounded by
// timeout. It stops early when ctx itself is done or the server rejects the
// request with a 4xx.
func (c *ollamaClient) generateWithRetry(ctx context.Context, body ollamaRequest, timeout time.Duration, attempts *int) (*ollamaResponse, error) {
	var lastErr error
	for i := 0; i < 1+c.cfg.MaxRetries; i++ {
		*attempts = i + 1

		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		resp, err := c.doRequest(attemptCtx, body)
		expired := attemptCtx.Err() != nil
		cancel()

		if err == nil {
			return resp, nil
		}
		if expired {
			err = fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}

	switch {
	case errors.Is(lastErr, ErrTimeout) || ctx.Err() != nil:
		return nil, ErrTimeout
	case isConnectionError(lastErr):
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
}

func (c *ollamaClient) doRequest(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &statusError{code: httpResp.StatusCode, body: string(respBody)}
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &resp, nil
}

func (c *ollamaClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := c.cfg.Endpoint + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError
	}
	return true
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrCircuitOpen):
		return "CIRCUIT_OPEN"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func testConfig(endpoint string) LLMConfig {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	return cfg
}

func okHandler(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.2", Response: text})
	}
}

func TestOllamaClient_Generate_Success(t *testing.T) {
	schema := json.RawMessage(`{"type":"object","required":["summary"]}`)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req ollamaRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3.2", req.Model)
		assert.False(t, req.Stream)
		assert.Equal(t, "system prompt", req.System)
		assert.Equal(t, "user prompt", req.Prompt)
		assert.JSONEq(t, string(schema), string(req.Format))
		assert.Equal(t, 2048, req.Options.NumPredict)

		okHandler(`{"summary":"ok"}`)(w, r)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{}, nil)
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:           TaskReport,
		SystemPrompt:   "system prompt",
		UserPrompt:     "user prompt",
		ResponseSchema: schema,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, resp.Text)
	assert.Equal(t, "llama3.2", resp.Model)
	assert.GreaterOrEqual(t, resp.LatencyMs, int64(0))
}

func TestOllamaClient_Generate_OmitsFormatWithoutSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, hasFormat := raw["format"]
		assert.False(t, hasFormat)
		okHandler("plain")(w, r)
	}))
	defer srv.Close()

	client := NewOllamaClient(testConfig(srv.URL), NoopObserver{}, nil)
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskReport, UserPrompt: "x"})
	require.NoError(t, err)
}

func TestOllamaClient_Generate_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskReport: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 50},
	}

	client := NewOllamaClient(cfg, NoopObserver{}, nil)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskReport,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestOllamaClient_Generate_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	client := NewOllamaClient(cfg, NoopObserver{}, nil)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskReport,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestOllamaClient_Generate_RetryOnServerError(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("internal error"))
			return
		}
		okHandler("ok")(w, r)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1

	var captured LLMCallEvent
	client := NewOllamaClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }}, nil)
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskReport,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
	assert.Equal(t, 2, captured.Attempts)
}

func TestOllamaClient_Generate_RetryAfterAttemptTimeout(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			time.Sleep(150 * time.Millisecond)
		}
		okHandler("ok")(w, r)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskReport: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 50},
	}

	client := NewOllamaClient(cfg, NoopObserver{}, nil)
	resp, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskReport,
		UserPrompt: "test",
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestOllamaClient_Generate_ClientErrorNotRetried(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("model not found"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 3

	client := NewOllamaClient(cfg, NoopObserver{}, nil)
	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskReport,
		UserPrompt: "test",
	})

	require.ErrorIs(t, err, ErrRetryExhausted)
	assert.Contains(t, err.Error(), "model not found")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestOllamaClient_CircuitOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0
	cfg.BreakerFailures = 2
	cfg.BreakerTimeoutMs = 60000

	core, logs := observer.New(zapcore.InfoLevel)
	var codes []string
	obs := &captureObserver{fn: func(e LLMCallEvent) { codes = append(codes, e.ErrorCode) }}
	client := NewOllamaClient(cfg, obs, zap.New(core))

	for i := 0; i < 2; i++ {
		_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskReport, UserPrompt: "x"})
		require.ErrorIs(t, err, ErrRetryExhausted)
	}

	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskReport, UserPrompt: "x"})
	require.ErrorIs(t, err, ErrCircuitOpen)

	assert.Equal(t, int32(2), hits.Load(), "open circuit must not reach the server")
	assert.Equal(t, []string{"RETRY_EXHAUSTED", "RETRY_EXHAUSTED", "CIRCUIT_OPEN"}, codes)

	changes := logs.FilterMessage("circuit breaker state changed").All()
	require.Len(t, changes, 1)
	assert.Equal(t, "open", changes[0].ContextMap()["to"])
}

func TestOllamaClient_CircuitRecoversAfterTimeout(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		okHandler("back")(w, r)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0
	cfg.BreakerFailures = 1
	cfg.BreakerTimeoutMs = 50

	client := NewOllamaClient(cfg, NoopObserver{}, nil)
	_, err := client.Generate(context.Background(), GenerateRequest{Task: TaskReport, UserPrompt: "x"})
	require.Error(t, err)

	failing.Store(false)
	_, err = client.Generate(context.Background(), GenerateRequest{Task: TaskReport, UserPrompt: "x"})
	require.ErrorIs(t, err, ErrCircuitOpen)

	time.Sleep(80 * time.Millisecond)
	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskReport, UserPrompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "back", resp.Text)
}

func TestOllamaClient_Available(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	assert.True(t, NewOllamaClient(testConfig(srv.URL), nil, nil).Available(context.Background()))
	assert.False(t, NewOllamaClient(testConfig("http://127.0.0.1:1"), nil, nil).Available(context.Background()))
}

func TestOllamaClient_ObserverTimeoutErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0
	cfg.Tasks = map[TaskType]TaskConfig{
		TaskReport: {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 50},
	}

	var captured LLMCallEvent
	client := NewOllamaClient(cfg, &captureObserver{fn: func(e LLMCallEvent) { captured = e }}, nil)

	_, err := client.Generate(context.Background(), GenerateRequest{
		Task:       TaskReport,
		UserPrompt: "test",
	})

	assert.ErrorIs(t, err, ErrTimeout)
	assert.False(t, captured.Success)
	assert.Equal(t, "TIMEOUT", captured.ErrorCode)
	assert.Equal(t, TaskReport, captured.Task)
}

func TestZapObserver_LogsFailuresAtWarn(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	obs := NewZapObserver(zap.New(core))

	obs.OnCallComplete(LLMCallEvent{Task: TaskReport, Model: "m", Success: true, Attempts: 1})
	obs.OnCallComplete(LLMCallEvent{Task: TaskReport, Model: "m", ErrorCode: "TIMEOUT", Attempts: 2})

	all := logs.All()
	require.Len(t, all, 2)
	assert.Equal(t, zapcore.InfoLevel, all[0].Level)
	assert.Equal(t, zapcore.WarnLevel, all[1].Level)
	assert.Equal(t, "TIMEOUT", all[1].ContextMap()["error_code"])
	assert.Equal(t, "llm_call", all[1].Message)
}

type captureObserver struct {
	fn func(LLMCallEvent)
}

func (o *captureObserver) OnCallComplete(e LLMCallEvent) { o.fn(e) }

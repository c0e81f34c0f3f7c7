package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/triage/internal/domain"
	"github.com/alexanderramin/triage/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP integration test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	return srv
}

func ollamaReply(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"model": "test-model", "response": text})
}

// TestReportWriter_WithHTTPTestServer runs the full path: httptest server,
// Ollama client, JSON extraction and evidence validation.
func TestReportWriter_WithHTTPTestServer(t *testing.T) {
	draft := ReportDraft{
		Summary:    "Dois projetos ativos; ERP01 exige atenção.",
		Highlights: []ReportItem{{ProjectRef: "p-site", Text: "Website saudável."}},
		Risks:      []ReportItem{{ProjectRef: "ERP01", Text: "Prazo vencido."}},
	}

	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		format, ok := body["format"].(map[string]any)
		require.True(t, ok, "schema must be sent as format")
		assert.Equal(t, "object", format["type"])

		ollamaReply(w, "```json\n"+draftJSON(draft)+"\n```")
	})
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	writer := NewReportWriter(llm.NewOllamaClient(cfg, llm.NoopObserver{}, nil))

	out, err := writer.Write(context.Background(), BuildPortfolioTrace(sampleBoard(), ScopePortfolio))
	require.NoError(t, err)
	assert.Equal(t, domain.ReportFromLLM, out.Source)
	assert.Equal(t, draft, out.Draft)
}

func TestReportWriter_WithHTTPTestServer_ServerErrorFallsBack(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	cfg.MaxRetries = 0
	writer := NewReportWriter(llm.NewOllamaClient(cfg, llm.NoopObserver{}, nil))

	out, err := writer.Write(context.Background(), BuildPortfolioTrace(sampleBoard(), ScopePortfolio))
	require.NoError(t, err)
	assert.Equal(t, domain.ReportFromDeterministic, out.Source)
	assert.Contains(t, out.FallbackReason, "retry attempts exhausted")
}

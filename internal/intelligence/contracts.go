package intelligence

import (
	"encoding/json"
	"errors"

	"github.com/alexanderramin/triage/internal/domain"
)

// ReportDraft is the structured narrative the LLM must return.
type ReportDraft struct {
	Summary    string       `json:"summary"`
	Highlights []ReportItem `json:"highlights"`
	Risks      []ReportItem `json:"risks"`
}

// ReportItem is one bullet of a report, bound to the project it talks about.
// An empty ProjectRef marks a portfolio-wide remark.
type ReportItem struct {
	ProjectRef string `json:"project_ref"`
	Text       string `json:"text"`
}

// WrittenReport is a draft plus where it came from.
type WrittenReport struct {
	Draft  ReportDraft
	Source domain.ReportSource
	// FallbackReason is set when the deterministic writer replaced the LLM.
	FallbackReason string
}

// Lines flattens items into display strings, prefixing the project ref.
func Lines(items []ReportItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.ProjectRef == "" {
			out = append(out, it.Text)
			continue
		}
		out = append(out, it.ProjectRef+": "+it.Text)
	}
	return out
}

// validateDraft is the schema validator handed to llm.ExtractJSON.
func validateDraft(d ReportDraft) error {
	if d.Summary == "" {
		return errors.New("summary is required")
	}
	for _, it := range append(append([]ReportItem{}, d.Highlights...), d.Risks...) {
		if it.Text == "" {
			return errors.New("report items need text")
		}
	}
	return nil
}

// reportResponseSchema constrains Ollama's output to a ReportDraft.
var reportResponseSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "summary": {"type": "string"},
    "highlights": {"type": "array", "items": {"$ref": "#/$defs/item"}},
    "risks": {"type": "array", "items": {"$ref": "#/$defs/item"}}
  },
  "required": ["summary", "highlights", "risks"],
  "$defs": {
    "item": {
      "type": "object",
      "properties": {
        "project_ref": {"type": "string"},
        "text": {"type": "string"}
      },
      "required": ["project_ref", "text"]
    }
  }
}`)

package intelligence

import (
	"github.com/alexanderramin/triage/internal/app"
)

// PortfolioTrace is a flattened, JSON-serializable view of the computed
// board. It is the only context the report writer hands to the LLM, so a
// narrative can never cite numbers the scoring core did not produce.
type PortfolioTrace struct {
	GeneratedOn string             `json:"generated_on"`
	Scope       string             `json:"scope"`
	Summary     TraceSummary       `json:"summary"`
	Projects    []ProjectTraceItem `json:"projects"`
}

type TraceSummary struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Final    int `json:"final"`
	Good     int `json:"good"`
	Warning  int `json:"warning"`
	Critical int `json:"critical"`
}

// ProjectTraceItem captures one board row. Ref is the identifier the LLM
// must cite when it mentions the project.
type ProjectTraceItem struct {
	Ref         string            `json:"ref"`
	Title       string            `json:"title"`
	Client      string            `json:"client,omitempty"`
	Status      string            `json:"status,omitempty"`
	IsFinal     bool              `json:"is_final"`
	Priority    string            `json:"priority,omitempty"`
	Progress    int               `json:"progress"`
	Deadline    *string           `json:"deadline,omitempty"`
	DaysLeft    *int              `json:"days_left,omitempty"`
	Criticality int               `json:"criticality"`
	Band        string            `json:"band"`
	Health      string            `json:"health"`
	Issues      []string          `json:"issues"`
	Factors     []FactorTraceItem `json:"factors"`
	OpenTasks   int               `json:"open_tasks"`
	Blocked     int               `json:"blocked_tasks"`
	Overdue     int               `json:"overdue_tasks"`
}

type FactorTraceItem struct {
	Code    string `json:"code"`
	Points  int    `json:"points"`
	Message string `json:"message"`
}

const (
	ScopePortfolio = "portfolio"
	ScopeProject   = "project"
)

// BuildPortfolioTrace converts a board into a trace, keeping the board's
// display order.
func BuildPortfolioTrace(board *app.BoardResponse, scope string) PortfolioTrace {
	trace := PortfolioTrace{
		GeneratedOn: board.Summary.GeneratedAt.Format("2006-01-02"),
		Scope:       scope,
		Summary: TraceSummary{
			Total:    board.Summary.CountsTotal,
			Active:   board.Summary.CountsActive,
			Final:    board.Summary.CountsFinal,
			Good:     board.Summary.CountsGood,
			Warning:  board.Summary.CountsWarning,
			Critical: board.Summary.CountsCritical,
		},
		Projects: make([]ProjectTraceItem, 0, len(board.Projects)),
	}

	for _, v := range board.Projects {
		item := ProjectTraceItem{
			Ref:         projectRef(v),
			Title:       v.Title,
			Client:      v.Client,
			Status:      v.StatusName,
			IsFinal:     v.IsFinal,
			Priority:    string(v.Priority),
			Progress:    v.Progress,
			Deadline:    v.Deadline,
			DaysLeft:    v.DaysLeft,
			Criticality: v.Criticality,
			Band:        string(v.Band),
			Health:      string(v.Health),
			Issues:      v.Issues,
			Factors:     make([]FactorTraceItem, 0, len(v.Factors)),
			OpenTasks:   v.Tasks.Pending,
			Blocked:     v.Tasks.Blocked,
			Overdue:     v.Tasks.Overdue,
		}
		for _, f := range v.Factors {
			item.Factors = append(item.Factors, FactorTraceItem{
				Code:    string(f.Code),
				Points:  f.Points,
				Message: f.Message,
			})
		}
		trace.Projects = append(trace.Projects, item)
	}
	return trace
}

func projectRef(v app.ProjectBoardView) string {
	if v.ShortID != "" {
		return v.ShortID
	}
	return v.ProjectID
}

// TraceKeys returns the project refs a report item may cite.
func (t PortfolioTrace) TraceKeys() map[string]bool {
	keys := make(map[string]bool, len(t.Projects))
	for _, p := range t.Projects {
		keys[p.Ref] = true
	}
	return keys
}

// Active returns the non-final projects in board order.
func (t PortfolioTrace) Active() []ProjectTraceItem {
	var out []ProjectTraceItem
	for _, p := range t.Projects {
		if !p.IsFinal {
			out = append(out, p)
		}
	}
	return out
}

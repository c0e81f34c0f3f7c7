package intelligence

import (
	"fmt"
	"strings"
)

// ValidateEvidenceBindings checks that every report item cites a project
// present in the trace. Empty refs are portfolio-wide remarks and allowed.
func ValidateEvidenceBindings(d ReportDraft, traceKeys map[string]bool) error {
	var invalid []string
	check := func(section string, items []ReportItem) {
		for i, it := range items {
			if it.ProjectRef != "" && !traceKeys[it.ProjectRef] {
				invalid = append(invalid, fmt.Sprintf("%s[%d]: unknown project_ref %q", section, i, it.ProjectRef))
			}
		}
	}
	check("highlights", d.Highlights)
	check("risks", d.Risks)

	if len(invalid) > 0 {
		return fmt.Errorf("invalid evidence bindings: %s", strings.Join(invalid, "; "))
	}
	return nil
}

package domain

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ProjectStatus is an entry of the project status taxonomy. Final statuses
// mark completed or archived projects.
type ProjectStatus struct {
	ID         string
	Name       string
	Phase      StatusPhase
	IsFinal    bool
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EffectivePhase returns the explicit phase if set, otherwise the phase whose
// key matches the folded display name. Unknown names yield PhaseCustom.
func (s *ProjectStatus) EffectivePhase() StatusPhase {
	if s == nil {
		return PhaseCustom
	}
	if s.Phase != PhaseCustom {
		return s.Phase
	}
	return PhaseFromName(s.Name)
}

// PhaseFromName maps a display name such as "Produção" to its phase.
func PhaseFromName(name string) StatusPhase {
	key := StatusPhase(foldName(name))
	for _, p := range KnownPhases {
		if p == key {
			return p
		}
	}
	return PhaseCustom
}

// IsFinalStatus reports whether s resolves to a final status. A nil status
// (unresolvable reference) is never final.
func IsFinalStatus(s *ProjectStatus) bool {
	return s != nil && s.IsFinal
}

// foldName lower-cases, trims and strips diacritics.
func foldName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		folded = strings.TrimSpace(s)
	}
	return strings.ToLower(folded)
}

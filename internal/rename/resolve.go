package rename

import (
	"github.com/vmunix/renamarr/internal/catalog"
	"github.com/vmunix/renamarr/internal/match"
)

// Resolve returns a revised plan with unresolved files assigned via the
// caller-supplied picks, keyed by source path. The input plan is not
// modified; files without a pick stay unresolved. Collision detection
// runs again over the combined set.
func (p *Planner) Resolve(plan *Plan, picks map[string]*catalog.Episode) *Plan {
	revised := make([]match.Result, len(plan.results))
	copy(revised, plan.results)

	for i, r := range revised {
		ep, ok := picks[r.File.Path]
		if !ok || ep == nil {
			continue
		}
		revised[i].Episode = ep
		revised[i].Confidence = match.ConfidenceExact
		revised[i].Alternatives = nil
	}

	return p.Plan(revised)
}

// Package rename plans and executes episode file renames.
package rename

import (
	"path/filepath"

	"github.com/vmunix/renamarr/internal/catalog"
	"github.com/vmunix/renamarr/internal/match"
	"github.com/vmunix/renamarr/pkg/epname"
)

// Status tracks the lifecycle of one rename operation.
type Status int

const (
	StatusPlanned Status = iota
	StatusApplied
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "applied"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "planned"
	}
}

// Operation is one planned rename. Source and Destination are full paths;
// files are renamed in place, so both share a directory.
type Operation struct {
	Source      string
	Destination string
	Episode     *catalog.Episode
	Status      Status
	Err         error
}

// Noop reports whether applying the operation would change nothing.
func (o Operation) Noop() bool { return o.Source == o.Destination }

// Unresolved is a file excluded from the executable plan, with the
// reason and any tied candidates for caller-driven resolution.
type Unresolved struct {
	File         epname.LocalFile
	Reason       error
	Alternatives []*catalog.Episode
}

// Plan is a conflict-free batch of rename operations plus the files
// that could not be planned.
type Plan struct {
	Operations []Operation
	Unresolved []Unresolved

	results []match.Result // kept for Resolve
}

// Noop reports whether every planned operation is a self-rename.
func (p *Plan) Noop() bool {
	for _, op := range p.Operations {
		if op.Status == StatusPlanned && !op.Noop() {
			return false
		}
	}
	return true
}

// Planner converts match results into rename operations for one show.
type Planner struct {
	show  string
	namer *epname.Namer
}

// NewPlanner creates a planner. A nil namer uses the default template.
func NewPlanner(showTitle string, namer *epname.Namer) *Planner {
	if namer == nil {
		namer = epname.NewNamer("")
	}
	return &Planner{show: showTitle, namer: namer}
}

// Plan builds a rename plan from match results. Only exact and fuzzy
// matches become operations; ambiguous and unmatched files land in
// Unresolved. When two sources target the same destination, both are
// excluded with ErrCollision rather than picking a winner.
func (p *Planner) Plan(results []match.Result) *Plan {
	plan := &Plan{results: results}

	type pending struct {
		op     Operation
		result match.Result
	}
	var ops []pending
	targets := make(map[string]int)

	for _, r := range results {
		switch r.Confidence {
		case match.ConfidenceExact, match.ConfidenceFuzzy:
			dest := filepath.Join(
				filepath.Dir(r.File.Path),
				p.namer.EpisodeName(p.show, r.Episode.Season, r.Episode.Number, r.Episode.Title, r.File.Ext),
			)
			ops = append(ops, pending{
				op:     Operation{Source: r.File.Path, Destination: dest, Episode: r.Episode},
				result: r,
			})
			targets[dest]++
		case match.ConfidenceAmbiguous:
			plan.Unresolved = append(plan.Unresolved, Unresolved{
				File: r.File, Reason: ErrAmbiguous, Alternatives: r.Alternatives,
			})
		default:
			plan.Unresolved = append(plan.Unresolved, Unresolved{File: r.File, Reason: ErrNoMatch})
		}
	}

	for _, pend := range ops {
		if targets[pend.op.Destination] > 1 {
			pend.op.Status = StatusSkipped
			pend.op.Err = ErrCollision
			plan.Operations = append(plan.Operations, pend.op)
			plan.Unresolved = append(plan.Unresolved, Unresolved{
				File: pend.result.File, Reason: ErrCollision,
			})
			continue
		}
		plan.Operations = append(plan.Operations, pend.op)
	}

	return plan
}

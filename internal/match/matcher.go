package match

import (
	"github.com/vmunix/renamarr/internal/catalog"
	"github.com/vmunix/renamarr/pkg/epname"
)

// Confidence classifies how certain an episode match is.
type Confidence int

const (
	ConfidenceNone Confidence = iota
	ConfidenceAmbiguous
	ConfidenceFuzzy
	ConfidenceExact
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidenceFuzzy:
		return "fuzzy"
	case ConfidenceAmbiguous:
		return "ambiguous"
	default:
		return "none"
	}
}

// Result pairs a local file with the episode it resolved to, if any.
// Alternatives carries the tied candidates of an ambiguous match,
// ranked best first.
type Result struct {
	File         epname.LocalFile
	Episode      *catalog.Episode
	Confidence   Confidence
	Alternatives []*catalog.Episode
}

// Config holds the tunable fuzzy-matching knobs.
type Config struct {
	// SimilarityThreshold is the minimum title similarity score for a
	// fuzzy match (0.0-1.0).
	SimilarityThreshold float64

	// AmbiguityMargin is the score distance within which multiple
	// candidates count as tied.
	AmbiguityMargin float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold: 0.75,
		AmbiguityMargin:     0.05,
	}
}

// Matcher resolves parsed local files against one show's episode index.
type Matcher struct {
	index *Index
	cfg   Config
}

// NewMatcher creates a matcher. Zero config fields use defaults.
func NewMatcher(index *Index, cfg Config) *Matcher {
	def := DefaultConfig()
	if cfg.SimilarityThreshold == 0 {
		cfg.SimilarityThreshold = def.SimilarityThreshold
	}
	if cfg.AmbiguityMargin == 0 {
		cfg.AmbiguityMargin = def.AmbiguityMargin
	}
	return &Matcher{index: index, cfg: cfg}
}

// Match resolves one file. Matching is total: every file yields exactly
// one Result, never an error.
func (m *Matcher) Match(f epname.LocalFile) Result {
	result := Result{File: f}

	if f.HasEpisodeInfo() {
		if ep, ok := m.index.ByKey(*f.Season, *f.Episode); ok {
			result.Episode = ep
			result.Confidence = ConfidenceExact
			return result
		}
		// Identifier miss falls through to title matching.
	} else if f.Season == nil && f.Episode != nil {
		// Absolute numbering resolves deterministically against the
		// airing order.
		if ep, ok := m.index.ByAbsolute(*f.Episode); ok {
			result.Episode = ep
			result.Confidence = ConfidenceExact
			return result
		}
	}

	return m.matchTitle(result)
}

func (m *Matcher) matchTitle(result Result) Result {
	candidates := m.index.ByTitle(result.File.Residual)

	above := candidates[:0:0]
	for _, c := range candidates {
		if c.Score >= m.cfg.SimilarityThreshold {
			above = append(above, c)
		}
	}

	if len(above) == 0 {
		result.Confidence = ConfidenceNone
		return result
	}

	leader := above[0]
	tied := []Candidate{leader}
	for _, c := range above[1:] {
		if leader.Score-c.Score <= m.cfg.AmbiguityMargin {
			tied = append(tied, c)
		}
	}

	if len(tied) == 1 {
		result.Episode = leader.Episode
		result.Confidence = ConfidenceFuzzy
		return result
	}

	result.Confidence = ConfidenceAmbiguous
	for _, c := range tied {
		result.Alternatives = append(result.Alternatives, c.Episode)
	}
	return result
}

// MatchAll resolves a batch of files, one Result per file in input order.
func (m *Matcher) MatchAll(files []epname.LocalFile) []Result {
	results := make([]Result, 0, len(files))
	for _, f := range files {
		results = append(results, m.Match(f))
	}
	return results
}

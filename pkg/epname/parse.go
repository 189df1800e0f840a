// Package epname parses episode identifiers out of local video file names
// and formats canonical episode file names.
package epname

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// LocalFile is the parsed view of one local video file.
// Season and Episode are nil when no recognized pattern matched.
type LocalFile struct {
	Path     string
	Name     string // base name including extension
	Ext      string // extension without the dot, may be empty
	Season   *int
	Episode  *int
	Residual string // leftover text, usually the show or episode title
}

// HasEpisodeInfo reports whether both a season and an episode number
// were recognized in the file name.
func (f LocalFile) HasEpisodeInfo() bool {
	return f.Season != nil && f.Episode != nil
}

// Recognized identifier patterns, tried in priority order.
// Input has dots and underscores already replaced by spaces.
var (
	// S01E02, s1e2, S01.E02, S01-E02
	seasonEpisodeRx = regexp.MustCompile(`(?i)\bS(\d{1,2})[ ._-]?E(\d{1,3})\b`)

	// 1x02, 01x02
	crossRx = regexp.MustCompile(`(?i)\b(\d{1,2})x(\d{2,3})\b`)

	// bare 102 / 0102 with fixed digit widths
	bareRx = regexp.MustCompile(`\b(\d{3,4})\b`)

	// absolute numbering fallback: "episode 12", "ep 12", "e12"
	absoluteRx = regexp.MustCompile(`(?i)\b(?:episode|ep?)[ ._-]?(\d{1,3})\b`)
)

// Parse extracts season/episode identifiers from a file path.
// It is pure and deterministic: identical names always parse identically.
// The first matching pattern wins; when nothing matches, the whole stem
// becomes Residual.
func Parse(path string) LocalFile {
	name := filepath.Base(path)
	stem, ext := splitExt(name)
	f := LocalFile{Path: path, Name: name, Ext: ext}

	cleaned := strings.NewReplacer(".", " ", "_", " ").Replace(stem)

	if m := seasonEpisodeRx.FindStringSubmatchIndex(cleaned); m != nil {
		f.Season = atoi(cleaned[m[2]:m[3]])
		f.Episode = atoi(cleaned[m[4]:m[5]])
		f.Residual = cleanResidual(cleaned[:m[0]])
		return f
	}

	if m := crossRx.FindStringSubmatchIndex(cleaned); m != nil {
		f.Season = atoi(cleaned[m[2]:m[3]])
		f.Episode = atoi(cleaned[m[4]:m[5]])
		f.Residual = cleanResidual(cleaned[:m[0]])
		return f
	}

	if m := findBare(cleaned); m != nil {
		f.Season = m.season
		f.Episode = m.episode
		f.Residual = cleanResidual(cleaned[:m.start])
		return f
	}

	if m := absoluteRx.FindStringSubmatchIndex(cleaned); m != nil {
		f.Episode = atoi(cleaned[m[2]:m[3]])
		f.Residual = cleanResidual(cleaned[:m[0]])
		return f
	}

	f.Residual = cleanResidual(cleaned)
	return f
}

type bareMatch struct {
	season  *int
	episode *int
	start   int
}

// findBare handles bare concatenated digits: 3 digits split 1+2, 4 digits
// split 2+2. Four-digit runs that look like years (1900-2099) are ignored.
func findBare(s string) *bareMatch {
	for _, m := range bareRx.FindAllStringSubmatchIndex(s, -1) {
		digits := s[m[2]:m[3]]
		if len(digits) == 4 {
			if digits[0] == '1' && digits[1] == '9' || digits[0] == '2' && digits[1] == '0' {
				continue // plausible year
			}
			return &bareMatch{season: atoi(digits[:2]), episode: atoi(digits[2:]), start: m[0]}
		}
		return &bareMatch{season: atoi(digits[:1]), episode: atoi(digits[1:]), start: m[0]}
	}
	return nil
}

// splitExt splits the extension off the last dot segment.
func splitExt(name string) (stem, ext string) {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx], name[idx+1:]
	}
	return name, ""
}

func cleanResidual(s string) string {
	s = strings.Trim(s, " -")
	return strings.Join(strings.Fields(s), " ")
}

func atoi(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

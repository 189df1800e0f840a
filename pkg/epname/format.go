package epname

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultTemplate is the canonical episode naming convention.
const DefaultTemplate = "{show} - S{season:02}E{episode:02} - {title}.{ext}"

// Namer renders episode file names from a naming template.
type Namer struct {
	template string
}

// NewNamer creates a Namer. An empty template uses DefaultTemplate.
func NewNamer(template string) *Namer {
	if template == "" {
		template = DefaultTemplate
	}
	return &Namer{template: template}
}

// EpisodeName generates the file name for an episode.
// Show and episode titles are sanitized for the filesystem.
func (n *Namer) EpisodeName(show string, season, episode int, title, ext string) string {
	vars := map[string]any{
		"show":    Sanitize(show),
		"season":  season,
		"episode": episode,
		"title":   Sanitize(title),
		"ext":     ext,
	}
	return applyTemplate(n.template, vars)
}

// formatPattern matches {name} or {name:02} style placeholders.
var formatPattern = regexp.MustCompile(`\{(\w+)(?::(\d+))?\}`)

// applyTemplate substitutes variables into a template string.
// Supports {name} for simple substitution and {name:02} for zero-padded integers.
func applyTemplate(template string, vars map[string]any) string {
	return formatPattern.ReplaceAllStringFunc(template, func(match string) string {
		parts := formatPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		val, ok := vars[name]
		if !ok {
			return match
		}

		if len(parts) >= 3 && parts[2] != "" {
			width, err := strconv.Atoi(parts[2])
			if err == nil {
				if v, ok := val.(int); ok {
					return fmt.Sprintf("%0*d", width, v)
				}
			}
		}

		return fmt.Sprintf("%v", val)
	})
}

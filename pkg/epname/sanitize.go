package epname

import (
	"regexp"
	"strings"
)

// illegalChars are characters not allowed in filenames on common filesystems.
var illegalChars = regexp.MustCompile(`[<>:"/\\|?*\x00]`)

// multiSpace matches multiple consecutive spaces.
var multiSpace = regexp.MustCompile(`\s+`)

// multiDot matches multiple consecutive dots.
var multiDot = regexp.MustCompile(`\.{2,}`)

// Sanitize removes or replaces characters that are unsafe for filenames.
// The substitution is deterministic: the same input always yields the
// same output.
func Sanitize(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")

	// Path separators become spaces so titles can never escape a directory.
	name = strings.ReplaceAll(name, "/", " ")
	name = strings.ReplaceAll(name, "\\", " ")

	name = illegalChars.ReplaceAllString(name, " ")
	name = multiDot.ReplaceAllString(name, ".")
	name = multiSpace.ReplaceAllString(name, " ")

	return strings.Trim(name, " .")
}

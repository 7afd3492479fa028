package reports

import (
	"regexp"
	"strings"
)

var (
	// Characters invalid in filenames on most filesystems
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	// Whitespace characters to normalize
	whitespaceChars = regexp.MustCompile(`[\r\n\t]`)
	// Multiple spaces to collapse
	multipleSpaces = regexp.MustCompile(`\s+`)
)

// sanitizeFilename strips path separators and other characters that are
// invalid in filenames, so a username can never point a download outside
// its directory or break the Content-Disposition header.
func sanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = whitespaceChars.ReplaceAllString(name, " ")
	name = multipleSpaces.ReplaceAllString(name, " ")
	name = strings.TrimSpace(name)

	// A name of dots would still resolve to a directory
	if strings.Trim(name, ".") == "" {
		return ""
	}
	if len(name) > 200 {
		name = strings.TrimSpace(name[:200])
	}
	return name
}

package parser

import (
	"regexp"
	"strings"

	"github.com/Harshhrajj/Logfile-analyzer/internal/config"
)

var ipRegexp = regexp.MustCompile(config.IPPattern)

// ExtractIP returns the first IPv4-shaped token in a line. At most one
// address is taken per line; the boolean is false when none is found.
func ExtractIP(line string) (string, bool) {
	match := ipRegexp.FindString(line)
	if match == "" {
		return "", false
	}
	return match, true
}

// Sanitize turns a raw line into text the analyzer accepts: invalid
// UTF-8 bytes are dropped rather than failing the line.
func Sanitize(line string) string {
	return strings.ToValidUTF8(line, "")
}

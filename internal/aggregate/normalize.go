package aggregate

import (
	"regexp"
	"strings"
)

var (
	hexAddrRegex = regexp.MustCompile(`0x[0-9a-fA-F]+`)
	uuidRegex    = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
	numberRegex  = regexp.MustCompile(`\d+`)
)

const maxNormalizedLen = 100

// NormalizeMessage collapses the variable parts of a message so similar
// messages group under one template key. Opt-in: raw-string keying is the
// default because templating changes report semantics.
func NormalizeMessage(msg string) string {
	msg = hexAddrRegex.ReplaceAllString(msg, "<addr>")
	msg = uuidRegex.ReplaceAllString(msg, "<uuid>")
	msg = numberRegex.ReplaceAllString(msg, "<n>")

	if len(msg) > maxNormalizedLen {
		msg = msg[:maxNormalizedLen] + "..."
	}

	return strings.TrimSpace(msg)
}

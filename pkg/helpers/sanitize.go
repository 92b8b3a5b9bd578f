package helpers

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	`\`, "&#x5C;",
)

// SanitizeText escapes HTML-significant characters in user supplied note text.
func SanitizeText(s string) string {
	return htmlEscaper.Replace(s)
}

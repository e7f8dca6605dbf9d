package codegen

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	docPolicyOnce sync.Once
	docPolicy     *bluemonday.Policy
)

func documentationSanitizer() *bluemonday.Policy {
	docPolicyOnce.Do(func() {
		docPolicy = bluemonday.StrictPolicy()
	})
	return docPolicy
}

// cleanDocumentation strips markup from xs:documentation text and trims
// every line. Blank lines at either end are dropped.
func cleanDocumentation(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	text := html.UnescapeString(documentationSanitizer().Sanitize(trimmed))

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// escapeDoc escapes text for an XML documentation comment
func escapeDoc(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		case '\'':
			sb.WriteString("&apos;")
		case '&':
			sb.WriteString("&amp;")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

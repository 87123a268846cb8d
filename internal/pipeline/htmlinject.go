package pipeline

import (
	"strings"
)

// InjectHead inserts snippet before </head>.
// Tries </head> first, then after <body>, then prepends to the HTML.
func InjectHead(htmlContent, snippet string) string {
	if snippet == "" {
		return htmlContent
	}
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + snippet + "\n" + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		// Find the closing > of <body...>
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + snippet + htmlContent[insertPos:]
		}
	}

	return snippet + htmlContent
}

// InjectBeforeBodyEnd inserts snippet before the last </body>, or appends it.
func InjectBeforeBodyEnd(htmlContent, snippet string) string {
	if snippet == "" {
		return htmlContent
	}
	if idx := strings.LastIndex(strings.ToLower(htmlContent), "</body>"); idx != -1 {
		return htmlContent[:idx] + snippet + "\n" + htmlContent[idx:]
	}
	return htmlContent + snippet
}

// sanitizeScript escapes sequences that could close a <script> block early.
func sanitizeScript(js string) string {
	return strings.ReplaceAll(js, "</", `<\/`)
}

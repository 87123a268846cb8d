package publish

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// DisplayDateLayout formats the publish date on committed pages.
const DisplayDateLayout = "January 2, 2006"

// Page is the view of a committed post.
type Page struct {
	Title       string
	SiteName    string
	Description string
	Category    string
	Author      string
	Stylesheet  string
	Date        string
	Paragraphs  []string
}

// PageRenderer renders standalone post documents.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer parses the post template.
func NewPageRenderer(tmplContent string) (*PageRenderer, error) {
	tmpl, err := template.New("github-post").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing post template: %w", err)
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// Render executes the template with p.
func (r *PageRenderer) Render(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("rendering post page: %w", err)
	}
	return buf.Bytes(), nil
}

// Paragraphs splits content into one paragraph per non-blank line.
func Paragraphs(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// FormatDate formats t for a committed page.
func FormatDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "paragraph and emphasis",
			input:        "Send invoices **on time**.",
			wantContains: []string{"<p>Send invoices <strong>on time</strong>.</p>"},
			wantExcludes: []string{"<html", "<body"},
		},
		{
			name:         "heading gets an id",
			input:        "## Net 30 Terms",
			wantContains: []string{`<h2 id="net-30-terms">Net 30 Terms</h2>`},
		},
		{
			name:         "gfm table",
			input:        "| Item | Price |\n|---|---|\n| Design | $100 |",
			wantContains: []string{"<table>", "<td>Design</td>"},
		},
		{
			name:         "highlight becomes mark",
			input:        "Pay ==within 30 days== please.",
			wantContains: []string{"<mark>within 30 days</mark>"},
			wantExcludes: []string{"==", MarkStartPlaceholder},
		},
		{
			name:         "raw html is omitted",
			input:        "before\n\n<script>alert(1)</script>\n\nafter",
			wantExcludes: []string{"<script>"},
			wantContains: []string{"<p>before</p>", "<p>after</p>"},
		},
		{
			name:         "crlf line endings",
			input:        "line one\r\nline two\r\n\r\n\r\n\r\nnext",
			wantContains: []string{"<p>line one\nline two</p>", "<p>next</p>"},
		},
		{
			name:         "fenced code uses highlight classes",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{`class="chroma"`},
		},
	}

	converter := NewGoldmarkConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := converter.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() = %q, want it to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

func TestCommonMarkPreprocessor(t *testing.T) {
	t.Parallel()

	p := &CommonMarkPreprocessor{}
	got := p.PreprocessMarkdown(context.Background(), "a\r\n\r\n\r\n\r\nb ==c==\rd")
	want := "a\n\nb " + MarkStartPlaceholder + "c" + MarkEndPlaceholder + "\nd"
	if got != want {
		t.Errorf("PreprocessMarkdown() = %q, want %q", got, want)
	}
}

package pipeline

import (
	"strings"
	"testing"
)

func TestRewriteRootRelative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative link",
			html:         `<p><a href="pricing.html">pricing</a></p>`,
			wantContains: []string{`href="/pricing.html"`},
		},
		{
			name:         "dot slash image",
			html:         `<img src="./images/invoice.png"/>`,
			wantContains: []string{`src="/images/invoice.png"`},
		},
		{
			name:         "parent segments cannot climb above root",
			html:         `<a href="../../etc/passwd">x</a>`,
			wantContains: []string{`href="/etc/passwd"`},
			wantExcludes: []string{".."},
		},
		{
			name:         "query and fragment kept",
			html:         `<a href="articles.html?tag=tax#top">x</a>`,
			wantContains: []string{`href="/articles.html?tag=tax#top"`},
		},
		{
			name:         "other attributes untouched",
			html:         `<a class="btn" title="t" href="a.html">x</a>`,
			wantContains: []string{`class="btn"`, `title="t"`, `href="/a.html"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRootRelative(tt.html)
			if err != nil {
				t.Fatalf("RewriteRootRelative() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRootRelative() = %q, want it to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("RewriteRootRelative() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestRewriteRootRelative_Unchanged(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<p>No links at all &amp; an entity</p>`,
		`<a href="/already/rooted.html">x</a>`,
		`<a href="https://example.com/a">x</a>`,
		`<a href="//cdn.example.com/x.js">x</a>`,
		`<a href="mailto:billing@example.com">mail</a>`,
		`<a href="#section">jump</a>`,
		`<a href="?page=2">next</a>`,
		`<img src="data:image/png;base64,AAAA">`,
		`<a>no href</a>`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRootRelative(input)
			if err != nil {
				t.Fatalf("RewriteRootRelative() unexpected error: %v", err)
			}
			if got != input {
				t.Errorf("RewriteRootRelative(%q) = %q, want input unchanged", input, got)
			}
		})
	}
}

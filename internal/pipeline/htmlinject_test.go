package pipeline

import "testing"

func TestSanitizeScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"no escape needed", "var a = 1 < 2;", "var a = 1 < 2;"},
		{"escapes script close", "'</script>'", `'<\/script>'`},
		{"multiple occurrences", "</a></b>", `<\/a><\/b>`},
		{"case variation", "</SCRIPT>", `<\/SCRIPT>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeScript(tt.input); got != tt.want {
				t.Errorf("sanitizeScript(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInjectHead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		snippet string
		want    string
	}{
		{
			name:    "before head close",
			html:    "<html><head><title>x</title></head><body></body></html>",
			snippet: `<link rel="canonical" href="/">`,
			want:    "<html><head><title>x</title><link rel=\"canonical\" href=\"/\">\n</head><body></body></html>",
		},
		{
			name:    "uppercase head",
			html:    "<HEAD></HEAD>",
			snippet: "<meta>",
			want:    "<HEAD><meta>\n</HEAD>",
		},
		{
			name:    "no head falls back to body",
			html:    `<body class="x"><p>a</p></body>`,
			snippet: "<meta>",
			want:    `<body class="x"><meta><p>a</p></body>`,
		},
		{
			name:    "bare fragment is prepended",
			html:    "<p>a</p>",
			snippet: "<meta>",
			want:    "<meta><p>a</p>",
		},
		{
			name:    "empty snippet is a no-op",
			html:    "<head></head>",
			snippet: "",
			want:    "<head></head>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := InjectHead(tt.html, tt.snippet); got != tt.want {
				t.Errorf("InjectHead() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInjectBeforeBodyEnd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		snippet string
		want    string
	}{
		{
			name:    "before last body close",
			html:    "<body><pre></body></pre></body>",
			snippet: "<script></script>",
			want:    "<body><pre></body></pre><script></script>\n</body>",
		},
		{
			name:    "appends without body",
			html:    "<p>a</p>",
			snippet: "<script></script>",
			want:    "<p>a</p><script></script>",
		},
		{
			name:    "empty snippet is a no-op",
			html:    "<body></body>",
			want:    "<body></body>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := InjectBeforeBodyEnd(tt.html, tt.snippet); got != tt.want {
				t.Errorf("InjectBeforeBodyEnd() = %q, want %q", got, tt.want)
			}
		})
	}
}

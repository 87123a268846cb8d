package main

// Notes:
// - We test that required content strings are present in the output, not
//   exact formatting.

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printUsage(&buf)

	for _, s := range []string{"Usage: sitegen", "Commands:", "build", "serve", "doctor", "version", "help"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("printUsage output should contain %q", s)
		}
	}
}

func TestCommandUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		print func(*bytes.Buffer)
		want  []string
	}{
		{"build", func(b *bytes.Buffer) { printBuildUsage(b) }, []string{"--articles", "--public", "--url-strategy", "--json", "SITEGEN_ARTICLES"}},
		{"serve", func(b *bytes.Buffer) { printServeUsage(b) }, []string{"--addr", "DATABASE_URL", "SITEGEN_BUILD_TOKEN"}},
		{"doctor", func(b *bytes.Buffer) { printDoctorUsage(b) }, []string{"--config", "--json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.print(&buf)
			for _, s := range tt.want {
				if !strings.Contains(buf.String(), s) {
					t.Errorf("%s usage should contain %q", tt.name, s)
				}
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args       []string
		wantStdout string
		wantStderr string
	}{
		{nil, "Commands:", ""},
		{[]string{"serve"}, "Usage: sitegen serve", ""},
		{[]string{"doctor"}, "Usage: sitegen doctor", ""},
		{[]string{"version"}, "Usage: sitegen version", ""},
		{[]string{"help"}, "Usage: sitegen help", ""},
		{[]string{"deploy"}, "", "Unknown command: deploy"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			runHelp(tt.args, env)
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr, tt.wantStderr)
			}
		})
	}
}

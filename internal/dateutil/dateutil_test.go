package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{name: "default display format", format: DefaultDisplayFormat, want: "1/2/2006"},
		{name: "iso tokens", format: "YYYY-MM-DD", want: "2006-01-02"},
		{name: "long month", format: "MMMM D, YYYY", want: "January 2, 2006"},
		{name: "preset is case-insensitive", format: "ISO", want: "2006-01-02"},
		{name: "bracket literal", format: "[Day] D", want: "Day 2"},
		{name: "empty format", format: "", wantErr: ErrInvalidDateFormat},
		{name: "unclosed bracket", format: "[oops", wantErr: ErrInvalidDateFormat},
		{
			name:    "too long",
			format:  "YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD YYYY-MM-DD",
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDateFormat(%q) error = %v, want %v", tt.format, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		wantOK bool
		want   string
	}{
		{input: "2024-01-01", wantOK: true, want: "2024-01-01"},
		{input: "2024-02-01T10:30:00Z", wantOK: true, want: "2024-02-01"},
		{input: "2024-02-01T10:30:00.123456+00:00", wantOK: true, want: "2024-02-01"},
		{input: "2024/03/05", wantOK: true, want: "2024-03-05"},
		{input: "March 5, 2024", wantOK: true, want: "2024-03-05"},
		{input: "  2024-01-01  ", wantOK: true, want: "2024-01-01"},
		{input: "", wantOK: false},
		{input: "not a date", wantOK: false},
		{input: "2024-13-45", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, ok := Parse(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && DateOnly(got) != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, DateOnly(got), tt.want)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	layout, err := ParseDateFormat(DefaultDisplayFormat)
	if err != nil {
		t.Fatal(err)
	}
	if got := Display("2024-01-05", layout, "—"); got != "1/5/2024" {
		t.Errorf("Display() = %q, want %q", got, "1/5/2024")
	}
	if got := Display("garbage", layout, "—"); got != "—" {
		t.Errorf("Display() = %q, want placeholder", got)
	}
}

func TestDateOnly_UsesUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+9", 9*60*60)
	ts := time.Date(2024, 6, 1, 3, 0, 0, 0, loc)
	if got := DateOnly(ts); got != "2024-05-31" {
		t.Errorf("DateOnly() = %q, want %q", got, "2024-05-31")
	}
}

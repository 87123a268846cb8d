package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/invoicekit/sitegen/internal/yamlutil"
)

type siteSection struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"baseURL"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{
			name: "valid YAML",
			data: []byte("name: Free Online Invoice\nbaseURL: https://example.com"),
			dest: &siteSection{},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &siteSection{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() unexpected error: %v", err)
			}
			got := tt.dest.(*siteSection)
			if got.Name != "Free Online Invoice" {
				t.Errorf("Name = %q, want %q", got.Name, "Free Online Invoice")
			}
		})
	}
}

func TestUnmarshalStrict_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	var s siteSection
	err := yamlutil.UnmarshalStrict([]byte("name: x\nunknown: y"), &s)
	if err == nil {
		t.Fatal("UnmarshalStrict() expected error for unknown field")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error %q should carry the yamlutil prefix", err)
	}
}

func TestUnmarshal_InputTooLarge(t *testing.T) {
	// Not parallel: mutates MaxInputSize.
	orig := yamlutil.MaxInputSize
	yamlutil.MaxInputSize = 8
	defer func() { yamlutil.MaxInputSize = orig }()

	var s siteSection
	err := yamlutil.Unmarshal([]byte("name: too long for the limit"), &s)
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("Unmarshal() error = %v, want ErrInputTooLarge", err)
	}
}

func TestUnmarshalDocument(t *testing.T) {
	t.Parallel()

	doc, err := yamlutil.UnmarshalDocument([]byte("articles:\n  - title: A\n    tags: a, b\n"))
	if err != nil {
		t.Fatalf("UnmarshalDocument() unexpected error: %v", err)
	}
	list, ok := doc["articles"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("articles = %#v, want one record", doc["articles"])
	}
	rec, ok := list[0].(map[string]any)
	if !ok {
		t.Fatalf("record type = %T, want map", list[0])
	}
	if rec["tags"] != "a, b" {
		t.Errorf("tags = %v, want raw string", rec["tags"])
	}
}

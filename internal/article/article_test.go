package article

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World", "hello-world"},
		{"punctuation runs collapse", "Invoices: Tips & Tricks!!", "invoices-tips-tricks"},
		{"leading and trailing symbols", "  --Net 30 Terms--  ", "net-30-terms"},
		{"non-ascii dropped", "Café Invoices", "caf-invoices"},
		{"only symbols", "¿¡!", ""},
		{"truncated without trailing hyphen", strings.Repeat("abcd ", 20), "abcd-abcd-abcd-abcd-abcd-abcd-abcd-abcd-abcd-abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Slugify(tt.title)
			if got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
			if len(got) > MaxSlugLength {
				t.Errorf("len(Slugify(%q)) = %d, want <= %d", tt.title, len(got), MaxSlugLength)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"nil", nil, nil},
		{"comma string", "a, b ,a,,c", []string{"a", "b", "c"}},
		{"string list", []string{" x ", "y", "x"}, []string{"x", "y"}},
		{"any list", []any{"tax", nil, 2024, "tax"}, []string{"tax", "2024"}},
		{"blank string", "  , ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromRecord(t *testing.T) {
	t.Parallel()

	d := DefaultDefaults()

	t.Run("applies defaults and derives slug", func(t *testing.T) {
		t.Parallel()

		a, err := FromRecord(map[string]any{
			"title":   "Late Payment Fees",
			"content": "Body",
		}, d)
		if err != nil {
			t.Fatalf("FromRecord() unexpected error: %v", err)
		}
		if a.Slug != "late-payment-fees" {
			t.Errorf("Slug = %q, want %q", a.Slug, "late-payment-fees")
		}
		if a.Author != d.Author {
			t.Errorf("Author = %q, want %q", a.Author, d.Author)
		}
		if a.Category != "business" {
			t.Errorf("Category = %q, want %q", a.Category, "business")
		}
		if !reflect.DeepEqual(a.Tags, []string{"invoice", "business"}) {
			t.Errorf("Tags = %v, want default tags", a.Tags)
		}
	})

	t.Run("keeps explicit fields", func(t *testing.T) {
		t.Parallel()

		a, err := FromRecord(map[string]any{
			"id":           float64(7),
			"slug":         "custom",
			"title":        "T",
			"content":      "C",
			"author":       "Ann",
			"category":     "tax",
			"tags":         "vat, tax",
			"published_at": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			"featured":     "true",
		}, d)
		if err != nil {
			t.Fatalf("FromRecord() unexpected error: %v", err)
		}
		if a.ID != "7" || a.Slug != "custom" || a.Author != "Ann" || a.Category != "tax" {
			t.Errorf("FromRecord() = %+v, explicit fields not kept", a)
		}
		if a.PublishedAt != "2024-03-01" {
			t.Errorf("PublishedAt = %q, want %q", a.PublishedAt, "2024-03-01")
		}
		if !reflect.DeepEqual(a.Tags, []string{"vat", "tax"}) {
			t.Errorf("Tags = %v, want [vat tax]", a.Tags)
		}
		if !a.Featured {
			t.Error("Featured = false, want true")
		}
	})

	t.Run("missing title and content", func(t *testing.T) {
		t.Parallel()

		_, err := FromRecord(map[string]any{"title": "  "}, d)
		if !errors.Is(err, ErrInvalidArticle) {
			t.Fatalf("error = %v, want ErrInvalidArticle", err)
		}
		if !strings.Contains(err.Error(), "title, content") {
			t.Errorf("error %q should name both fields", err)
		}
	})

	t.Run("unsafe slug", func(t *testing.T) {
		t.Parallel()

		_, err := FromRecord(map[string]any{"title": "T", "content": "C", "slug": "../etc"}, d)
		if !errors.Is(err, ErrInvalidArticle) {
			t.Errorf("error = %v, want ErrInvalidArticle", err)
		}
	})

	t.Run("fallback slug from id", func(t *testing.T) {
		t.Parallel()

		a, err := FromRecord(map[string]any{"id": "42", "title": "¿?", "content": "C"}, d)
		if err != nil {
			t.Fatal(err)
		}
		if a.Slug != "article-42" {
			t.Errorf("Slug = %q, want %q", a.Slug, "article-42")
		}
	})
}

func TestHasMeta(t *testing.T) {
	t.Parallel()

	if (Article{MetaTitle: "x"}).HasMeta() {
		t.Error("HasMeta() = true with only a title, want false")
	}
	if !(Article{MetaTitle: "x", MetaDescription: "y"}).HasMeta() {
		t.Error("HasMeta() = false with both fields, want true")
	}
}

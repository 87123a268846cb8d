package article

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseTags canonicalises a tags value that may be a comma-joined string
// or a list. Values are trimmed, empties dropped, duplicates removed with
// first-occurrence order kept.
func ParseTags(v any) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		raw = strings.Split(t, ",")
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			if item == nil {
				continue
			}
			raw = append(raw, fmt.Sprint(item))
		}
	default:
		raw = []string{fmt.Sprint(t)}
	}

	seen := make(map[string]bool, len(raw))
	tags := make([]string, 0, len(raw))
	for _, tag := range raw {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// FromRecord converts one decoded record into an Article, applying defaults
// for absent optional fields. Returns ErrInvalidArticle when title or content
// is blank or an explicit slug is unsafe.
func FromRecord(rec map[string]any, d Defaults) (Article, error) {
	a := Article{
		ID:              stringField(rec["id"]),
		Slug:            strings.TrimSpace(stringField(rec["slug"])),
		Title:           strings.TrimSpace(stringField(rec["title"])),
		Content:         stringField(rec["content"]),
		Description:     stringField(rec["description"]),
		Author:          strings.TrimSpace(stringField(rec["author"])),
		Category:        strings.TrimSpace(stringField(rec["category"])),
		Tags:            ParseTags(rec["tags"]),
		PublishedAt:     strings.TrimSpace(stringField(rec["published_at"])),
		CreatedAt:       strings.TrimSpace(stringField(rec["created_at"])),
		UpdatedAt:       strings.TrimSpace(stringField(rec["updated_at"])),
		MetaTitle:       stringField(rec["meta_title"]),
		MetaDescription: stringField(rec["meta_description"]),
		ReadingTime:     stringField(rec["reading_time"]),
		Featured:        boolField(rec["featured"]),
	}

	var missing []string
	if a.Title == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(a.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return Article{}, fmt.Errorf("%w: missing %s", ErrInvalidArticle, strings.Join(missing, ", "))
	}

	if a.Slug == "" {
		a.Slug = Slugify(a.Title)
		if a.Slug == "" {
			a.Slug = fallbackSlug(a.ID)
		}
	} else if !ValidSlug(a.Slug) {
		return Article{}, fmt.Errorf("%w: unsafe slug %q", ErrInvalidArticle, a.Slug)
	}

	if a.Author == "" {
		a.Author = d.Author
	}
	if a.Category == "" {
		a.Category = d.Category
	}
	if len(a.Tags) == 0 && len(d.Tags) > 0 {
		a.Tags = append([]string(nil), d.Tags...)
	}
	return a, nil
}

// fallbackSlug names articles whose titles contain no ASCII alphanumerics.
func fallbackSlug(id string) string {
	if s := Slugify(id); s != "" {
		return "article-" + s
	}
	return "article"
}

func stringField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case time.Time:
		// YAML decoders may resolve unquoted dates to timestamps.
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}

func boolField(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	case float64:
		return t != 0
	case int:
		return t != 0
	case uint64:
		return t != 0
	default:
		return false
	}
}

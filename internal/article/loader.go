package article

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bcicen/jstream"

	"github.com/invoicekit/sitegen/internal/yamlutil"
)

// Loader reads an article collection from a structured file.
type Loader struct {
	// CollectionKey names the top-level key holding the records.
	CollectionKey string
	Defaults      Defaults
}

// NewLoader creates a Loader with the default collection key and placeholders.
func NewLoader() *Loader {
	return &Loader{
		CollectionKey: DefaultCollectionKey,
		Defaults:      DefaultDefaults(),
	}
}

// LoadFile reads the collection at path. The format is chosen by extension:
// .json streams records, .yaml/.yml decode the whole document.
func (l *Loader) LoadFile(path string) ([]Article, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json", ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExt, ext)
	}

	f, err := os.Open(path) // #nosec G304 -- path is operator-provided configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadArticles, err)
	}
	defer func() { _ = f.Close() }()

	if ext == ".json" {
		return l.LoadJSON(f)
	}
	return l.LoadYAML(f)
}

// LoadJSON streams records from r. Accepts either an object whose
// CollectionKey holds an array of records, or a bare array of records.
func (l *Loader) LoadJSON(r io.Reader) ([]Article, error) {
	decoder := jstream.NewDecoder(r, 1).EmitKV()

	var records []any
	found := false
	for mv := range decoder.Stream() {
		switch v := mv.Value.(type) {
		case jstream.KV:
			if v.Key != l.collectionKey() {
				continue
			}
			list, ok := v.Value.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: %q is not a list", ErrParseArticles, v.Key)
			}
			found = true
			records = append(records, list...)
		default:
			// Bare top-level array: each element arrives at depth 1.
			found = true
			records = append(records, v)
		}
	}
	if err := decoder.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseArticles, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: missing %q key", ErrNoArticles, l.collectionKey())
	}
	return l.build(records)
}

// LoadYAML decodes a YAML document whose CollectionKey holds the records.
func (l *Loader) LoadYAML(r io.Reader) ([]Article, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadArticles, err)
	}
	doc, err := yamlutil.UnmarshalDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseArticles, err)
	}
	raw, ok := doc[l.collectionKey()]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q key", ErrNoArticles, l.collectionKey())
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a list", ErrParseArticles, l.collectionKey())
	}
	return l.build(list)
}

// build converts raw records and rejects duplicate slugs.
func (l *Loader) build(records []any) ([]Article, error) {
	if len(records) == 0 {
		return nil, ErrNoArticles
	}

	articles := make([]Article, 0, len(records))
	firstIndex := make(map[string]int, len(records))
	for i, raw := range records {
		rec, ok := toRecord(raw)
		if !ok {
			return nil, fmt.Errorf("%w: record %d is not an object", ErrInvalidArticle, i)
		}
		a, err := FromRecord(rec, l.Defaults)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if prev, dup := firstIndex[a.Slug]; dup {
			return nil, fmt.Errorf("%w: %q (records %d and %d)", ErrDuplicateSlug, a.Slug, prev, i)
		}
		firstIndex[a.Slug] = i
		articles = append(articles, a)
	}
	return articles, nil
}

func (l *Loader) collectionKey() string {
	if l.CollectionKey == "" {
		return DefaultCollectionKey
	}
	return l.CollectionKey
}

// toRecord normalises decoder-specific map types to map[string]any.
func toRecord(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		rec := make(map[string]any, len(m))
		for k, val := range m {
			rec[fmt.Sprint(k)] = val
		}
		return rec, true
	default:
		return nil, false
	}
}

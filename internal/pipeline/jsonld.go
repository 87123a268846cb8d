package pipeline

import (
	"errors"
	"fmt"
	"html/template"

	"github.com/goccy/go-json"
)

// ErrStructuredData indicates a JSON-LD block could not be encoded.
var ErrStructuredData = errors.New("structured data encoding failed")

const schemaContext = "https://schema.org"

// BlogPosting is the schema.org block embedded in each article page.
type BlogPosting struct {
	Context          string   `json:"@context"`
	Type             string   `json:"@type"`
	Headline         string   `json:"headline"`
	Description      string   `json:"description"`
	DatePublished    string   `json:"datePublished"`
	DateModified     string   `json:"dateModified"`
	Author           Thing    `json:"author"`
	Image            string   `json:"image,omitempty"`
	MainEntityOfPage Thing    `json:"mainEntityOfPage"`
	ArticleSection   string   `json:"articleSection"`
	Keywords         []string `json:"keywords"`
}

// Thing is a typed schema.org reference.
type Thing struct {
	Type string `json:"@type"`
	Name string `json:"name,omitempty"`
	ID   string `json:"@id,omitempty"`
}

// ItemList is the schema.org listing block on the all-articles page.
type ItemList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	Name            string     `json:"name"`
	ItemListOrder   string     `json:"itemListOrder"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// ListItem is one ItemList entry.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	URL      string `json:"url"`
}

// NewItemList lists urls in order, positions starting at 1.
func NewItemList(urls []string) ItemList {
	items := make([]ListItem, len(urls))
	for i, u := range urls {
		items[i] = ListItem{Type: "ListItem", Position: i + 1, URL: u}
	}
	return ItemList{
		Context:         schemaContext,
		Type:            "ItemList",
		Name:            "Articles",
		ItemListOrder:   "Descending",
		ItemListElement: items,
	}
}

// MarshalJSONLD encodes v for a <script type="application/ld+json"> block.
// The encoder escapes <, > and & so the payload cannot close the script early.
func MarshalJSONLD(v any, indent bool) (template.JS, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStructuredData, err)
	}
	return template.JS(data), nil // #nosec G203 -- HTML-escaped JSON
}

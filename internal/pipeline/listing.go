package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/invoicekit/sitegen/internal/article"
)

// ErrCardRender indicates a listing card template failed to execute.
var ErrCardRender = errors.New("card template rendering failed")

var (
	inlineScriptPattern = regexp.MustCompile(`(?s)<script>.*?</script>`)
	ldJSONPattern       = regexp.MustCompile(`(?s)<script type="application/ld\+json">.*?</script>`)
)

// Card is the view of one article in a listing.
type Card struct {
	Title    string
	URL      string
	Excerpt  string
	Category string
	Date     string
	DateTime string
	Tags     []TagLink
	TagList  string // Comma-joined tags for the filter script
}

// ListingOptions configures a ListingRenderer.
type ListingOptions struct {
	Site                Site
	IndexCardTemplate   string
	ArchiveCardTemplate string
	FilterScript        string
	IndexContainer      string // Exact opening tag of the blog index container
	ArchiveContainer    string // Exact opening tag of the all-articles container
	NoResultsMarker     string // Start of the block kept after the archive container
	DataScript          string // Aggregate data file name, e.g. "post-data.js"
}

// ListingRenderer rewrites the blog index and the all-articles page.
type ListingRenderer struct {
	opts         ListingOptions
	indexCard    *template.Template
	archiveCard  *template.Template
	legacyLoader *regexp.Regexp
	dataTag      string
}

// NewListingRenderer parses the card templates.
func NewListingRenderer(opts ListingOptions) (*ListingRenderer, error) {
	indexCard, err := template.New("index-card").Parse(opts.IndexCardTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing index card template: %w", err)
	}
	archiveCard, err := template.New("archive-card").Parse(opts.ArchiveCardTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing archive card template: %w", err)
	}

	quoted := regexp.QuoteMeta(opts.DataScript)
	return &ListingRenderer{
		opts:        opts,
		indexCard:   indexCard,
		archiveCard: archiveCard,
		// An inline loader whose leading comment names the data file, followed by the data file tag.
		legacyLoader: regexp.MustCompile(`(?s)<script>\s*//[^\n]*` + quoted + `.*?</script>\s*<script src="` + quoted + `"></script>`),
		dataTag:      `<script src="` + opts.DataScript + `"></script>`,
	}, nil
}

// Cards builds the listing view of newestFirst.
func (r *ListingRenderer) Cards(newestFirst []article.Article) []Card {
	site := r.opts.Site
	cards := make([]Card, len(newestFirst))
	for i, a := range newestFirst {
		desc := a.Description
		if strings.TrimSpace(desc) == "" {
			desc = a.Content
		}
		dateTime := a.PublishedAt
		if a.DateFallback {
			dateTime = ""
		}
		cards[i] = Card{
			Title:    a.Title,
			URL:      site.URLs.Article(a.Slug),
			Excerpt:  Excerpt(desc, ExcerptLength),
			Category: a.Category,
			Date:     site.DisplayDate(a),
			DateTime: dateTime,
			Tags:     site.TagLinks(a),
			TagList:  strings.Join(a.Tags, ","),
		}
	}
	return cards
}

// RenderIndex fills the blog index container with cards and removes the
// legacy client-side loader. Returns ErrContainerNotFound when the page has
// no container.
func (r *ListingRenderer) RenderIndex(page string, newestFirst []article.Article) (string, error) {
	cards, err := r.renderCards(r.indexCard, r.Cards(newestFirst))
	if err != nil {
		return "", err
	}

	c, err := FindContainer(page, r.opts.IndexContainer)
	if err != nil {
		return "", err
	}
	out := page[:c.ContentStart] + cards + page[c.ContentEnd:]

	out = r.legacyLoader.ReplaceAllString(out, "")
	return strings.ReplaceAll(out, r.dataTag, ""), nil
}

// RenderArchive fills the all-articles container, installs the filter script
// and refreshes the ItemList and canonical link. Anything between the
// container and the no-results block is dropped so stale output from older
// builds cannot accumulate.
func (r *ListingRenderer) RenderArchive(page string, newestFirst []article.Article) (string, error) {
	cards, err := r.renderCards(r.archiveCard, r.Cards(newestFirst))
	if err != nil {
		return "", err
	}

	page = strings.ReplaceAll(page, r.dataTag, "")

	c, err := FindContainer(page, r.opts.ArchiveContainer)
	if err != nil {
		return "", err
	}
	suffix := page[c.End:]
	if r.opts.NoResultsMarker != "" {
		if idx := strings.Index(suffix, r.opts.NoResultsMarker); idx != -1 {
			suffix = suffix[idx:]
		}
	}
	head := page[:c.ContentStart] + cards + "</div>"
	suffix = r.installFilterScript(suffix)
	out := head + suffix

	itemList, err := r.itemListScript(newestFirst)
	if err != nil {
		return "", err
	}
	if loc := findItemList(out); loc != nil {
		out = out[:loc[0]] + itemList + out[loc[1]:]
	} else {
		out = InjectBeforeBodyEnd(out, itemList)
	}

	if !strings.Contains(out, `rel="canonical"`) {
		site := r.opts.Site
		canonical := `<link rel="canonical" href="` + template.HTMLEscapeString(site.URLs.Absolute(site.ArchiveURL())) + `">`
		out = InjectHead(out, canonical)
	}
	return out, nil
}

// installFilterScript replaces the first attribute-less inline script after
// the container with the filter script, or appends it before </body>.
func (r *ListingRenderer) installFilterScript(suffix string) string {
	if r.opts.FilterScript == "" {
		return suffix
	}
	script := "<script>\n" + sanitizeScript(strings.TrimRight(r.opts.FilterScript, "\n")) + "\n</script>"
	if loc := inlineScriptPattern.FindStringIndex(suffix); loc != nil {
		return suffix[:loc[0]] + script + suffix[loc[1]:]
	}
	return InjectBeforeBodyEnd(suffix, script)
}

func (r *ListingRenderer) itemListScript(newestFirst []article.Article) (string, error) {
	urls := make([]string, len(newestFirst))
	for i, a := range newestFirst {
		urls[i] = r.opts.Site.URLs.Canonical(a.Slug)
	}
	js, err := MarshalJSONLD(NewItemList(urls), true)
	if err != nil {
		return "", err
	}
	return "<script type=\"application/ld+json\">\n" + string(js) + "\n</script>", nil
}

// findItemList locates the first JSON-LD block describing an ItemList.
func findItemList(page string) []int {
	for _, loc := range ldJSONPattern.FindAllStringIndex(page, -1) {
		if strings.Contains(page[loc[0]:loc[1]], `"ItemList"`) {
			return loc
		}
	}
	return nil
}

func (r *ListingRenderer) renderCards(tmpl *template.Template, cards []Card) (string, error) {
	var buf bytes.Buffer
	for _, card := range cards {
		if err := tmpl.Execute(&buf, card); err != nil {
			return "", fmt.Errorf("%w: %v", ErrCardRender, err)
		}
	}
	return buf.String(), nil
}

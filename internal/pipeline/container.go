package pipeline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Sentinel errors for container location.
var (
	ErrContainerNotFound   = errors.New("container not found")
	ErrContainerUnbalanced = errors.New("container has no matching closing tag")
)

// Container is the location of a <div> element inside a page.
// Offsets are byte indices into the page.
type Container struct {
	Start        int // Opening tag start
	ContentStart int // Just after the opening tag
	ContentEnd   int // Start of the matching </div>
	End          int // Just after the matching </div>
}

// FindContainer locates the element opened by the exact openTag (for example
// `<div class="articles-grid">`) and its matching close. The close is found by
// tracking <div> nesting with a tokenizer, so nested cards, and markup that
// only looks like tags inside scripts or comments, do not end the scan early.
func FindContainer(page, openTag string) (Container, error) {
	start := strings.Index(page, openTag)
	if start == -1 {
		return Container{}, fmt.Errorf("%w: %s", ErrContainerNotFound, openTag)
	}
	c := Container{Start: start, ContentStart: start + len(openTag)}

	z := html.NewTokenizer(strings.NewReader(page[c.ContentStart:]))
	offset := c.ContentStart
	depth := 1
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return Container{}, fmt.Errorf("%w: %s", ErrContainerUnbalanced, openTag)
			}
			return Container{}, z.Err()
		}
		raw := len(z.Raw())

		name, _ := z.TagName()
		if string(name) == "div" {
			switch tt {
			case html.StartTagToken:
				depth++
			case html.EndTagToken:
				depth--
				if depth == 0 {
					c.ContentEnd = offset
					c.End = offset + raw
					return c, nil
				}
			}
		}
		offset += raw
	}
}

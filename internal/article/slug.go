package article

import (
	"strings"
)

// MaxSlugLength caps derived slugs.
const MaxSlugLength = 50

// Slugify derives a URL-safe slug from a title: lowercase, every run of
// characters outside [a-z0-9] collapsed to a single hyphen, leading and
// trailing hyphens removed, truncated to MaxSlugLength.
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	slug := b.String()
	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}

// ValidSlug rejects explicit slugs that would escape the output directory.
func ValidSlug(slug string) bool {
	if slug == "" || slug == "." || slug == ".." {
		return false
	}
	return !strings.ContainsAny(slug, "/\\\x00")
}

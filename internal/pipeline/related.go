package pipeline

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/invoicekit/sitegen/internal/article"
	"github.com/invoicekit/sitegen/internal/dateutil"
)

// DefaultRelatedLimit is the number of related articles shown per page.
const DefaultRelatedLimit = 3

// Related-article weights.
const (
	sharedTagWeight    = 2.0
	sameCategoryWeight = 1.0
	recencyPerMonth    = 0.01
	// maxRecencyBonus keeps recency below one category match.
	maxRecencyBonus = 0.99
)

const monthDuration = 30 * 24 * time.Hour

// SortTime resolves the instant an article sorts by: PublishedAt when it
// was supplied and parses, else CreatedAt when it parses, else the Unix epoch.
// Build-date fallbacks do not count as a supplied date.
func SortTime(a article.Article) time.Time {
	if !a.DateFallback {
		if t, ok := dateutil.Parse(a.PublishedAt); ok {
			return t
		}
	}
	if t, ok := dateutil.Parse(a.CreatedAt); ok {
		return t
	}
	return time.Unix(0, 0).UTC()
}

// SortNewestFirst returns a copy of articles ordered by SortTime descending.
// Ties keep input order.
func SortNewestFirst(articles []article.Article) []article.Article {
	sorted := append([]article.Article(nil), articles...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return SortTime(sorted[i]).After(SortTime(sorted[j]))
	})
	return sorted
}

// SortOldestFirst returns a copy of articles ordered by SortTime ascending.
// Ties keep input order.
func SortOldestFirst(articles []article.Article) []article.Article {
	sorted := append([]article.Article(nil), articles...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return SortTime(sorted[i]).Before(SortTime(sorted[j]))
	})
	return sorted
}

// RelatedScore rates how related candidate is to current: two points per
// shared tag (case-insensitive), one for a matching non-empty category, and a
// small bonus for each month candidate is newer than current.
func RelatedScore(current, candidate article.Article) float64 {
	tags := make(map[string]bool, len(current.Tags))
	for _, t := range current.Tags {
		tags[strings.ToLower(t)] = true
	}
	shared := 0
	for _, t := range candidate.Tags {
		key := strings.ToLower(t)
		if tags[key] {
			shared++
			delete(tags, key)
		}
	}

	score := sharedTagWeight * float64(shared)
	if current.Category != "" && current.Category == candidate.Category {
		score += sameCategoryWeight
	}

	months := SortTime(candidate).Sub(SortTime(current)).Hours() / monthDuration.Hours()
	score += math.Min(maxRecencyBonus, recencyPerMonth*math.Max(0, months))
	return score
}

// RelatedArticles picks up to limit articles from newestFirst, excluding
// current, by descending RelatedScore. Equal scores keep the newest-first order.
func RelatedArticles(current article.Article, newestFirst []article.Article, limit int) []article.Article {
	if limit <= 0 {
		return nil
	}

	type scored struct {
		a     article.Article
		score float64
	}
	candidates := make([]scored, 0, len(newestFirst))
	for _, a := range newestFirst {
		if a.Slug == current.Slug {
			continue
		}
		candidates = append(candidates, scored{a: a, score: RelatedScore(current, a)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	related := make([]article.Article, len(candidates))
	for i, c := range candidates {
		related[i] = c.a
	}
	return related
}

// Neighbours holds the articles published immediately before and after one article.
type Neighbours struct {
	Prev *article.Article
	Next *article.Article
}

// NeighbourIndex maps each slug to its neighbours in oldest-first order.
func NeighbourIndex(articles []article.Article) map[string]Neighbours {
	asc := SortOldestFirst(articles)
	index := make(map[string]Neighbours, len(asc))
	for i := range asc {
		var n Neighbours
		if i > 0 {
			n.Prev = &asc[i-1]
		}
		if i < len(asc)-1 {
			n.Next = &asc[i+1]
		}
		index[asc[i].Slug] = n
	}
	return index
}

// Navigation is the precomputed cross-linking for one article.
type Navigation struct {
	Related []article.Article
	Neighbours
}

// BuildNavigation computes related articles and prev/next neighbours for
// every article once, so every renderer links the same pages.
func BuildNavigation(articles []article.Article, relatedLimit int) map[string]Navigation {
	newestFirst := SortNewestFirst(articles)
	neighbours := NeighbourIndex(articles)
	nav := make(map[string]Navigation, len(articles))
	for _, a := range articles {
		nav[a.Slug] = Navigation{
			Related:    RelatedArticles(a, newestFirst, relatedLimit),
			Neighbours: neighbours[a.Slug],
		}
	}
	return nav
}

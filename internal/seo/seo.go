// Package seo scores submitted blog posts and derives their keywords and
// meta description.
package seo

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Scoring constants.
const (
	MaxScore          = 100
	WordsPerMinute    = 200 // Reading speed for ReadingTime
	MetaDescLength    = 160 // Runes kept from content for a derived meta description
	MaxKeywords       = 5
	minKeywordLength  = 4
	metaDescEllipsis  = "..."
	densityLowerBound = 1.0
	densityUpperBound = 3.0
)

var (
	whitespace  = regexp.MustCompile(`\s+`)
	nonWordChar = regexp.MustCompile(`[^\w\s]`)
	headingMark = regexp.MustCompile(`#+\s`)
)

// Metrics is the SEO assessment stored with a post.
type Metrics struct {
	Score          int     `json:"seo_score"`
	WordCount      int     `json:"word_count"`
	ReadingTime    int     `json:"reading_time"` // Minutes
	KeywordDensity float64 `json:"keyword_density"`
}

// MetaDescription returns meta when set, else the first MetaDescLength runes
// of content followed by "...".
func MetaDescription(meta, content string) string {
	if meta != "" {
		return meta
	}
	return truncateRunes(content, MetaDescLength) + metaDescEllipsis
}

// ExtractKeywords returns up to MaxKeywords of the most frequent words
// longer than three characters in title and content. Equal counts keep
// first-seen order.
func ExtractKeywords(title, content string) []string {
	text := nonWordChar.ReplaceAllString(strings.ToLower(title+" "+content), "")

	freq := make(map[string]int)
	var order []string
	for _, word := range whitespace.Split(text, -1) {
		if utf8.RuneCountInString(word) < minKeywordLength {
			continue
		}
		if freq[word] == 0 {
			order = append(order, word)
		}
		freq[word]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})
	if len(order) > MaxKeywords {
		order = order[:MaxKeywords]
	}
	if order == nil {
		return []string{}
	}
	return order
}

// KeywordDensity is the percentage of whitespace-separated words in text
// equal to keyword, case-insensitively.
func KeywordDensity(text, keyword string) float64 {
	if keyword == "" {
		return 0
	}
	words := whitespace.Split(strings.ToLower(text), -1)
	keyword = strings.ToLower(keyword)
	count := 0
	for _, w := range words {
		if w == keyword {
			count++
		}
	}
	return float64(count) / float64(len(words)) * 100
}

// Calculate scores a post out of MaxScore across title length, content
// length, meta description length, keyword density and structure.
func Calculate(title, content, metaDescription string) Metrics {
	wordCount := len(whitespace.Split(content, -1))
	m := Metrics{
		WordCount:   wordCount,
		ReadingTime: int(math.Ceil(float64(wordCount) / WordsPerMinute)),
	}

	score := band(utf8.RuneCountInString(title), []tier{{50, 60, 25}, {40, 70, 15}}, 5)
	score += wordCountScore(wordCount)
	score += band(utf8.RuneCountInString(metaDescription), []tier{{120, 160, 20}, {100, 180, 15}}, 5)

	var top string
	if keywords := ExtractKeywords(title, content); len(keywords) > 0 {
		top = keywords[0]
	}
	m.KeywordDensity = KeywordDensity(title+" "+content, top)
	if m.KeywordDensity >= densityLowerBound && m.KeywordDensity <= densityUpperBound {
		score += 15
	} else {
		score += 5
	}

	headings := len(headingMark.FindAllStringIndex(content, -1))
	paragraphs := len(strings.Split(content, "\n\n"))
	if headings >= 2 && paragraphs >= 5 {
		score += 10
	} else {
		score += 5
	}

	m.Score = min(score, MaxScore)
	return m
}

type tier struct {
	lo, hi, points int
}

// band returns the points of the first tier containing n, else fallback.
func band(n int, tiers []tier, fallback int) int {
	for _, t := range tiers {
		if n >= t.lo && n <= t.hi {
			return t.points
		}
	}
	return fallback
}

func wordCountScore(words int) int {
	switch {
	case words >= 1200:
		return 30
	case words >= 800:
		return 25
	case words >= 500:
		return 20
	case words >= 300:
		return 15
	default:
		return 5
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

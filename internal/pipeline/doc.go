// Package pipeline implements the stages of a blog build.
//
// Stages, in run order:
//   - Content normalisation: Markdown to HTML via Goldmark, excerpt and
//     publish-date fallbacks, root-relative link rewriting
//   - Listing pages: card rendering spliced into the blog index and the
//     filterable all-articles page, legacy script removal, ItemList and
//     canonical injection
//   - Article pages: one standalone document per article with related
//     articles, prev/next navigation and BlogPosting structured data
//   - Aggregate data file: every article keyed by slug plus a client-side
//     fallback renderer
//   - Sitemap and content report
//
// Stages are pure transformations over strings and article slices. Reading
// templates and writing files is left to the root sitegen package so each
// stage can be tested without touching the filesystem.
package pipeline

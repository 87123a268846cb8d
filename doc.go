// Package sitegen regenerates the static blog of an invoice site from a
// structured article collection.
//
// # Quick Start
//
// Create a builder from a site configuration and run it:
//
//	cfg, err := config.LoadConfig("site")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	b, err := sitegen.NewBuilder(sitegen.WithConfig(cfg))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := b.Build(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, line := range result.Report.Lines() {
//	    fmt.Println(line)
//	}
//
// # Build Pipeline
//
// One build runs these steps in a fixed order:
//
//  1. Load the article collection (JSON streamed, or YAML)
//  2. Normalise content: Markdown to HTML, excerpt and date fallbacks
//  3. Rewrite the cards of the blog index page
//  4. Rewrite the cards, filter script and ItemList of the all-articles page
//  5. Write one page per article with related articles and prev/next links
//  6. Write the aggregate data file read by the runtime post page
//  7. Write the sitemap
//  8. Compute the content report
//
// Every output is a whole-file overwrite through a temp file and rename, and
// running a build twice over the same input yields the same files.
//
// # URL Strategies
//
// With the "path" strategy each article has a static page at
// /<articleDir>/<slug>.html. With the "query" strategy no article pages are
// written and links target <postPage>?slug=<slug>, rendered in the browser
// from the aggregate data file.
//
// # Custom Assets
//
// Page templates and client scripts are embedded. Override any of them with
// a directory laid out as templates/{name}.html and scripts/{name}.js:
//
//	loader, err := sitegen.NewAssetLoader("/path/to/assets")
//	b, err := sitegen.NewBuilder(
//	    sitegen.WithConfig(cfg),
//	    sitegen.WithAssetLoader(loader),
//	)
//
// # Error Handling
//
// A listing page without its card container is skipped with a warning and
// reported in BuildResult.Skipped. Every other failure stops the build.
// Errors wrap package sentinels; classify them with errors.Is:
//
//	if errors.Is(err, sitegen.ErrWriteOutput) {
//	    // Check permissions on the public directory
//	}
package sitegen

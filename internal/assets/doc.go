// Package assets provides the HTML templates and client scripts used to
// render the blog. Assets can be loaded from embedded files or a custom
// filesystem directory.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the builder. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is not
// found. A site can override the article page layout while keeping the
// built-in card templates and scripts.
//
// # Directory Structure
//
//	{basePath}/
//	├── templates/
//	│   ├── article.html         # Per-article page (html/template)
//	│   ├── index-card.html      # Blog index card
//	│   ├── archive-card.html    # All-articles card with filter attributes
//	│   └── github-post.html     # Document pushed by the publish endpoint
//	└── scripts/
//	    ├── filter.js            # All-articles client-side filter
//	    └── post-runtime.js      # Fallback renderer appended to post-data.js
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets

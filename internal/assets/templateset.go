package assets

import "fmt"

// Template and script names known to the builder.
const (
	TemplateArticle     = "article"
	TemplateIndexCard   = "index-card"
	TemplateArchiveCard = "archive-card"
	TemplateGitHubPost  = "github-post"

	ScriptFilter      = "filter"
	ScriptPostRuntime = "post-runtime"
)

// TemplateSet holds the raw page templates for one build.
type TemplateSet struct {
	Article     string
	IndexCard   string
	ArchiveCard string
}

// LoadTemplateSet loads every page template the build renders.
// Returns ErrIncompleteTemplateSet naming the first template that is missing.
func LoadTemplateSet(loader AssetLoader) (*TemplateSet, error) {
	ts := &TemplateSet{}
	for _, item := range []struct {
		name string
		dst  *string
	}{
		{TemplateArticle, &ts.Article},
		{TemplateIndexCard, &ts.IndexCard},
		{TemplateArchiveCard, &ts.ArchiveCard},
	} {
		content, err := loader.LoadTemplate(item.name)
		if err != nil {
			if isNotFoundError(err) {
				return nil, fmt.Errorf("%w: %q: %v", ErrIncompleteTemplateSet, item.name, err)
			}
			return nil, err
		}
		*item.dst = content
	}
	return ts, nil
}

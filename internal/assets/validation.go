package assets

import (
	"fmt"
	"strings"
)

// ValidateAssetName checks that an asset name is safe to join into a path.
// Names are bare identifiers like "article" or "post-runtime": separators,
// dots and traversal sequences are rejected.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

package tenant

import (
	"context"
	"fmt"
	"strings"
)

// slugReplacer applies the fixed character mapping for slug generation.
// Punctuation that carries no meaning in a URL is dropped, separators
// become hyphens, and a couple of symbols get readable spellings.
// Characters outside the mapping, including non-ASCII letters, pass
// through unchanged.
var slugReplacer = strings.NewReplacer(
	" ", "-",
	"&", "and",
	"@", "-at-",
	"/", "-",
	"\\", "-",
	".", "",
	",", "",
	"'", "",
	"\"", "",
	"!", "",
	"?", "",
	"(", "",
	")", "",
)

// Slugify derives a URL-safe slug from a display name.
// The transformation is deterministic: the same name always yields the
// same slug.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugReplacer.Replace(s)
	// Collapse runs of hyphens left behind by adjacent separators.
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// SlugChecker reports whether a slug is already taken, excluding the
// tenant identified by excludeID (pass empty string on create).
type SlugChecker interface {
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

// UniqueSlug returns the base slug for name, or base-1, base-2, ... when
// the base is taken by another tenant. excludeID keeps a tenant's own
// slug from counting as a collision on rename.
func UniqueSlug(ctx context.Context, checker SlugChecker, name, excludeID string) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", fmt.Errorf("name %q produces an empty slug", name)
	}

	slug := base
	for i := 1; ; i++ {
		taken, err := checker.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", slug, err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

package tenant

import (
	"context"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Acme", "acme"},
		{"spaces become hyphens", "Acme Inc", "acme-inc"},
		{"trimmed", "  Acme Inc  ", "acme-inc"},
		{"ampersand", "Fish & Chips", "fish-and-chips"},
		{"at sign", "shop@home", "shop-at-home"},
		{"slashes", "A/B\\C", "a-b-c"},
		{"punctuation dropped", "Mr. O'Brien's Shop!", "mr-obriens-shop"},
		{"question and parens", "What? (Really)", "what-really"},
		{"collapsed hyphens", "A , B", "a-b"},
		{"non-ascii passes through", "Café München", "café-münchen"},
		{"already a slug", "acme-inc", "acme-inc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	first := Slugify("Acme & Sons / Trading")
	for i := 0; i < 10; i++ {
		if got := Slugify("Acme & Sons / Trading"); got != first {
			t.Fatalf("Slugify not deterministic: %q vs %q", got, first)
		}
	}
}

// fakeSlugChecker backs SlugExists with an in-memory slug -> tenantID map.
type fakeSlugChecker struct {
	taken map[string]string
}

func (f *fakeSlugChecker) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	owner, ok := f.taken[slug]
	if !ok {
		return false, nil
	}
	return excludeID == "" || owner != excludeID, nil
}

func TestUniqueSlug(t *testing.T) {
	ctx := context.Background()

	t.Run("free slug used as is", func(t *testing.T) {
		checker := &fakeSlugChecker{taken: map[string]string{}}
		got, err := UniqueSlug(ctx, checker, "Acme Inc", "")
		if err != nil {
			t.Fatal(err)
		}
		if got != "acme-inc" {
			t.Errorf("got %q, want acme-inc", got)
		}
	})

	t.Run("collision appends counter", func(t *testing.T) {
		checker := &fakeSlugChecker{taken: map[string]string{
			"acme-inc":   "t1",
			"acme-inc-1": "t2",
		}}
		got, err := UniqueSlug(ctx, checker, "Acme Inc", "")
		if err != nil {
			t.Fatal(err)
		}
		if got != "acme-inc-2" {
			t.Errorf("got %q, want acme-inc-2", got)
		}
	})

	t.Run("own slug is not a collision", func(t *testing.T) {
		checker := &fakeSlugChecker{taken: map[string]string{"acme-inc": "t1"}}
		got, err := UniqueSlug(ctx, checker, "Acme Inc", "t1")
		if err != nil {
			t.Fatal(err)
		}
		if got != "acme-inc" {
			t.Errorf("got %q, want acme-inc", got)
		}
	})

	t.Run("empty result rejected", func(t *testing.T) {
		checker := &fakeSlugChecker{taken: map[string]string{}}
		if _, err := UniqueSlug(ctx, checker, "!?.,", ""); err == nil {
			t.Error("expected error for name that slugifies to empty")
		}
	})
}

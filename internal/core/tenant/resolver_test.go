package tenant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"vitrin/internal/core/apperror"
)

// fakeRegistry is an in-memory Registry for resolver tests.
type fakeRegistry struct {
	byID   map[string]*Tenant
	bySlug map[string]*Tenant
	calls  int
}

func newFakeRegistry(tenants ...*Tenant) *fakeRegistry {
	f := &fakeRegistry{
		byID:   map[string]*Tenant{},
		bySlug: map[string]*Tenant{},
	}
	for _, t := range tenants {
		f.byID[t.ID] = t
		f.bySlug[t.Slug] = t
	}
	return f
}

func (f *fakeRegistry) GetByID(_ context.Context, id string) (*Tenant, error) {
	f.calls++
	if t, ok := f.byID[id]; ok {
		return t, nil
	}
	return nil, ErrTenantNotFound
}

func (f *fakeRegistry) GetBySlug(_ context.Context, slug string) (*Tenant, error) {
	f.calls++
	if t, ok := f.bySlug[slug]; ok {
		return t, nil
	}
	return nil, ErrTenantNotFound
}

func (f *fakeRegistry) SlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	t, ok := f.bySlug[slug]
	if !ok {
		return false, nil
	}
	return excludeID == "" || t.ID != excludeID, nil
}

func (f *fakeRegistry) ListAll(context.Context) ([]*Tenant, error)    { return nil, nil }
func (f *fakeRegistry) ListActive(context.Context) ([]*Tenant, error) { return nil, nil }
func (f *fakeRegistry) Update(context.Context, *Tenant) error         { return nil }
func (f *fakeRegistry) SetActive(context.Context, string, bool) error { return nil }

func (f *fakeRegistry) Create(_ context.Context, t *Tenant) error {
	if _, taken := f.bySlug[t.Slug]; taken {
		return apperror.NewDuplicateSlug(t.Slug)
	}
	if t.ID == "" {
		t.ID = fmt.Sprintf("t-%d", len(f.byID)+1)
	}
	f.byID[t.ID] = t
	f.bySlug[t.Slug] = t
	return nil
}

func TestResolverPriority(t *testing.T) {
	ctx := context.Background()
	claimed := &Tenant{ID: "t-claim", Slug: "claimed", IsActive: true}
	headered := &Tenant{ID: "t-header", Slug: "headered", IsActive: true}
	subbed := &Tenant{ID: "t-sub", Slug: "acme", IsActive: true}
	reg := newFakeRegistry(claimed, headered, subbed)

	tests := []struct {
		name   string
		claim  string
		header string
		host   string
		wantID string
	}{
		{"claim wins over all", "t-claim", "t-header", "acme.vitrin.example", "t-claim"},
		{"header wins over subdomain", "", "t-header", "acme.vitrin.example", "t-header"},
		{"subdomain as last resort", "", "", "acme.vitrin.example", "t-sub"},
		{"unknown claim falls through to header", "t-missing", "t-header", "", "t-header"},
		{"unknown header falls through to subdomain", "", "t-missing", "acme.vitrin.example", "t-sub"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(reg, tt.claim, tt.header, tt.host)
			got, err := r.Resolve(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if got.ID != tt.wantID {
				t.Errorf("resolved %s, want %s", got.ID, tt.wantID)
			}
		})
	}
}

func TestResolverNoTenant(t *testing.T) {
	reg := newFakeRegistry()
	r := NewResolver(reg, "", "", "vitrin.example")
	if _, err := r.Resolve(context.Background()); !errors.Is(err, ErrNoTenant) {
		t.Errorf("got %v, want ErrNoTenant", err)
	}
}

func TestResolverInactive(t *testing.T) {
	ctx := context.Background()
	inactive := &Tenant{ID: "t1", Slug: "closed", IsActive: false}
	reg := newFakeRegistry(inactive)

	t.Run("explicit inactive tenant is an error", func(t *testing.T) {
		r := NewResolver(reg, "t1", "", "")
		if _, err := r.Resolve(ctx); !errors.Is(err, ErrTenantNotActive) {
			t.Errorf("got %v, want ErrTenantNotActive", err)
		}
	})

	t.Run("inactive subdomain resolves to nothing", func(t *testing.T) {
		r := NewResolver(reg, "", "", "closed.vitrin.example")
		if _, err := r.Resolve(ctx); !errors.Is(err, ErrNoTenant) {
			t.Errorf("got %v, want ErrNoTenant", err)
		}
	})
}

func TestResolverSubdomainCaseSensitive(t *testing.T) {
	ctx := context.Background()
	reg := newFakeRegistry(&Tenant{ID: "t1", Slug: "acme", IsActive: true})

	r := NewResolver(reg, "", "", "ACME.vitrin.example")
	if _, err := r.Resolve(ctx); !errors.Is(err, ErrNoTenant) {
		t.Errorf("got %v, want ErrNoTenant for uppercase subdomain", err)
	}
}

func TestResolverMemoizes(t *testing.T) {
	ctx := context.Background()
	reg := newFakeRegistry(&Tenant{ID: "t1", Slug: "acme", IsActive: true})
	r := NewResolver(reg, "t1", "", "")

	for i := 0; i < 3; i++ {
		if _, err := r.Resolve(ctx); err != nil {
			t.Fatal(err)
		}
	}
	if reg.calls != 1 {
		t.Errorf("registry hit %d times, want 1", reg.calls)
	}
}

func TestSubdomainSlug(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"acme.vitrin.example", "acme"},
		{"acme.vitrin.example:8080", "acme"},
		{"www.vitrin.example", ""},
		{"vitrin.example", ""},
		{"acme.localhost", "acme"},
		{"localhost:8080", ""},
		{"ACME.vitrin.example", "ACME"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SubdomainSlug(tt.host); got != tt.want {
			t.Errorf("SubdomainSlug(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

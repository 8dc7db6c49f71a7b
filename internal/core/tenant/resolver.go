package tenant

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Resolver determines which tenant a request belongs to. Sources are
// consulted in a fixed priority order:
//
//  1. the tenant claim of an authenticated user,
//  2. the X-Tenant-ID header,
//  3. the subdomain of the request host.
//
// The result is memoized, so repeated Resolve calls within one request
// hit the registry at most once. A Resolver is built per request and
// must not be shared across requests.
type Resolver struct {
	registry Registry

	claimTenantID  string
	headerTenantID string
	host           string

	once     sync.Once
	resolved *Tenant
	err      error
}

// NewResolver builds a resolver for a single request. Empty source
// values are skipped during resolution.
func NewResolver(registry Registry, claimTenantID, headerTenantID, host string) *Resolver {
	return &Resolver{
		registry:       registry,
		claimTenantID:  claimTenantID,
		headerTenantID: headerTenantID,
		host:           host,
	}
}

// Resolve returns the tenant for this request.
// Returns ErrNoTenant when no source yields a tenant and
// ErrTenantNotActive when an explicitly named tenant is deactivated.
func (r *Resolver) Resolve(ctx context.Context) (*Tenant, error) {
	r.once.Do(func() {
		r.resolved, r.err = r.resolve(ctx)
	})
	return r.resolved, r.err
}

func (r *Resolver) resolve(ctx context.Context) (*Tenant, error) {
	// Claim and header name a tenant explicitly, so a deactivated match
	// is an error rather than a reason to try the next source.
	for _, id := range []string{r.claimTenantID, r.headerTenantID} {
		if id == "" {
			continue
		}
		t, err := r.registry.GetByID(ctx, id)
		if errors.Is(err, ErrTenantNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if !t.IsActive {
			return nil, ErrTenantNotActive
		}
		return t, nil
	}

	if slug := SubdomainSlug(r.host); slug != "" {
		t, err := r.registry.GetBySlug(ctx, slug)
		if err != nil && !errors.Is(err, ErrTenantNotFound) {
			return nil, err
		}
		if err == nil && t.IsActive {
			return t, nil
		}
	}

	return nil, ErrNoTenant
}

// SubdomainSlug extracts the tenant slug from a request host.
// "acme.vitrin.example:8080" yields "acme"; the reserved "www" label and
// hosts without a subdomain yield "". The label is returned as sent:
// slugs are stored lowercase and matched case-sensitively, so an
// uppercase subdomain resolves to nothing.
func SubdomainSlug(host string) string {
	if host == "" {
		return ""
	}
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	labels := strings.Split(host, ".")

	// Need a label in front of the base domain. "acme.localhost" counts
	// for local development.
	switch {
	case len(labels) >= 3:
	case len(labels) == 2 && labels[1] == "localhost":
	default:
		return ""
	}
	if labels[0] == "www" || labels[0] == "" {
		return ""
	}
	return labels[0]
}

package tenant

import (
	"context"
	"errors"
	"fmt"

	"vitrin/internal/core/apperror"
	"vitrin/pkg/logger"
)

// Service implements tenant lifecycle operations on top of a Registry.
// Slug generation and uniqueness are handled here so every write path
// goes through the same rules.
type Service struct {
	registry Registry
}

func NewService(registry Registry) *Service {
	return &Service{registry: registry}
}

// Register creates a new tenant with a slug derived from its name.
func (s *Service) Register(ctx context.Context, input CreateTenantInput) (*Tenant, error) {
	if err := input.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	t := &Tenant{
		Name:         input.Name,
		Description:  input.Description,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Address:      input.Address,
		City:         input.City,
		Country:      input.Country,
		PostalCode:   input.PostalCode,
		CompanyName:  input.CompanyName,
		TaxNumber:    input.TaxNumber,
		IsActive:     true,
	}
	err := s.writeWithSlugRetry(ctx, t, input.Name, func() error {
		return s.registry.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "tenant registered", "tenant_id", t.ID, "slug", t.Slug)
	return t, nil
}

// Get retrieves a tenant by ID.
func (s *Service) Get(ctx context.Context, tenantID string) (*Tenant, error) {
	t, err := s.registry.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, apperror.NewNotFound("tenant", tenantID)
		}
		return nil, err
	}
	return t, nil
}

// GetBySlug retrieves a tenant by slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Tenant, error) {
	t, err := s.registry.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return nil, apperror.NewNotFound("tenant", slug)
		}
		return nil, err
	}
	return t, nil
}

// List returns tenants, all of them or only active ones.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]*Tenant, error) {
	if includeInactive {
		return s.registry.ListAll(ctx)
	}
	return s.registry.ListActive(ctx)
}

// Update modifies tenant details. The slug is regenerated only when the
// name actually changed, so stable URLs survive edits to other fields.
func (s *Service) Update(ctx context.Context, tenantID string, input UpdateTenantInput) (*Tenant, error) {
	if err := input.Validate(); err != nil {
		return nil, apperror.NewValidation(err.Error())
	}

	t, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	renamed := input.Name != t.Name

	t.Name = input.Name
	t.Description = input.Description
	t.ContactEmail = input.ContactEmail
	t.ContactPhone = input.ContactPhone
	t.Address = input.Address
	t.City = input.City
	t.Country = input.Country
	t.PostalCode = input.PostalCode
	t.CompanyName = input.CompanyName
	t.TaxNumber = input.TaxNumber
	t.IsActive = input.IsActive
	t.Version = input.Version

	write := func() error { return s.registry.Update(ctx, t) }
	if renamed {
		err = s.writeWithSlugRetry(ctx, t, input.Name, write)
	} else {
		err = write()
	}
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "tenant updated", "tenant_id", t.ID, "slug", t.Slug)
	return t, nil
}

// writeWithSlugRetry generates a unique slug for t and runs the write.
// A concurrent write can claim the slug between the uniqueness probe
// and the statement; the unique index rejects the loser, which
// regenerates and tries again. Slug collisions never reach the caller.
func (s *Service) writeWithSlugRetry(ctx context.Context, t *Tenant, name string, write func() error) error {
	const maxAttempts = 3

	for attempt := 1; ; attempt++ {
		slug, err := UniqueSlug(ctx, s.registry, name, t.ID)
		if err != nil {
			return apperror.NewInternal(fmt.Errorf("generate slug: %w", err))
		}
		t.Slug = slug

		err = write()
		if err == nil || !apperror.HasCode(err, apperror.CodeDuplicateSlug) || attempt == maxAttempts {
			return err
		}
		logger.Warn(ctx, "slug claimed concurrently, regenerating",
			"slug", slug, "attempt", attempt)
	}
}

// Deactivate soft-disables a tenant. Its data stays in place; requests
// resolving to it are rejected until it is activated again.
func (s *Service) Deactivate(ctx context.Context, tenantID string) error {
	return s.setActive(ctx, tenantID, false)
}

// Activate re-enables a previously deactivated tenant.
func (s *Service) Activate(ctx context.Context, tenantID string) error {
	return s.setActive(ctx, tenantID, true)
}

func (s *Service) setActive(ctx context.Context, tenantID string, active bool) error {
	if err := s.registry.SetActive(ctx, tenantID, active); err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return apperror.NewNotFound("tenant", tenantID)
		}
		return fmt.Errorf("set tenant active=%v: %w", active, err)
	}
	logger.Info(ctx, "tenant active flag changed", "tenant_id", tenantID, "active", active)
	return nil
}

// IsActiveSlug reports whether a slug belongs to an active tenant.
func (s *Service) IsActiveSlug(ctx context.Context, slug string) (bool, error) {
	t, err := s.registry.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrTenantNotFound) {
			return false, nil
		}
		return false, err
	}
	return t.IsActive, nil
}

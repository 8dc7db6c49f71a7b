package customer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"vitrin/internal/core/apperror"
	"vitrin/internal/domain"
)

type passTx struct{}

func (passTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo is an in-memory Repository enforcing per-tenant email
// uniqueness the way the database constraint does.
type fakeRepo struct {
	customers map[string]*Customer
	hasOrders map[string]bool
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		customers: map[string]*Customer{},
		hasOrders: map[string]bool{},
	}
}

func (f *fakeRepo) emailTaken(tenantID, email, excludeID string) bool {
	for _, c := range f.customers {
		if c.TenantID == tenantID && c.ID != excludeID &&
			c.Email != nil && strings.EqualFold(*c.Email, email) {
			return true
		}
	}
	return false
}

func (f *fakeRepo) Create(_ context.Context, c *Customer) error {
	if c.Email != nil && *c.Email != "" && f.emailTaken(c.TenantID, *c.Email, "") {
		return apperror.NewDuplicateEmail(*c.Email)
	}
	f.nextID++
	c.ID = fmt.Sprintf("cust-%d", f.nextID)
	f.customers[c.ID] = c
	return nil
}

func (f *fakeRepo) get(tenantID, customerID string) (*Customer, error) {
	c, ok := f.customers[customerID]
	if !ok || c.TenantID != tenantID {
		return nil, apperror.NewNotFound("customer", customerID)
	}
	return c, nil
}

func (f *fakeRepo) GetByID(_ context.Context, tenantID, customerID string) (*Customer, error) {
	return f.get(tenantID, customerID)
}

func (f *fakeRepo) FindByEmail(_ context.Context, tenantID, email string) (*Customer, error) {
	for _, c := range f.customers {
		if c.TenantID == tenantID && c.Email != nil && strings.EqualFold(*c.Email, email) {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("customer", email)
}

func (f *fakeRepo) List(_ context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[*Customer], error) {
	var items []*Customer
	for _, c := range f.customers {
		if c.TenantID == tenantID {
			items = append(items, c)
		}
	}
	return domain.NewPagedResult(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (f *fakeRepo) Update(_ context.Context, c *Customer) error {
	if _, err := f.get(c.TenantID, c.ID); err != nil {
		return err
	}
	if c.Email != nil && *c.Email != "" && f.emailTaken(c.TenantID, *c.Email, c.ID) {
		return apperror.NewDuplicateEmail(*c.Email)
	}
	f.customers[c.ID] = c
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, tenantID, customerID string) error {
	if _, err := f.get(tenantID, customerID); err != nil {
		return err
	}
	delete(f.customers, customerID)
	return nil
}

func (f *fakeRepo) SetActive(_ context.Context, tenantID, customerID string, active bool) error {
	c, err := f.get(tenantID, customerID)
	if err != nil {
		return err
	}
	c.IsActive = active
	return nil
}

func (f *fakeRepo) HasOrders(_ context.Context, _, customerID string) (bool, error) {
	return f.hasOrders[customerID], nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, passTx{}), repo
}

func withEmail(c *Customer, email string) *Customer {
	c.Email = &email
	return c
}

func TestCreateDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	if err := svc.Create(ctx, withEmail(NewCustomer("t1", "Ada", "L"), "ada@example.com")); err != nil {
		t.Fatal(err)
	}

	err := svc.Create(ctx, withEmail(NewCustomer("t1", "Ada", "Two"), "ada@example.com"))
	if !apperror.HasCode(err, apperror.CodeDuplicateEmail) {
		t.Errorf("got %v, want duplicate email", err)
	}

	// Same email under another tenant is fine.
	if err := svc.Create(ctx, withEmail(NewCustomer("t2", "Ada", "L"), "ada@example.com")); err != nil {
		t.Errorf("same email in different tenant: %v", err)
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	biz := NewCustomer("t1", "Grace", "H")
	biz.CustomerType = TypeBusiness
	if err := biz.Validate(ctx); !apperror.HasCode(err, apperror.CodeValidation) {
		t.Errorf("got %v, want validation error for business without company name", err)
	}
	biz.CompanyName = "Hopper Ltd"
	if err := biz.Validate(ctx); err != nil {
		t.Errorf("valid business customer rejected: %v", err)
	}

	bad := withEmail(NewCustomer("t1", "Grace", "H"), "not-an-email")
	if err := bad.Validate(ctx); !apperror.HasCode(err, apperror.CodeValidation) {
		t.Errorf("got %v, want validation error for malformed email", err)
	}
}

func TestDeleteBranching(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	t.Run("customer without orders is hard deleted", func(t *testing.T) {
		c := NewCustomer("t1", "Ada", "L")
		if err := svc.Create(ctx, c); err != nil {
			t.Fatal(err)
		}
		outcome, err := svc.Delete(ctx, "t1", c.ID)
		if err != nil {
			t.Fatal(err)
		}
		if outcome != domain.HardDeleted {
			t.Errorf("got %s, want hard delete", outcome)
		}
	})

	t.Run("customer with orders is deactivated", func(t *testing.T) {
		c := NewCustomer("t1", "Ada", "L")
		if err := svc.Create(ctx, c); err != nil {
			t.Fatal(err)
		}
		repo.hasOrders[c.ID] = true

		outcome, err := svc.Delete(ctx, "t1", c.ID)
		if err != nil {
			t.Fatal(err)
		}
		if outcome != domain.SoftDeactivated {
			t.Errorf("got %s, want soft deactivate", outcome)
		}
		got, err := svc.Get(ctx, "t1", c.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.IsActive {
			t.Error("customer still active after soft delete")
		}
	})

	t.Run("cross-tenant delete is not found", func(t *testing.T) {
		c := NewCustomer("t1", "Ada", "L")
		if err := svc.Create(ctx, c); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.Delete(ctx, "t2", c.ID); !apperror.IsNotFound(err) {
			t.Errorf("got %v, want not found", err)
		}
	})
}

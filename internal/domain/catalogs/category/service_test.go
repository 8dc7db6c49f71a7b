package category

import (
	"context"
	"fmt"
	"testing"

	"vitrin/internal/core/apperror"
	"vitrin/internal/domain"
)

// passTx runs the function directly, without a database.
type passTx struct{}

func (passTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo is an in-memory Repository.
type fakeRepo struct {
	categories map[string]*Category // keyed by ID
	products   map[string]int64     // categoryID -> active product count
	nextID     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: map[string]*Category{},
		products:   map[string]int64{},
	}
}

func (f *fakeRepo) Create(_ context.Context, c *Category) error {
	f.nextID++
	c.ID = fmt.Sprintf("cat-%d", f.nextID)
	f.categories[c.ID] = c
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, tenantID, categoryID string) (*Category, error) {
	c, ok := f.categories[categoryID]
	if !ok || c.TenantID != tenantID {
		return nil, apperror.NewNotFound("category", categoryID)
	}
	return c, nil
}

func (f *fakeRepo) List(_ context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[*Category], error) {
	var items []*Category
	for _, c := range f.categories {
		if c.TenantID == tenantID {
			items = append(items, c)
		}
	}
	return domain.NewPagedResult(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (f *fakeRepo) Update(_ context.Context, c *Category) error {
	existing, ok := f.categories[c.ID]
	if !ok || existing.TenantID != c.TenantID {
		return apperror.NewNotFound("category", c.ID)
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, tenantID, categoryID string) error {
	c, ok := f.categories[categoryID]
	if !ok || c.TenantID != tenantID {
		return apperror.NewNotFound("category", categoryID)
	}
	delete(f.categories, categoryID)
	return nil
}

func (f *fakeRepo) SetActive(_ context.Context, tenantID, categoryID string, active bool) error {
	c, ok := f.categories[categoryID]
	if !ok || c.TenantID != tenantID {
		return apperror.NewNotFound("category", categoryID)
	}
	c.IsActive = active
	return nil
}

func (f *fakeRepo) CountActiveProducts(_ context.Context, _, categoryID string) (int64, error) {
	return f.products[categoryID], nil
}

func (f *fakeRepo) CountChildren(_ context.Context, tenantID, categoryID string) (int64, error) {
	var n int64
	for _, c := range f.categories {
		if c.TenantID == tenantID && !c.IsRoot() && *c.ParentCategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, passTx{}), repo
}

func mustCreate(t *testing.T, svc *Service, c *Category) *Category {
	t.Helper()
	if err := svc.Create(context.Background(), c); err != nil {
		t.Fatalf("create %s: %v", c.Name, err)
	}
	return c
}

func TestCreateValidatesParent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	bad := NewCategory("t1", "Shoes")
	missing := "cat-missing"
	bad.ParentCategoryID = &missing
	err := svc.Create(ctx, bad)
	if !apperror.HasCode(err, apperror.CodeValidation) {
		t.Errorf("got %v, want validation error for missing parent", err)
	}

	root := mustCreate(t, svc, NewCategory("t1", "Apparel"))
	child := NewCategory("t1", "Shoes")
	child.ParentCategoryID = &root.ID
	if err := svc.Create(ctx, child); err != nil {
		t.Errorf("create with existing parent: %v", err)
	}
}

func TestCreateRejectsForeignParent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	other := mustCreate(t, svc, NewCategory("t2", "Their Apparel"))
	c := NewCategory("t1", "Shoes")
	c.ParentCategoryID = &other.ID
	err := svc.Create(ctx, c)
	if !apperror.HasCode(err, apperror.CodeValidation) {
		t.Errorf("got %v, want validation error for cross-tenant parent", err)
	}
}

func TestDeleteGuards(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	parent := mustCreate(t, svc, NewCategory("t1", "Apparel"))

	t.Run("blocked by active products", func(t *testing.T) {
		repo.products[parent.ID] = 1
		err := svc.Delete(ctx, "t1", parent.ID)
		if !apperror.HasCode(err, apperror.CodeConflict) {
			t.Errorf("got %v, want conflict", err)
		}
	})

	t.Run("blocked by subcategories", func(t *testing.T) {
		repo.products[parent.ID] = 0
		child := NewCategory("t1", "Shoes")
		child.ParentCategoryID = &parent.ID
		mustCreate(t, svc, child)

		err := svc.Delete(ctx, "t1", parent.ID)
		if !apperror.HasCode(err, apperror.CodeConflict) {
			t.Errorf("got %v, want conflict", err)
		}

		if err := svc.Delete(ctx, "t1", child.ID); err != nil {
			t.Fatalf("delete leaf: %v", err)
		}
	})

	t.Run("succeeds once dependents are gone", func(t *testing.T) {
		if err := svc.Delete(ctx, "t1", parent.ID); err != nil {
			t.Errorf("delete: %v", err)
		}
	})

	t.Run("cross-tenant delete is not found", func(t *testing.T) {
		c := mustCreate(t, svc, NewCategory("t1", "Bags"))
		err := svc.Delete(ctx, "t2", c.ID)
		if !apperror.IsNotFound(err) {
			t.Errorf("got %v, want not found", err)
		}
	})
}

func TestUpdateRejectsCycles(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	// a -> b -> c chain
	a := mustCreate(t, svc, NewCategory("t1", "A"))
	b := NewCategory("t1", "B")
	b.ParentCategoryID = &a.ID
	mustCreate(t, svc, b)
	c := NewCategory("t1", "C")
	c.ParentCategoryID = &b.ID
	mustCreate(t, svc, c)

	t.Run("direct self-parent", func(t *testing.T) {
		a2 := *a
		a2.ParentCategoryID = &a.ID
		err := svc.Update(ctx, &a2)
		if !apperror.HasCode(err, apperror.CodeValidation) {
			t.Errorf("got %v, want validation error", err)
		}
	})

	t.Run("deep cycle via descendant", func(t *testing.T) {
		a2 := *a
		a2.ParentCategoryID = &c.ID
		err := svc.Update(ctx, &a2)
		if !apperror.HasCode(err, apperror.CodeValidation) {
			t.Errorf("got %v, want validation error", err)
		}
	})

	t.Run("legal reparent", func(t *testing.T) {
		c2 := *c
		c2.ParentCategoryID = &a.ID
		if err := svc.Update(ctx, &c2); err != nil {
			t.Errorf("reparent c under a: %v", err)
		}
	})
}

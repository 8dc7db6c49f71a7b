package product

import (
	"context"
	"fmt"
	"testing"

	"vitrin/internal/core/apperror"
	"vitrin/internal/core/types"
	"vitrin/internal/domain"
	"vitrin/internal/domain/catalogs/category"
)

type passTx struct{}

func (passTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeRepo is an in-memory Repository.
type fakeRepo struct {
	products   map[string]*Product
	referenced map[string]bool // productID -> has order items
	nextID     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products:   map[string]*Product{},
		referenced: map[string]bool{},
	}
}

func (f *fakeRepo) Create(_ context.Context, p *Product) error {
	f.nextID++
	p.ID = fmt.Sprintf("prod-%d", f.nextID)
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepo) get(tenantID, productID string) (*Product, error) {
	p, ok := f.products[productID]
	if !ok || p.TenantID != tenantID {
		return nil, apperror.NewNotFound("product", productID)
	}
	return p, nil
}

func (f *fakeRepo) GetByID(_ context.Context, tenantID, productID string) (*Product, error) {
	return f.get(tenantID, productID)
}

func (f *fakeRepo) GetForUpdate(_ context.Context, tenantID, productID string) (*Product, error) {
	return f.get(tenantID, productID)
}

func (f *fakeRepo) FindBySKU(_ context.Context, tenantID, sku string) (*Product, error) {
	for _, p := range f.products {
		if p.TenantID == tenantID && p.SKU != nil && *p.SKU == sku {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", sku)
}

func (f *fakeRepo) List(_ context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[*Product], error) {
	var items []*Product
	for _, p := range f.products {
		if p.TenantID == tenantID {
			items = append(items, p)
		}
	}
	return domain.NewPagedResult(items, int64(len(items)), filter.Page, filter.PageSize), nil
}

func (f *fakeRepo) Update(_ context.Context, p *Product) error {
	if _, err := f.get(p.TenantID, p.ID); err != nil {
		return err
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, tenantID, productID string) error {
	if _, err := f.get(tenantID, productID); err != nil {
		return err
	}
	delete(f.products, productID)
	return nil
}

func (f *fakeRepo) SetActive(_ context.Context, tenantID, productID string, active bool) error {
	p, err := f.get(tenantID, productID)
	if err != nil {
		return err
	}
	p.IsActive = active
	return nil
}

func (f *fakeRepo) DecrementStock(_ context.Context, tenantID, productID string, qty int) (bool, error) {
	p, err := f.get(tenantID, productID)
	if err != nil {
		return false, err
	}
	if p.StockQuantity < qty {
		return false, nil
	}
	p.StockQuantity -= qty
	return true, nil
}

func (f *fakeRepo) HasOrderItems(_ context.Context, _, productID string) (bool, error) {
	return f.referenced[productID], nil
}

// fakeCategories is an in-memory CategoryLookup.
type fakeCategories struct {
	categories map[string]*category.Category
}

func (f *fakeCategories) GetByID(_ context.Context, tenantID, categoryID string) (*category.Category, error) {
	c, ok := f.categories[categoryID]
	if !ok || c.TenantID != tenantID {
		return nil, apperror.NewNotFound("category", categoryID)
	}
	return c, nil
}

func (f *fakeCategories) add(c *category.Category) {
	if f.categories == nil {
		f.categories = map[string]*category.Category{}
	}
	f.categories[c.ID] = c
}

func newTestService() (*Service, *fakeRepo, *fakeCategories) {
	repo := newFakeRepo()
	cats := &fakeCategories{}
	return NewService(repo, cats, passTx{}), repo, cats
}

func TestCategoryMustBelongToTenant(t *testing.T) {
	ctx := context.Background()
	svc, _, cats := newTestService()

	cats.add(&category.Category{ID: "cat-own", TenantID: "t1", Name: "Shoes"})
	cats.add(&category.Category{ID: "cat-foreign", TenantID: "t2", Name: "Secret Line"})

	t.Run("own category is accepted", func(t *testing.T) {
		p := NewProduct("t1", "Sneaker", types.MustMoney("59.90"))
		own := "cat-own"
		p.CategoryID = &own
		if err := svc.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("foreign category is rejected on create", func(t *testing.T) {
		p := NewProduct("t1", "Sneaker", types.MustMoney("59.90"))
		foreign := "cat-foreign"
		p.CategoryID = &foreign
		if err := svc.Create(ctx, p); !apperror.HasCode(err, apperror.CodeValidation) {
			t.Errorf("got %v, want validation error", err)
		}
	})

	t.Run("foreign category is rejected on update", func(t *testing.T) {
		p := NewProduct("t1", "Boot", types.MustMoney("89.90"))
		if err := svc.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
		foreign := "cat-foreign"
		p.CategoryID = &foreign
		if err := svc.Update(ctx, p); !apperror.HasCode(err, apperror.CodeValidation) {
			t.Errorf("got %v, want validation error", err)
		}
	})
}

func TestCreateRejectsDuplicateSKU(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	sku := "SKU-1"
	first := NewProduct("t1", "Shirt", types.MustMoney("19.90"))
	first.SKU = &sku
	if err := svc.Create(ctx, first); err != nil {
		t.Fatal(err)
	}

	dup := NewProduct("t1", "Other Shirt", types.MustMoney("24.90"))
	dup.SKU = &sku
	if err := svc.Create(ctx, dup); !apperror.HasCode(err, apperror.CodeConflict) {
		t.Errorf("got %v, want conflict", err)
	}

	// Same SKU under another tenant is fine.
	foreign := NewProduct("t2", "Shirt", types.MustMoney("19.90"))
	foreign.SKU = &sku
	if err := svc.Create(ctx, foreign); err != nil {
		t.Errorf("same SKU in different tenant: %v", err)
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	p := NewProduct("t1", "Shirt", types.MustMoney("19.90"))
	discount := types.MustMoney("25.00")
	p.DiscountPrice = &discount
	if err := p.Validate(ctx); !apperror.HasCode(err, apperror.CodeValidation) {
		t.Errorf("got %v, want validation error for discount above price", err)
	}

	p2 := NewProduct("t1", "", types.MustMoney("1.00"))
	if err := p2.Validate(ctx); !apperror.HasCode(err, apperror.CodeValidation) {
		t.Errorf("got %v, want validation error for empty name", err)
	}
}

func TestEffectivePrice(t *testing.T) {
	p := NewProduct("t1", "Shirt", types.MustMoney("19.90"))
	if !p.EffectivePrice().Equal(types.MustMoney("19.90")) {
		t.Errorf("got %s, want 19.90", p.EffectivePrice())
	}
	discount := types.MustMoney("14.90")
	p.DiscountPrice = &discount
	if !p.EffectivePrice().Equal(discount) {
		t.Errorf("got %s, want %s", p.EffectivePrice(), discount)
	}
}

func TestDeleteBranching(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	t.Run("unreferenced product is hard deleted", func(t *testing.T) {
		p := NewProduct("t1", "Shirt", types.MustMoney("19.90"))
		if err := svc.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
		outcome, err := svc.Delete(ctx, "t1", p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if outcome != domain.HardDeleted {
			t.Errorf("got %s, want hard delete", outcome)
		}
		if _, err := svc.Get(ctx, "t1", p.ID); !apperror.IsNotFound(err) {
			t.Errorf("deleted product still readable: %v", err)
		}
	})

	t.Run("referenced product is deactivated", func(t *testing.T) {
		p := NewProduct("t1", "Shirt", types.MustMoney("19.90"))
		if err := svc.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
		repo.referenced[p.ID] = true

		outcome, err := svc.Delete(ctx, "t1", p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if outcome != domain.SoftDeactivated {
			t.Errorf("got %s, want soft deactivate", outcome)
		}
		got, err := svc.Get(ctx, "t1", p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.IsActive {
			t.Error("product still active after soft delete")
		}
	})

	t.Run("cross-tenant delete is not found", func(t *testing.T) {
		p := NewProduct("t1", "Shirt", types.MustMoney("19.90"))
		if err := svc.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.Delete(ctx, "t2", p.ID); !apperror.IsNotFound(err) {
			t.Errorf("got %v, want not found", err)
		}
	})
}

package product

import (
	"context"

	"vitrin/internal/core/apperror"
	"vitrin/internal/core/tx"
	"vitrin/internal/domain"
	"vitrin/internal/domain/catalogs/category"
	"vitrin/pkg/logger"
)

// CategoryLookup is the slice of the category repository the product
// service needs to validate references. Satisfied by the full category
// repository.
type CategoryLookup interface {
	GetByID(ctx context.Context, tenantID, categoryID string) (*category.Category, error)
}

// Service provides business logic for the product catalog.
type Service struct {
	repo       Repository
	categories CategoryLookup
	txm        tx.Manager
}

func NewService(repo Repository, categories CategoryLookup, txm tx.Manager) *Service {
	return &Service{repo: repo, categories: categories, txm: txm}
}

// Create inserts a new product after SKU uniqueness and category
// ownership checks.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkSKU(ctx, p); err != nil {
		return err
	}
	if err := s.checkCategory(ctx, p); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	logger.Info(ctx, "product created", "product_id", p.ID, "name", p.Name)
	return nil
}

// Get retrieves a product within the tenant scope.
func (s *Service) Get(ctx context.Context, tenantID, productID string) (*Product, error) {
	return s.repo.GetByID(ctx, tenantID, productID)
}

// List retrieves products with filtering and pagination.
func (s *Service) List(ctx context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[*Product], error) {
	filter.Normalize()
	return s.repo.List(ctx, tenantID, filter)
}

// Update modifies a product. Stock quantity is never written here.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if err := s.checkSKU(ctx, p); err != nil {
		return err
	}
	if err := s.checkCategory(ctx, p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

// Delete removes a product, or deactivates it when order history
// references it. The outcome tells the caller which happened.
func (s *Service) Delete(ctx context.Context, tenantID, productID string) (domain.DeleteOutcome, error) {
	var outcome domain.DeleteOutcome
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, tenantID, productID); err != nil {
			return err
		}

		referenced, err := s.repo.HasOrderItems(ctx, tenantID, productID)
		if err != nil {
			return err
		}
		if referenced {
			if err := s.repo.SetActive(ctx, tenantID, productID, false); err != nil {
				return err
			}
			outcome = domain.SoftDeactivated
			logger.Info(ctx, "product deactivated, referenced by orders", "product_id", productID)
			return nil
		}

		if err := s.repo.Delete(ctx, tenantID, productID); err != nil {
			return err
		}
		outcome = domain.HardDeleted
		logger.Info(ctx, "product deleted", "product_id", productID)
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

// checkCategory resolves the referenced category within the product's
// tenant scope. A category owned by another tenant is indistinguishable
// from a missing one.
func (s *Service) checkCategory(ctx context.Context, p *Product) error {
	if p.CategoryID == nil || *p.CategoryID == "" {
		return nil
	}
	if _, err := s.categories.GetByID(ctx, p.TenantID, *p.CategoryID); err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("category does not exist").
				WithDetail("categoryId", *p.CategoryID)
		}
		return err
	}
	return nil
}

func (s *Service) checkSKU(ctx context.Context, p *Product) error {
	if p.SKU == nil || *p.SKU == "" {
		return nil
	}
	existing, err := s.repo.FindBySKU(ctx, p.TenantID, *p.SKU)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != p.ID {
		return apperror.NewConflict("product with this SKU already exists").
			WithDetail("sku", *p.SKU)
	}
	return nil
}

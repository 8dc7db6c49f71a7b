package category

import (
	"context"

	"vitrin/internal/core/apperror"
	"vitrin/internal/core/tx"
	"vitrin/internal/domain"
	"vitrin/pkg/logger"
)

// Service provides business logic for the category catalog.
type Service struct {
	repo Repository
	txm  tx.Manager
}

func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{repo: repo, txm: txm}
}

// Create inserts a new category after validating its parent reference.
func (s *Service) Create(ctx context.Context, c *Category) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if !c.IsRoot() {
		if _, err := s.repo.GetByID(ctx, c.TenantID, *c.ParentCategoryID); err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewValidation("parent category does not exist").
					WithDetail("parentCategoryId", *c.ParentCategoryID)
			}
			return err
		}
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	logger.Info(ctx, "category created", "category_id", c.ID, "name", c.Name)
	return nil
}

// Get retrieves a category within the tenant scope.
func (s *Service) Get(ctx context.Context, tenantID, categoryID string) (*Category, error) {
	return s.repo.GetByID(ctx, tenantID, categoryID)
}

// List retrieves categories with filtering and pagination.
func (s *Service) List(ctx context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[*Category], error) {
	filter.Normalize()
	return s.repo.List(ctx, tenantID, filter)
}

// Update modifies a category. A changed parent is validated against the
// full ancestor chain so no reparenting can close a cycle at any depth.
func (s *Service) Update(ctx context.Context, c *Category) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if !c.IsRoot() {
		if err := s.checkNoCycle(ctx, c.TenantID, c.ID, *c.ParentCategoryID); err != nil {
			return err
		}
	}
	return s.repo.Update(ctx, c)
}

// Delete removes a category. Categories with active products or
// subcategories cannot be removed; the caller must reassign or
// deactivate dependents first.
func (s *Service) Delete(ctx context.Context, tenantID, categoryID string) error {
	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, tenantID, categoryID); err != nil {
			return err
		}

		products, err := s.repo.CountActiveProducts(ctx, tenantID, categoryID)
		if err != nil {
			return err
		}
		if products > 0 {
			return apperror.NewConflict("category has dependent products").
				WithDetail("categoryId", categoryID).
				WithDetail("productCount", products)
		}

		children, err := s.repo.CountChildren(ctx, tenantID, categoryID)
		if err != nil {
			return err
		}
		if children > 0 {
			return apperror.NewConflict("category has subcategories").
				WithDetail("categoryId", categoryID).
				WithDetail("subcategoryCount", children)
		}

		if err := s.repo.Delete(ctx, tenantID, categoryID); err != nil {
			return err
		}
		logger.Info(ctx, "category deleted", "category_id", categoryID)
		return nil
	})
}

// checkNoCycle walks up from the proposed parent to the root. Hitting
// categoryID on the way means the new parent is a descendant.
func (s *Service) checkNoCycle(ctx context.Context, tenantID, categoryID, parentID string) error {
	const maxDepth = 100

	current := parentID
	for depth := 0; current != ""; depth++ {
		if depth >= maxDepth {
			return apperror.NewValidation("category hierarchy too deep").
				WithDetail("categoryId", categoryID)
		}
		if current == categoryID {
			return apperror.NewValidation("category cannot be moved under its own descendant").
				WithDetail("categoryId", categoryID).
				WithDetail("parentCategoryId", parentID)
		}
		parent, err := s.repo.GetByID(ctx, tenantID, current)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewValidation("parent category does not exist").
					WithDetail("parentCategoryId", current)
			}
			return err
		}
		if parent.IsRoot() {
			return nil
		}
		current = *parent.ParentCategoryID
	}
	return nil
}

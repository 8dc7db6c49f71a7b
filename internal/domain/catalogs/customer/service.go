package customer

import (
	"context"

	"vitrin/internal/core/tx"
	"vitrin/internal/domain"
	"vitrin/pkg/logger"
)

// Service provides business logic for the customer catalog.
type Service struct {
	repo Repository
	txm  tx.Manager
}

func NewService(repo Repository, txm tx.Manager) *Service {
	return &Service{repo: repo, txm: txm}
}

// Create inserts a new customer. The per-tenant email uniqueness check
// is left to the store's constraint so concurrent creates cannot race
// past an application-level lookup.
func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	logger.Info(ctx, "customer created", "customer_id", c.ID)
	return nil
}

// Get retrieves a customer within the tenant scope.
func (s *Service) Get(ctx context.Context, tenantID, customerID string) (*Customer, error) {
	return s.repo.GetByID(ctx, tenantID, customerID)
}

// List retrieves customers with filtering and pagination.
func (s *Service) List(ctx context.Context, tenantID string, filter domain.ListFilter) (domain.PagedResult[*Customer], error) {
	filter.Normalize()
	return s.repo.List(ctx, tenantID, filter)
}

// Update modifies a customer.
func (s *Service) Update(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

// Delete removes a customer, or deactivates them when order history
// references them. The outcome tells the caller which happened.
func (s *Service) Delete(ctx context.Context, tenantID, customerID string) (domain.DeleteOutcome, error) {
	var outcome domain.DeleteOutcome
	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, tenantID, customerID); err != nil {
			return err
		}

		referenced, err := s.repo.HasOrders(ctx, tenantID, customerID)
		if err != nil {
			return err
		}
		if referenced {
			if err := s.repo.SetActive(ctx, tenantID, customerID, false); err != nil {
				return err
			}
			outcome = domain.SoftDeactivated
			logger.Info(ctx, "customer deactivated, referenced by orders", "customer_id", customerID)
			return nil
		}

		if err := s.repo.Delete(ctx, tenantID, customerID); err != nil {
			return err
		}
		outcome = domain.HardDeleted
		logger.Info(ctx, "customer deleted", "customer_id", customerID)
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}

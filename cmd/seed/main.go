// Package main provides a CLI tool for seeding the database with
// initial data: the platform administrator and, optionally, a demo
// storefront with catalog data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"vitrin/internal/core/security"
	"vitrin/internal/core/tenant"
	"vitrin/internal/core/types"
	"vitrin/internal/domain/auth"
	"vitrin/internal/domain/catalogs/category"
	"vitrin/internal/domain/catalogs/customer"
	"vitrin/internal/domain/catalogs/product"
	"vitrin/internal/infrastructure/storage/postgres"
	"vitrin/internal/infrastructure/storage/postgres/auth_repo"
	"vitrin/internal/infrastructure/storage/postgres/catalog_repo"
	"vitrin/internal/infrastructure/storage/postgres/tenant_repo"
	"vitrin/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	registry := tenant_repo.NewRegistry(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("seed-only"))
	authService := auth.NewService(userRepo, jwtService, auth.DefaultServiceConfig())

	if err := seedPlatformAdmin(ctx, userRepo, authService, log); err != nil {
		log.Fatalw("failed to seed platform admin", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoStore(ctx, txManager, registry, authService, log); err != nil {
			log.Fatalw("failed to seed demo store", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedPlatformAdmin(ctx context.Context, userRepo *auth_repo.UserRepo, authService *auth.Service, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@vitrin.io"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	exists, err := userRepo.Exists(ctx, "", adminEmail)
	if err != nil {
		return fmt.Errorf("check admin exists: %w", err)
	}
	if exists {
		log.Infow("platform admin already exists", "email", adminEmail)
		return nil
	}

	user, err := authService.Register(ctx, "", auth.RegisterRequest{
		Email:     adminEmail,
		Password:  adminPassword,
		FirstName: "Platform",
		LastName:  "Admin",
		Roles:     []string{string(security.RoleSuperAdmin)},
	})
	if err != nil {
		return err
	}

	log.Infow("platform admin created", "email", adminEmail, "user_id", user.ID)
	return nil
}

func seedDemoStore(
	ctx context.Context,
	txManager *postgres.TxManager,
	registry tenant.Registry,
	authService *auth.Service,
	log *logger.Logger,
) error {
	tenantService := tenant.NewService(registry)

	demo, err := registry.GetBySlug(ctx, "demo-store")
	if err != nil && !errors.Is(err, tenant.ErrTenantNotFound) {
		return fmt.Errorf("check demo store: %w", err)
	}
	if demo != nil {
		log.Infow("demo store already exists", "tenant_id", demo.ID)
		return nil
	}

	demo, err = tenantService.Register(ctx, tenant.CreateTenantInput{
		Name:         "Demo Store",
		Description:  "Seeded demo storefront",
		ContactEmail: "owner@demo-store.test",
		City:         "Berlin",
		Country:      "DE",
	})
	if err != nil {
		return fmt.Errorf("register demo tenant: %w", err)
	}
	log.Infow("demo store created", "tenant_id", demo.ID, "slug", demo.Slug)

	owner, err := authService.Register(ctx, demo.ID, auth.RegisterRequest{
		Email:     "owner@demo-store.test",
		Password:  "Owner123!",
		FirstName: "Demo",
		LastName:  "Owner",
		Roles:     []string{string(security.RoleTenantAdmin)},
	})
	if err != nil {
		return fmt.Errorf("register demo owner: %w", err)
	}
	log.Infow("demo owner created", "user_id", owner.ID)

	categoryRepo := catalog_repo.NewCategoryRepo(txManager)
	categoryService := category.NewService(categoryRepo, txManager)
	productService := product.NewService(catalog_repo.NewProductRepo(txManager), categoryRepo, txManager)
	customerService := customer.NewService(catalog_repo.NewCustomerRepo(txManager), txManager)

	electronics := category.NewCategory(demo.ID, "Electronics")
	electronics.Description = "Gadgets and accessories"
	if err := categoryService.Create(ctx, electronics); err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	books := category.NewCategory(demo.ID, "Books")
	if err := categoryService.Create(ctx, books); err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	demoProducts := []struct {
		name     string
		sku      string
		price    string
		cost     string
		stock    int
		minStock int
		catID    *string
	}{
		{"Wireless Mouse", "ELEC-0001", "29.90", "14.50", 120, 10, &electronics.ID},
		{"USB-C Hub", "ELEC-0002", "49.00", "22.00", 45, 5, &electronics.ID},
		{"Noise-Cancelling Headphones", "ELEC-0003", "199.00", "95.00", 18, 3, &electronics.ID},
		{"Go in Practice", "BOOK-0001", "39.50", "17.00", 60, 5, &books.ID},
	}

	for _, d := range demoProducts {
		p := product.NewProduct(demo.ID, d.name, types.MustMoney(d.price))
		sku := d.sku
		p.SKU = &sku
		p.CostPrice = types.MustMoney(d.cost)
		p.StockQuantity = d.stock
		p.MinStockLevel = d.minStock
		p.CategoryID = d.catID
		if err := productService.Create(ctx, p); err != nil {
			return fmt.Errorf("create product %s: %w", d.name, err)
		}
	}
	log.Infow("demo products created", "count", len(demoProducts))

	cust := customer.NewCustomer(demo.ID, "Erika", "Mustermann")
	email := "erika@example.com"
	cust.Email = &email
	cust.City = "Berlin"
	cust.Country = "DE"
	if err := customerService.Create(ctx, cust); err != nil {
		return fmt.Errorf("create customer: %w", err)
	}

	log.Info("demo store seeded")
	return nil
}

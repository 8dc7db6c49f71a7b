// Package main is the entry point for the Vitrin API server.
// Multi-tenant architecture: one shared database, row-level isolation.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vitrin/internal/core/tenant"
	"vitrin/internal/domain/auth"
	"vitrin/internal/domain/catalogs/category"
	"vitrin/internal/domain/catalogs/customer"
	"vitrin/internal/domain/catalogs/product"
	"vitrin/internal/domain/orders"
	"vitrin/internal/domain/reports"
	v1 "vitrin/internal/infrastructure/http/v1"
	"vitrin/internal/infrastructure/storage/postgres"
	"vitrin/internal/infrastructure/storage/postgres/auth_repo"
	"vitrin/internal/infrastructure/storage/postgres/catalog_repo"
	"vitrin/internal/infrastructure/storage/postgres/order_repo"
	"vitrin/internal/infrastructure/storage/postgres/report_repo"
	"vitrin/internal/infrastructure/storage/postgres/tenant_repo"
	"vitrin/pkg/logger"
	"vitrin/pkg/ordernum"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting vitrin server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	registry := tenant_repo.NewRegistry(txManager)
	categoryRepo := catalog_repo.NewCategoryRepo(txManager)
	productRepo := catalog_repo.NewProductRepo(txManager)
	customerRepo := catalog_repo.NewCustomerRepo(txManager)
	orderRepo := order_repo.NewOrderRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	// --- Audit ---
	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}
	if getEnv("AUDIT_ENABLED", "true") == "true" {
		categoryRepo.EnableAudit(auditService)
		productRepo.EnableAudit(auditService)
		customerRepo.EnableAudit(auditService)
		orderRepo.EnableAudit(auditService)
	} else {
		auditService = nil
	}

	// --- JWT ---
	jwtSecret := mustEnv("JWT_SECRET")
	jwtConfig := auth.DefaultJWTConfig(jwtSecret)
	if ttl := getEnvDuration("JWT_ACCESS_TTL", 0); ttl > 0 {
		jwtConfig.AccessTokenTTL = ttl
	}
	jwtService := auth.NewJWTService(jwtConfig)

	// --- Services ---
	tenantService := tenant.NewService(registry)
	authService := auth.NewService(userRepo, jwtService, auth.DefaultServiceConfig())
	categoryService := category.NewService(categoryRepo, txManager)
	productService := product.NewService(productRepo, categoryRepo, txManager)
	customerService := customer.NewService(customerRepo, txManager)
	orderService := orders.NewService(orderRepo, customerRepo, productRepo, ordernum.New(txManager), txManager)
	reportsService := reports.NewService(reportRepo)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:          log,
		Pool:            pool,
		Registry:        registry,
		JWTValidator:    jwtService,
		TenantService:   tenantService,
		AuthService:     authService,
		CategoryService: categoryService,
		ProductService:  productService,
		CustomerService: customerService,
		OrderService:    orderService,
		ReportsService:  reportsService,
		AuditService:    auditService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

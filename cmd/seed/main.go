// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"billbook/internal/core/apperror"
	"billbook/internal/core/types"
	"billbook/internal/domain/auth"
	"billbook/internal/domain/catalogs/customer"
	"billbook/internal/domain/catalogs/item"
	"billbook/internal/domain/history"
	"billbook/internal/domain/settings"
	"billbook/internal/infrastructure/storage/postgres"
	"billbook/internal/infrastructure/storage/postgres/auth_repo"
	"billbook/internal/infrastructure/storage/postgres/catalog_repo"
	"billbook/internal/infrastructure/storage/postgres/history_repo"
	"billbook/internal/infrastructure/storage/postgres/settings_repo"
	"billbook/pkg/logger"
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

	if err := seedAdminUser(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123!"
	}

	repo := auth_repo.NewUserRepo(txManager)

	existing, err := repo.GetByUsername(ctx, username)
	if err == nil {
		log.Infow("admin user already exists", "username", existing.Username)
		return nil
	}
	if !apperror.IsNotFound(err) {
		return fmt.Errorf("check admin user: %w", err)
	}

	admin, err := auth.NewUser(username, password)
	if err != nil {
		return fmt.Errorf("build admin user: %w", err)
	}
	admin.IsAdmin = true

	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	log.Infow("admin user created", "username", username)
	return nil
}

func seedDemoData(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	historyService := history.NewService(history_repo.NewHistoryRepo(txManager), txManager)
	itemService := item.NewService(catalog_repo.NewItemRepo(txManager), txManager, historyService)
	customerService := customer.NewService(catalog_repo.NewCustomerRepo(txManager), txManager)
	settingsService := settings.NewService(settings_repo.NewSettingsRepo(txManager), txManager)

	profile := settings.Default()
	profile.CompanyName = "Sample Traders"
	profile.Address = "12 Market Road, Pune, MH 411001"
	profile.Phone = "+91 98765 43210"
	profile.Email = "billing@sampletraders.example"
	profile.GSTIN = "27AAAPL1234C1ZV"
	profile.BankName = "State Bank of India"
	profile.BankAccountNumber = "38012345678"
	profile.IFSCCode = "SBIN0001234"
	if err := settingsService.Update(ctx, profile); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}

	items := []*item.Item{
		demoItem("PVC Pipe 1in (3m)", "149.50", 120, "3917", "18"),
		demoItem("Cement Bag 50kg", "389.00", 80, "2523", "28"),
		demoItem("Wall Putty 20kg", "720.00", 35, "3214", "18"),
		demoItem("M-Seal 25g", "32.00", 200, "3506", "12"),
	}
	for _, it := range items {
		if err := itemService.Create(ctx, it); err != nil {
			if apperror.IsAppError(err) {
				log.Infow("item skipped", "name", it.Name, "reason", err.Error())
				continue
			}
			return fmt.Errorf("seed item %q: %w", it.Name, err)
		}
	}

	customers := []string{"Sharma Constructions", "Patel Hardware", "Walk-in"}
	for _, name := range customers {
		if _, err := customerService.ResolveOrCreate(ctx, name); err != nil {
			return fmt.Errorf("seed customer %q: %w", name, err)
		}
	}

	log.Info("demo data seeded")
	return nil
}

func demoItem(name, price string, stock int, hsn, taxRate string) *item.Item {
	it := item.NewItem(name, types.MustMoney(price))
	it.Stock = stock
	it.HSNSACNumber = &hsn
	it.TaxRate = types.MustMoney(taxRate)
	return it
}

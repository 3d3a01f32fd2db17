// Package main implements the database seeder: it wipes the users,
// clients and tasks collections and repopulates them with the accounts
// named in the seed configuration plus a set of generated demo data.
// Intended for development and demo environments only.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/phrazzld/crm-api/internal/config"
	"github.com/phrazzld/crm-api/internal/domain"
	"github.com/phrazzld/crm-api/internal/platform/logger"
	"github.com/phrazzld/crm-api/internal/platform/mongodb"
	"github.com/phrazzld/crm-api/internal/service/auth"
)

const (
	seedClients = 8
	seedTasks   = 10
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	lg, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("setting up logger: %w", err)
	}

	if cfg.Seed.AdminEmail == "" || cfg.Seed.ManagerEmail == "" {
		return fmt.Errorf("seed requires admin and manager credentials in configuration")
	}

	db, err := mongodb.Connect(ctx, cfg.Mongo, lg)
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			lg.Error("failed to close mongodb connection", "error", err)
		}
	}()

	users := mongodb.NewUserStore(db)
	clients := mongodb.NewClientStore(db)
	tasks := mongodb.NewTaskStore(db)

	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensuring user indexes: %w", err)
	}

	for name, wipe := range map[string]func(context.Context) error{
		"users":   users.DeleteAll,
		"clients": clients.DeleteAll,
		"tasks":   tasks.DeleteAll,
	} {
		if err := wipe(ctx); err != nil {
			return fmt.Errorf("wiping %s: %w", name, err)
		}
	}

	hasher := auth.NewBcryptHasher()

	admin, err := seedUser(ctx, users, hasher, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword, "Admin", domain.RoleAdmin)
	if err != nil {
		return err
	}
	manager, err := seedUser(ctx, users, hasher, cfg.Seed.ManagerEmail, cfg.Seed.ManagerPassword, "Manager", domain.RoleManager)
	if err != nil {
		return err
	}

	// Fixed seed keeps the demo data set reproducible across runs.
	faker := gofakeit.New(42)

	clientIDs := make([]string, 0, seedClients)
	for i := 0; i < seedClients; i++ {
		created, err := clients.Create(ctx, &domain.Client{
			Name:      faker.Name(),
			Email:     faker.Email(),
			Phone:     faker.Phone(),
			Company:   faker.Company(),
			Status:    domain.ClientStatuses[faker.IntRange(0, len(domain.ClientStatuses)-1)],
			ManagerID: manager.ID,
			Notes:     faker.Sentence(8),
		})
		if err != nil {
			return fmt.Errorf("seeding client %d: %w", i, err)
		}
		clientIDs = append(clientIDs, created.ID)
	}

	for i := 0; i < seedTasks; i++ {
		due := time.Now().UTC().AddDate(0, 0, faker.IntRange(1, 21))
		if _, err := tasks.Create(ctx, &domain.Task{
			Title:       faker.VerbAction() + " " + faker.NounConcrete(),
			Description: faker.Sentence(10),
			ClientID:    clientIDs[faker.IntRange(0, len(clientIDs)-1)],
			AssigneeID:  manager.ID,
			Status:      domain.TaskStatuses[faker.IntRange(0, len(domain.TaskStatuses)-1)],
			Priority:    domain.TaskPriorities[faker.IntRange(0, len(domain.TaskPriorities)-1)],
			DueDate:     due.Format("2006-01-02"),
		}); err != nil {
			return fmt.Errorf("seeding task %d: %w", i, err)
		}
	}

	lg.Info("seed complete",
		slog.String("admin", admin.Email),
		slog.String("manager", manager.Email),
		slog.Int("clients", seedClients),
		slog.Int("tasks", seedTasks))
	return nil
}

func seedUser(ctx context.Context, users *mongodb.UserStore, hasher auth.PasswordHasher, email, password, name string, role domain.Role) (*domain.User, error) {
	if password == "" {
		return nil, fmt.Errorf("missing password for seed user %s", email)
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password for %s: %w", email, err)
	}
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating seed user %s: %w", email, err)
	}
	return user, nil
}

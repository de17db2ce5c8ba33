package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"storerating/internal/config"
	"storerating/internal/db"
	apperrors "storerating/internal/errors"
	"storerating/internal/logger"
	"storerating/internal/model"
	"storerating/internal/repository"
	"storerating/internal/service"
)

const (
	demoOwnerName     = "Demo Store Owner Account"
	demoOwnerEmail    = "owner@storerating.local"
	demoOwnerPassword = "Owner#Demo1"
	demoStoreName     = "Demo Corner Store On Main Street"
	demoStoreEmail    = "store@storerating.local"
	demoStoreAddress  = "1 Main Street"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("starting seed")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, db.PoolOptions{}, log)
	if err != nil {
		log.WithError(err).Fatal("database init")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.WithError(err).Fatal("migrate")
	}
	log.Info("database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	storeRepo := repository.NewStoreRepository(gormDB)

	s := seeder{
		users:  service.NewUserService(userRepo, storeRepo),
		stores: service.NewStoreService(storeRepo, userRepo),
		finder: userRepo,
		log:    log,
	}
	if err := s.run(context.Background(), cfg.Seed); err != nil {
		log.WithError(err).Error("seed failed")
		os.Exit(1)
	}
	log.Info("seed completed successfully")
}

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type seeder struct {
	users  service.UserService
	stores service.StoreService
	finder userFinder
	log    logrus.FieldLogger
}

// run creates the admin account and, when enabled, a demo owner with one store.
// Accounts and stores that already exist are left alone.
func (s seeder) run(ctx context.Context, cfg config.SeedConfig) error {
	if cfg.AdminPassword == "" {
		return errors.New("SEED_ADMIN_PASSWORD is required")
	}

	if _, err := s.ensureUser(ctx, service.CreateUserInput{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Address:  cfg.AdminAddress,
		Role:     string(model.RoleAdmin),
	}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	if !cfg.Demo {
		return nil
	}

	owner, err := s.ensureUser(ctx, service.CreateUserInput{
		Name:     demoOwnerName,
		Email:    demoOwnerEmail,
		Password: demoOwnerPassword,
		Role:     string(model.RoleOwner),
	})
	if err != nil {
		return fmt.Errorf("seed demo owner: %w", err)
	}

	_, err = s.stores.CreateStore(ctx, service.CreateStoreInput{
		Name:    demoStoreName,
		Email:   demoStoreEmail,
		Address: demoStoreAddress,
		OwnerID: &owner.ID,
	})
	switch {
	case errors.Is(err, apperrors.ErrStoreEmailTaken):
		s.log.WithField("email", demoStoreEmail).Info("demo store already exists, skipping")
	case err != nil:
		return fmt.Errorf("seed demo store: %w", err)
	default:
		s.log.WithField("email", demoStoreEmail).Info("demo store created")
	}
	return nil
}

func (s seeder) ensureUser(ctx context.Context, in service.CreateUserInput) (*model.User, error) {
	user, err := s.users.CreateUser(ctx, in)
	if errors.Is(err, apperrors.ErrEmailTaken) {
		s.log.WithField("email", in.Email).Info("account already exists, skipping")
		return s.finder.FindByEmail(ctx, in.Email)
	}
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"email": user.Email, "role": user.Role}).Info("account created")
	return user, nil
}

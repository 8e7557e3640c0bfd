// Command bootstrap creates the initial admin account. Registration over
// the API only ever produces customer accounts, so the first admin has to
// be seeded out of band.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/sqlite"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const bootstrapTimeout = 30 * time.Second

type adminInput struct {
	username string
	email    string
	password string
}

func main() {
	_ = godotenv.Load()

	input := adminInput{}
	flag.StringVar(&input.username, "username", os.Getenv("ADMIN_USERNAME"), "admin login name")
	flag.StringVar(&input.email, "email", os.Getenv("ADMIN_EMAIL"), "admin email")
	flag.StringVar(&input.password, "password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	if input.username == "" || input.email == "" || len(input.password) < 8 {
		fmt.Fprintln(os.Stderr, "usage: bootstrap -username <name> -email <email> -password <min 8 chars>")
		os.Exit(1)
	}

	app := fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			sqlite.New,
			sqlite.NewTransactionManager,
			newPasswordHasher,
		),
		fx.Invoke(func(txManager repository.TransactionManager, hasher service.PasswordHasher, logger *slog.Logger) error {
			return createAdmin(txManager, hasher, logger, input)
		}),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()

	if err := app.Start(startCtx); err != nil {
		os.Exit(1)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer stopCancel()

	if err := app.Stop(stopCtx); err != nil {
		os.Exit(1)
	}
}

func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	return auth.NewBcryptHasher(cfg.Auth.BcryptCost)
}

func createAdmin(txManager repository.TransactionManager, hasher service.PasswordHasher, logger *slog.Logger, input adminInput) error {
	ctx, cancel := context.WithTimeout(context.Background(), bootstrapTimeout)
	defer cancel()

	hash, err := hasher.Hash(input.password)
	if err != nil {
		return errors.Wrap(err, "hash admin password")
	}

	admin := &entity.User{
		Username:     input.username,
		Email:        input.email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
	}

	err = txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.UserRepo().Create(ctx, admin)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			logger.Error("Admin account already exists", slog.String("username", input.username))

			return err
		}
		logger.Error("Failed to create admin account", slog.Any("error", err))

		return err
	}

	logger.Info("Admin account created",
		slog.Uint64("id", uint64(admin.ID)),
		slog.String("username", admin.Username))

	return nil
}

package service

import (
	"os"

	"projecthub/internal/models"
	"projecthub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeedAdminUser inserts a default admin account when the users table is
// empty, so a fresh deployment can log in. The password comes from
// ADMIN_SEED_PASSWORD; without it the seeder does nothing.
func SeedAdminUser(repo repository.UserRepository, logger *zap.Logger) error {
	count, err := repo.CountUsers()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_SEED_PASSWORD")
	if password == "" {
		logger.Warn("Users table is empty and ADMIN_SEED_PASSWORD is not set, skipping admin seed")
		return nil
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:        uuid.NewString(),
		FirstName: "Admin",
		Username:  "admin",
		Email:     "admin@localhost",
		Password:  passwordHash,
		Role:      models.RoleAdmin,
	}

	err = repo.Create(admin)
	if err != nil {
		// Lost a race against a concurrent registration, nothing to do.
		if repository.IsUniqueViolation(err) {
			return nil
		}
		return err
	}

	logger.Info("Seeded admin user", zap.String("id", admin.ID))
	return nil
}

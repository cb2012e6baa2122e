// Command seed-admin creates the first SUPER_ADMIN, or resets its password
// and role when the phone is already registered to an active user.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"shop_backoffice/internal/config"
	"shop_backoffice/internal/database"
	"shop_backoffice/internal/models"
	"shop_backoffice/internal/repositories"
	"shop_backoffice/pkg/utils"
)

const minPasswordLength = 6

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.InitLogger("production", "info")
		fatal(err, "Failed to load configuration")
	}
	utils.InitLogger(cfg.Env, cfg.LogLevel)

	phone := utils.Getenv("SEED_ADMIN_PHONE", "")
	password := utils.Getenv("SEED_ADMIN_PASSWORD", "")
	name := utils.Getenv("SEED_ADMIN_NAME", "Administrator")

	db, err := database.InitDB(cfg.DSN())
	if err != nil {
		fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.ApplySchema {
		if err := database.ApplySchema(ctx, db); err != nil {
			fatal(err, "Failed to apply schema")
		}
	}

	user, created, err := seedAdmin(ctx, repositories.NewUserRepository(db), phone, password, name)
	if err != nil {
		fatal(err, "Failed to seed admin")
	}
	utils.LogInfo("Super admin ready", map[string]interface{}{"id": user.ID, "phone": user.Phone, "created": created})
}

// seedAdmin upserts the super admin identified by phone.
func seedAdmin(ctx context.Context, users repositories.UserRepository, phone, password, name string) (*models.User, bool, error) {
	if phone == "" || password == "" {
		return nil, false, errors.New("SEED_ADMIN_PHONE and SEED_ADMIN_PASSWORD must be set")
	}
	if len(password) < minPasswordLength {
		return nil, false, fmt.Errorf("SEED_ADMIN_PASSWORD must be at least %d characters", minPasswordLength)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, false, err
	}

	existing, err := users.FindActiveByPhone(ctx, phone)
	switch {
	case err == nil:
		existing.PasswordHash = hash
		existing.Role = models.RoleSuperAdmin
		if err := users.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, false, err
	}

	user := &models.User{Phone: phone, PasswordHash: hash, Name: name, Role: models.RoleSuperAdmin}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, false, fmt.Errorf("phone %s belongs to a deactivated user: %w", phone, err)
		}
		return nil, false, err
	}
	return user, true, nil
}

func fatal(err error, message string) {
	utils.LogError(err, message)
	os.Exit(1)
}

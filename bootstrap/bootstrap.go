// Package bootstrap prepares the database before the HTTP listener starts.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"news-portal/models"
	"news-portal/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls schema creation and the seeded administrator.
type Options struct {
	WithImages    bool
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Run creates missing tables and seeds the default administrator. It is safe
// to call on every start: existing tables and accounts are left untouched.
func Run(ctx context.Context, db *gorm.DB, opts Options, log logrus.FieldLogger) error {
	if err := Migrate(ctx, db, opts.WithImages); err != nil {
		return err
	}
	log.Info("Database schema ready")

	created, err := SeedAdmin(ctx, repositories.NewUserRepository(db), opts)
	if err != nil {
		return err
	}
	if created {
		log.WithField("email", opts.AdminEmail).Info("Default administrator created")
	}
	return nil
}

func Migrate(ctx context.Context, db *gorm.DB, withImages bool) error {
	if db == nil {
		return errors.New("cannot migrate database with nil DB connection")
	}

	tables := []interface{}{&models.User{}, &models.Article{}}
	if withImages {
		tables = append(tables, &models.ArticleImage{})
	}
	if err := db.WithContext(ctx).AutoMigrate(tables...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}

// SeedAdmin creates the administrator account unless a user with the
// reserved email already exists. It reports whether an account was created.
func SeedAdmin(ctx context.Context, users repositories.UserRepository, opts Options) (bool, error) {
	_, err := users.GetByEmail(ctx, opts.AdminEmail)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return false, fmt.Errorf("failed to look up administrator: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash administrator password: %w", err)
	}

	admin := &models.User{
		Name:     opts.AdminName,
		Email:    opts.AdminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		// Another instance may have seeded concurrently.
		if errors.Is(err, repositories.ErrDuplicateEntry) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create administrator: %w", err)
	}
	return true, nil
}

package bootstrap_test

import (
	"context"
	"testing"

	"news-portal/bootstrap"
	"news-portal/models"
	"news-portal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testOptions() bootstrap.Options {
	return bootstrap.Options{
		WithImages:    true,
		AdminName:     "Administrator",
		AdminEmail:    "admin@news.com",
		AdminPassword: "admin123",
	}
}

func TestRunSeedsAdministratorOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t, false)

	require.NoError(t, bootstrap.Run(ctx, db, testOptions(), testutil.QuietLogger()))
	require.NoError(t, bootstrap.Run(ctx, db, testOptions(), testutil.QuietLogger()))

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)

	admin := users[0]
	assert.Equal(t, "admin@news.com", admin.Email)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NotEqual(t, "admin123", admin.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin123")))
}

func TestRunKeepsExistingData(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t, true)

	existing := &models.User{Name: "Editor", Email: "admin@news.com", Password: "keep", Role: models.RoleUser}
	require.NoError(t, db.Create(existing).Error)
	require.NoError(t, db.Create(&models.Article{Title: "t", Content: "c", Category: models.CategoryHealth, Visible: true}).Error)

	require.NoError(t, bootstrap.Run(ctx, db, testOptions(), testutil.QuietLogger()))

	var user models.User
	require.NoError(t, db.First(&user, existing.ID).Error)
	assert.Equal(t, "keep", user.Password)
	assert.Equal(t, models.RoleUser, user.Role)

	var count int64
	require.NoError(t, db.Model(&models.Article{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMigrateImageTableIsOptional(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t, false)

	assert.True(t, db.Migrator().HasTable(&models.Article{}))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.False(t, db.Migrator().HasTable(&models.ArticleImage{}))

	require.NoError(t, bootstrap.Migrate(ctx, db, true))
	assert.True(t, db.Migrator().HasTable(&models.ArticleImage{}))
}

func TestMigrateRejectsNilDB(t *testing.T) {
	assert.Error(t, bootstrap.Migrate(context.Background(), nil, true))
}

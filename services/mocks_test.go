package services

import (
	"context"

	"news-portal/models"

	"github.com/stretchr/testify/mock"
)

type mockArticleRepository struct {
	mock.Mock
}

func (m *mockArticleRepository) ListVisible(ctx context.Context, category models.Category) ([]models.ArticleView, error) {
	args := m.Called(ctx, category)
	views, _ := args.Get(0).([]models.ArticleView)
	return views, args.Error(1)
}

func (m *mockArticleRepository) GetVisible(ctx context.Context, id uint) (*models.ArticleView, error) {
	args := m.Called(ctx, id)
	view, _ := args.Get(0).(*models.ArticleView)
	return view, args.Error(1)
}

func (m *mockArticleRepository) ListAll(ctx context.Context, category models.Category) ([]models.ArticleView, error) {
	args := m.Called(ctx, category)
	views, _ := args.Get(0).([]models.ArticleView)
	return views, args.Error(1)
}

func (m *mockArticleRepository) GetByID(ctx context.Context, id uint) (*models.ArticleView, error) {
	args := m.Called(ctx, id)
	view, _ := args.Get(0).(*models.ArticleView)
	return view, args.Error(1)
}

func (m *mockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	return m.Called(ctx, article).Error(0)
}

func (m *mockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	return m.Called(ctx, article).Error(0)
}

func (m *mockArticleRepository) SetVisibility(ctx context.Context, id uint, visible bool) error {
	return m.Called(ctx, id, visible).Error(0)
}

func (m *mockArticleRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockImageRepository struct {
	mock.Mock
}

func (m *mockImageRepository) FirstVisible(ctx context.Context, articleID uint) (*models.ArticleImage, error) {
	args := m.Called(ctx, articleID)
	img, _ := args.Get(0).(*models.ArticleImage)
	return img, args.Error(1)
}

func (m *mockImageRepository) ListVisible(ctx context.Context, articleID uint) ([]models.ArticleImage, error) {
	args := m.Called(ctx, articleID)
	images, _ := args.Get(0).([]models.ArticleImage)
	return images, args.Error(1)
}

func (m *mockImageRepository) Add(ctx context.Context, image *models.ArticleImage, order *int) error {
	return m.Called(ctx, image, order).Error(0)
}

func (m *mockImageRepository) Delete(ctx context.Context, articleID, imageID uint) error {
	return m.Called(ctx, articleID, imageID).Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

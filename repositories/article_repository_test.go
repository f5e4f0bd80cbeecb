package repositories_test

import (
	"context"
	"testing"
	"time"

	"news-portal/models"
	"news-portal/repositories"
	"news-portal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type ArticleRepositoryTestSuite struct {
	suite.Suite
	ctx    context.Context
	db     *gorm.DB
	repo   repositories.ArticleRepository
	author models.User
	base   time.Time
}

func (s *ArticleRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewDB(s.T(), true)
	s.repo = repositories.NewArticleRepository(s.db, repositories.QueryOptions{WithAuthor: true, WithImages: true})
	s.base = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	s.author = models.User{Name: "Ana", Email: "ana@news.com", Password: "x", Role: models.RoleUser}
	s.Require().NoError(s.db.Create(&s.author).Error)
}

func (s *ArticleRepositoryTestSuite) seed(title string, category models.Category, visible bool, offset time.Duration, author *uint) *models.Article {
	article := &models.Article{
		Title:     title,
		Content:   "content of " + title,
		Category:  category,
		Visible:   visible,
		AuthorID:  author,
		CreatedAt: s.base.Add(offset),
	}
	s.Require().NoError(s.repo.Create(s.ctx, article))
	s.Require().NotZero(article.ID)
	return article
}

func (s *ArticleRepositoryTestSuite) titles(views []models.ArticleView) []string {
	titles := make([]string, 0, len(views))
	for _, v := range views {
		titles = append(titles, v.Title)
	}
	return titles
}

func (s *ArticleRepositoryTestSuite) TestListVisibleFiltersAndOrders() {
	s.seed("old sports", models.CategorySports, true, 0, &s.author.ID)
	s.seed("hidden politics", models.CategoryPolitics, false, time.Hour, nil)
	s.seed("new tech", models.CategoryTechnology, true, 2*time.Hour, nil)
	s.seed("newer sports", models.CategorySports, true, 3*time.Hour, nil)

	all, err := s.repo.ListVisible(s.ctx, models.CategoryAll)
	s.Require().NoError(err)
	s.Equal([]string{"newer sports", "new tech", "old sports"}, s.titles(all))

	empty, err := s.repo.ListVisible(s.ctx, "")
	s.Require().NoError(err)
	s.Equal(s.titles(all), s.titles(empty))

	sports, err := s.repo.ListVisible(s.ctx, models.CategorySports)
	s.Require().NoError(err)
	s.Equal([]string{"newer sports", "old sports"}, s.titles(sports))

	politics, err := s.repo.ListVisible(s.ctx, models.CategoryPolitics)
	s.Require().NoError(err)
	s.NotNil(politics)
	s.Empty(politics)
}

func (s *ArticleRepositoryTestSuite) TestListVisibleOnlyReturnsRequestedCategory() {
	for i, c := range models.Categories {
		s.seed(string(c)+" visible", c, true, time.Duration(i)*time.Minute, nil)
		s.seed(string(c)+" hidden", c, false, time.Duration(i)*time.Minute, nil)
	}

	for _, c := range models.Categories {
		views, err := s.repo.ListVisible(s.ctx, c)
		s.Require().NoError(err)
		s.Require().Len(views, 1, c)
		s.Equal(c, views[0].Category)
		s.True(views[0].Visible)
	}
}

func (s *ArticleRepositoryTestSuite) TestListVisibleBreaksTiesByNewestID() {
	first := s.seed("first", models.CategoryHealth, true, 0, nil)
	second := s.seed("second", models.CategoryHealth, true, 0, nil)

	views, err := s.repo.ListVisible(s.ctx, models.CategoryAll)
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal(second.ID, views[0].ID)
	s.Equal(first.ID, views[1].ID)
}

func (s *ArticleRepositoryTestSuite) TestAuthorJoinKeepsAuthorlessArticles() {
	with := s.seed("with author", models.CategoryEconomy, true, time.Hour, &s.author.ID)
	s.seed("without author", models.CategoryEconomy, true, 0, nil)

	views, err := s.repo.ListVisible(s.ctx, models.CategoryEconomy)
	s.Require().NoError(err)
	s.Require().Len(views, 2)

	s.Equal(with.ID, views[0].ID)
	s.Require().NotNil(views[0].Author)
	s.Equal("Ana", *views[0].Author)
	s.Nil(views[1].Author)
	s.Nil(views[1].AuthorID)
}

func (s *ArticleRepositoryTestSuite) TestHasImagesDoesNotDuplicateRows() {
	article := s.seed("gallery", models.CategoryEntertainment, true, 0, nil)
	s.seed("plain", models.CategoryEntertainment, true, -time.Hour, nil)

	images := repositories.NewImageRepository(s.db)
	for i := 0; i < 3; i++ {
		s.Require().NoError(images.Add(s.ctx, &models.ArticleImage{ArticleID: article.ID, Data: []byte{byte(i)}, MimeType: "image/png"}, nil))
	}

	views, err := s.repo.ListVisible(s.ctx, models.CategoryAll)
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.True(views[0].HasImages)
	s.False(views[1].HasImages)
}

func (s *ArticleRepositoryTestSuite) TestGetVisible() {
	visible := s.seed("visible", models.CategorySports, true, 0, &s.author.ID)
	hidden := s.seed("hidden", models.CategoryPolitics, false, 0, nil)

	got, err := s.repo.GetVisible(s.ctx, visible.ID)
	s.Require().NoError(err)
	s.Equal("visible", got.Title)
	s.Equal(models.CategorySports, got.Category)
	s.Require().NotNil(got.Author)
	s.Equal("Ana", *got.Author)

	_, err = s.repo.GetVisible(s.ctx, hidden.ID)
	s.ErrorIs(err, repositories.ErrNotFound)

	_, err = s.repo.GetVisible(s.ctx, 9999)
	s.ErrorIs(err, repositories.ErrNotFound)

	adminView, err := s.repo.GetByID(s.ctx, hidden.ID)
	s.Require().NoError(err)
	s.False(adminView.Visible)
}

func (s *ArticleRepositoryTestSuite) TestListAllIncludesHidden() {
	s.seed("shown", models.CategorySports, true, time.Hour, nil)
	s.seed("hidden", models.CategorySports, false, 0, nil)

	views, err := s.repo.ListAll(s.ctx, models.CategorySports)
	s.Require().NoError(err)
	s.Equal([]string{"shown", "hidden"}, s.titles(views))
}

func (s *ArticleRepositoryTestSuite) TestCreateStoresHiddenArticle() {
	article := s.seed("draft", models.CategoryHealth, false, 0, nil)

	var stored models.Article
	s.Require().NoError(s.db.First(&stored, article.ID).Error)
	s.False(stored.Visible)
	s.False(stored.CreatedAt.IsZero())
	s.False(stored.UpdatedAt.IsZero())
}

func (s *ArticleRepositoryTestSuite) TestCreateRejectsUnknownCategory() {
	err := s.repo.Create(s.ctx, &models.Article{Title: "x", Content: "y", Category: "otros", Visible: true})
	s.Error(err)
}

func (s *ArticleRepositoryTestSuite) TestUpdateRefreshesUpdatedAt() {
	article := s.seed("before", models.CategoryHealth, true, 0, nil)
	var before models.Article
	s.Require().NoError(s.db.First(&before, article.ID).Error)

	time.Sleep(10 * time.Millisecond)
	article.Title = "after"
	article.Category = models.CategoryEconomy
	s.Require().NoError(s.repo.Update(s.ctx, article))

	var after models.Article
	s.Require().NoError(s.db.First(&after, article.ID).Error)
	s.Equal("after", after.Title)
	s.Equal(models.CategoryEconomy, after.Category)
	s.True(after.UpdatedAt.After(before.UpdatedAt))
	s.True(after.CreatedAt.Equal(before.CreatedAt))

	err := s.repo.Update(s.ctx, &models.Article{ID: 9999, Title: "x", Content: "y", Category: models.CategoryHealth})
	s.ErrorIs(err, repositories.ErrNotFound)
}

func (s *ArticleRepositoryTestSuite) TestSetVisibility() {
	article := s.seed("toggle", models.CategoryHealth, true, 0, nil)

	s.Require().NoError(s.repo.SetVisibility(s.ctx, article.ID, false))
	_, err := s.repo.GetVisible(s.ctx, article.ID)
	s.ErrorIs(err, repositories.ErrNotFound)

	s.Require().NoError(s.repo.SetVisibility(s.ctx, article.ID, true))
	_, err = s.repo.GetVisible(s.ctx, article.ID)
	s.NoError(err)

	s.ErrorIs(s.repo.SetVisibility(s.ctx, 9999, true), repositories.ErrNotFound)
}

func (s *ArticleRepositoryTestSuite) TestDeleteRemovesImages() {
	article := s.seed("doomed", models.CategoryHealth, true, 0, nil)
	images := repositories.NewImageRepository(s.db)
	s.Require().NoError(images.Add(s.ctx, &models.ArticleImage{ArticleID: article.ID, Data: []byte("x"), MimeType: "image/gif"}, nil))

	s.Require().NoError(s.repo.Delete(s.ctx, article.ID))

	var count int64
	s.Require().NoError(s.db.Model(&models.ArticleImage{}).Where("article_id = ?", article.ID).Count(&count).Error)
	s.Zero(count)
	s.ErrorIs(s.repo.Delete(s.ctx, article.ID), repositories.ErrNotFound)
}

func TestArticleRepositorySuite(t *testing.T) {
	suite.Run(t, new(ArticleRepositoryTestSuite))
}

func TestArticleRepositoryWithoutOptionalJoins(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t, false)
	repo := repositories.NewArticleRepository(db, repositories.QueryOptions{})

	author := models.User{Name: "Ana", Email: "ana@news.com", Password: "x"}
	require.NoError(t, db.Create(&author).Error)
	require.NoError(t, repo.Create(ctx, &models.Article{Title: "t", Content: "c", Category: models.CategorySports, Visible: true, AuthorID: &author.ID}))

	views, err := repo.ListVisible(ctx, models.CategoryAll)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].Author)
	assert.False(t, views[0].HasImages)
	require.NotNil(t, views[0].AuthorID)
	assert.Equal(t, author.ID, *views[0].AuthorID)

	require.NoError(t, repo.Delete(ctx, views[0].ID))
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"news-portal/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	ListVisible(ctx context.Context, category models.Category) ([]models.ArticleView, error)
	GetVisible(ctx context.Context, id uint) (*models.ArticleView, error)
	ListAll(ctx context.Context, category models.Category) ([]models.ArticleView, error)
	GetByID(ctx context.Context, id uint) (*models.ArticleView, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	SetVisibility(ctx context.Context, id uint, visible bool) error
	Delete(ctx context.Context, id uint) error
}

type articleRepository struct {
	db   *gorm.DB
	opts QueryOptions
}

func NewArticleRepository(db *gorm.DB, opts QueryOptions) ArticleRepository {
	return &articleRepository{db: db, opts: opts}
}

const articleColumns = "a.id, a.title, a.content, a.category, a.image, a.visible, a.author_id, a.created_at, a.updated_at"

// baseQuery projects the article columns plus the joins enabled in opts.
func (r *articleRepository) baseQuery(ctx context.Context) *gorm.DB {
	columns := articleColumns
	query := r.db.WithContext(ctx).Table("articles AS a")

	if r.opts.WithAuthor {
		columns += ", u.name AS author"
		query = query.Joins("LEFT JOIN users u ON u.id = a.author_id")
	}
	if r.opts.WithImages {
		columns += ", EXISTS (SELECT 1 FROM article_images ai WHERE ai.article_id = a.id) AS has_images"
	}

	return query.Select(columns)
}

func (r *articleRepository) list(ctx context.Context, category models.Category, visibleOnly bool) ([]models.ArticleView, error) {
	query := r.baseQuery(ctx)

	if visibleOnly {
		query = query.Where("a.visible = ?", true)
	}
	if !category.IsAll() {
		query = query.Where("a.category = ?", category)
	}

	articles := []models.ArticleView{}
	err := query.Order("a.created_at DESC").Order("a.id DESC").Scan(&articles).Error
	if err != nil {
		return nil, fmt.Errorf("list articles (category=%q): %w", category, err)
	}
	return articles, nil
}

func (r *articleRepository) get(ctx context.Context, id uint, visibleOnly bool) (*models.ArticleView, error) {
	query := r.baseQuery(ctx).Where("a.id = ?", id)
	if visibleOnly {
		query = query.Where("a.visible = ?", true)
	}

	var articles []models.ArticleView
	if err := query.Limit(1).Scan(&articles).Error; err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	if len(articles) == 0 {
		return nil, ErrNotFound
	}
	return &articles[0], nil
}

func (r *articleRepository) ListVisible(ctx context.Context, category models.Category) ([]models.ArticleView, error) {
	return r.list(ctx, category, true)
}

func (r *articleRepository) GetVisible(ctx context.Context, id uint) (*models.ArticleView, error) {
	return r.get(ctx, id, true)
}

func (r *articleRepository) ListAll(ctx context.Context, category models.Category) ([]models.ArticleView, error) {
	return r.list(ctx, category, false)
}

func (r *articleRepository) GetByID(ctx context.Context, id uint) (*models.ArticleView, error) {
	return r.get(ctx, id, false)
}

// Create inserts the article. Columns are selected explicitly so that a false
// visibility is stored instead of the column default.
func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Select("Title", "Content", "Category", "Image", "Visible", "AuthorID", "CreatedAt", "UpdatedAt").
			Create(article).Error
		if err != nil {
			return fmt.Errorf("create article: %w", err)
		}
		return nil
	})
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureArticle(tx, article.ID); err != nil {
			return err
		}
		err := tx.Model(&models.Article{ID: article.ID}).
			Select("Title", "Content", "Category", "Image").
			Updates(article).Error
		if err != nil {
			return fmt.Errorf("update article %d: %w", article.ID, err)
		}
		return nil
	})
}

func (r *articleRepository) SetVisibility(ctx context.Context, id uint, visible bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureArticle(tx, id); err != nil {
			return err
		}
		err := tx.Model(&models.Article{ID: id}).Update("visible", visible).Error
		if err != nil {
			return fmt.Errorf("set visibility of article %d: %w", id, err)
		}
		return nil
	})
}

// Delete removes the article together with its images.
func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureArticle(tx, id); err != nil {
			return err
		}
		if r.opts.WithImages {
			if err := tx.Where("article_id = ?", id).Delete(&models.ArticleImage{}).Error; err != nil {
				return fmt.Errorf("delete images of article %d: %w", id, err)
			}
		}
		if err := tx.Delete(&models.Article{}, id).Error; err != nil {
			return fmt.Errorf("delete article %d: %w", id, err)
		}
		return nil
	})
}

func ensureArticle(tx *gorm.DB, id uint) error {
	var article models.Article
	err := tx.Select("id").Take(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find article %d: %w", id, err)
	}
	return nil
}

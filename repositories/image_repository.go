package repositories

import (
	"context"
	"errors"
	"fmt"

	"news-portal/models"

	"gorm.io/gorm"
)

type ImageRepository interface {
	FirstVisible(ctx context.Context, articleID uint) (*models.ArticleImage, error)
	ListVisible(ctx context.Context, articleID uint) ([]models.ArticleImage, error)
	Add(ctx context.Context, image *models.ArticleImage, order *int) error
	Delete(ctx context.Context, articleID, imageID uint) error
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

// visibleImages restricts images to those of a visible article, ordered by
// display order with insertion order as the tie-break.
func (r *imageRepository) visibleImages(ctx context.Context, articleID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.ArticleImage{}).
		Select("article_images.*").
		Joins("JOIN articles ON articles.id = article_images.article_id").
		Where("article_images.article_id = ? AND articles.visible = ?", articleID, true).
		Order("article_images.sort_order ASC").
		Order("article_images.id ASC")
}

func (r *imageRepository) FirstVisible(ctx context.Context, articleID uint) (*models.ArticleImage, error) {
	var image models.ArticleImage
	err := r.visibleImages(ctx, articleID).Take(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("first image of article %d: %w", articleID, err)
	}
	return &image, nil
}

func (r *imageRepository) ListVisible(ctx context.Context, articleID uint) ([]models.ArticleImage, error) {
	images := []models.ArticleImage{}
	if err := r.visibleImages(ctx, articleID).Find(&images).Error; err != nil {
		return nil, fmt.Errorf("list images of article %d: %w", articleID, err)
	}
	return images, nil
}

// Add attaches image to its article. A nil order appends after the current
// highest order.
func (r *imageRepository) Add(ctx context.Context, image *models.ArticleImage, order *int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureArticle(tx, image.ArticleID); err != nil {
			return err
		}

		if order != nil {
			image.SortOrder = *order
		} else {
			var next int
			err := tx.Model(&models.ArticleImage{}).
				Select("COALESCE(MAX(sort_order) + 1, 0)").
				Where("article_id = ?", image.ArticleID).
				Scan(&next).Error
			if err != nil {
				return fmt.Errorf("next image order of article %d: %w", image.ArticleID, err)
			}
			image.SortOrder = next
		}

		if err := tx.Select("ArticleID", "Data", "MimeType", "SortOrder", "CreatedAt").Create(image).Error; err != nil {
			return fmt.Errorf("add image to article %d: %w", image.ArticleID, err)
		}
		return nil
	})
}

func (r *imageRepository) Delete(ctx context.Context, articleID, imageID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND article_id = ?", imageID, articleID).
		Delete(&models.ArticleImage{})
	if result.Error != nil {
		return fmt.Errorf("delete image %d of article %d: %w", imageID, articleID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

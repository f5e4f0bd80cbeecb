package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"news-portal/models"
	"news-portal/repositories"

	"github.com/gabriel-vasile/mimetype"
)

const (
	msgArticleNotFound = "News article not found"
	msgImagesNotFound  = "No images found"
	msgImageNotFound   = "Image not found"
)

type ArticleService interface {
	ListPublic(ctx context.Context, category models.Category) ([]models.ArticleView, error)
	GetPublic(ctx context.Context, id uint) (*models.ArticleView, error)
	FirstImage(ctx context.Context, articleID uint) (*models.ArticleImage, error)
	ListImages(ctx context.Context, articleID uint) ([]models.ImagePayload, error)

	ListAll(ctx context.Context, category models.Category) ([]models.ArticleView, error)
	Get(ctx context.Context, id uint) (*models.ArticleView, error)
	Create(ctx context.Context, req models.CreateArticleRequest, authorID uint) (*models.ArticleView, error)
	Update(ctx context.Context, id uint, req models.UpdateArticleRequest) (*models.ArticleView, error)
	SetVisibility(ctx context.Context, id uint, visible bool) error
	Delete(ctx context.Context, id uint) error
	AddImage(ctx context.Context, upload models.ImageUpload) (*models.ArticleImage, error)
	DeleteImage(ctx context.Context, articleID, imageID uint) error
}

type articleService struct {
	articleRepo   repositories.ArticleRepository
	imageRepo     repositories.ImageRepository
	maxImageBytes int64
}

// NewArticleService builds the article use cases. imageRepo may be nil when
// image attachments are disabled.
func NewArticleService(articleRepo repositories.ArticleRepository, imageRepo repositories.ImageRepository, maxImageBytes int64) ArticleService {
	return &articleService{
		articleRepo:   articleRepo,
		imageRepo:     imageRepo,
		maxImageBytes: maxImageBytes,
	}
}

func notFound(err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return models.ErrorNotFound{Message: message}
	}
	return err
}

func (s *articleService) ListPublic(ctx context.Context, category models.Category) ([]models.ArticleView, error) {
	return s.articleRepo.ListVisible(ctx, category)
}

func (s *articleService) GetPublic(ctx context.Context, id uint) (*models.ArticleView, error) {
	article, err := s.articleRepo.GetVisible(ctx, id)
	if err != nil {
		return nil, notFound(err, msgArticleNotFound)
	}
	return article, nil
}

func (s *articleService) FirstImage(ctx context.Context, articleID uint) (*models.ArticleImage, error) {
	if s.imageRepo == nil {
		return nil, models.ErrorNotFound{Message: msgImagesNotFound}
	}
	image, err := s.imageRepo.FirstVisible(ctx, articleID)
	if err != nil {
		return nil, notFound(err, msgImagesNotFound)
	}
	return image, nil
}

func (s *articleService) ListImages(ctx context.Context, articleID uint) ([]models.ImagePayload, error) {
	if s.imageRepo == nil {
		return nil, models.ErrorNotFound{Message: msgImagesNotFound}
	}
	images, err := s.imageRepo.ListVisible(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, models.ErrorNotFound{Message: msgImagesNotFound}
	}

	payloads := make([]models.ImagePayload, 0, len(images))
	for _, img := range images {
		payloads = append(payloads, img.Payload())
	}
	return payloads, nil
}

func (s *articleService) ListAll(ctx context.Context, category models.Category) ([]models.ArticleView, error) {
	return s.articleRepo.ListAll(ctx, category)
}

func (s *articleService) Get(ctx context.Context, id uint) (*models.ArticleView, error) {
	article, err := s.articleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, msgArticleNotFound)
	}
	return article, nil
}

func (s *articleService) Create(ctx context.Context, req models.CreateArticleRequest, authorID uint) (*models.ArticleView, error) {
	if !req.Category.Valid() {
		return nil, models.ErrorBadRequest{Message: fmt.Sprintf("invalid category %q", req.Category)}
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}

	article := &models.Article{
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
		Visible:  visible,
	}
	if article.Title == "" {
		return nil, models.ErrorBadRequest{Message: "title must not be empty"}
	}
	if authorID != 0 {
		article.AuthorID = &authorID
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, err
	}
	return s.Get(ctx, article.ID)
}

func (s *articleService) Update(ctx context.Context, id uint, req models.UpdateArticleRequest) (*models.ArticleView, error) {
	if !req.Category.Valid() {
		return nil, models.ErrorBadRequest{Message: fmt.Sprintf("invalid category %q", req.Category)}
	}

	article := &models.Article{
		ID:       id,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
	}
	if article.Title == "" {
		return nil, models.ErrorBadRequest{Message: "title must not be empty"}
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		return nil, notFound(err, msgArticleNotFound)
	}
	return s.Get(ctx, id)
}

func (s *articleService) SetVisibility(ctx context.Context, id uint, visible bool) error {
	return notFound(s.articleRepo.SetVisibility(ctx, id, visible), msgArticleNotFound)
}

func (s *articleService) Delete(ctx context.Context, id uint) error {
	return notFound(s.articleRepo.Delete(ctx, id), msgArticleNotFound)
}

func (s *articleService) AddImage(ctx context.Context, upload models.ImageUpload) (*models.ArticleImage, error) {
	if s.imageRepo == nil {
		return nil, models.ErrorNotFound{Message: "image attachments are disabled"}
	}
	if len(upload.Data) == 0 {
		return nil, models.ErrorBadRequest{Message: "image is empty"}
	}
	if int64(len(upload.Data)) > s.maxImageBytes {
		return nil, models.ErrorBadRequest{Message: fmt.Sprintf("image exceeds %d bytes", s.maxImageBytes)}
	}
	if upload.Order != nil && *upload.Order < 0 {
		return nil, models.ErrorBadRequest{Message: "order must not be negative"}
	}

	mime := mimetype.Detect(upload.Data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, models.ErrorBadRequest{Message: fmt.Sprintf("unsupported content type %s", mime.String())}
	}

	image := &models.ArticleImage{
		ArticleID: upload.ArticleID,
		Data:      upload.Data,
		MimeType:  mime.String(),
	}
	if err := s.imageRepo.Add(ctx, image, upload.Order); err != nil {
		return nil, notFound(err, msgArticleNotFound)
	}
	return image, nil
}

func (s *articleService) DeleteImage(ctx context.Context, articleID, imageID uint) error {
	if s.imageRepo == nil {
		return models.ErrorNotFound{Message: msgImageNotFound}
	}
	return notFound(s.imageRepo.Delete(ctx, articleID, imageID), msgImageNotFound)
}

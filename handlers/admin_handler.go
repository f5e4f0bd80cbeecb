package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"news-portal/helper"
	"news-portal/middleware"
	"news-portal/models"
	"news-portal/services"

	"github.com/gin-gonic/gin"
)

// multipartOverhead is the room left for form fields and boundaries on top of
// the image size limit.
const multipartOverhead = 1 << 20

type AdminHandler struct {
	articleService services.ArticleService
	authService    services.AuthService
	maxImageBytes  int64
	Helper         *helper.HTTPHelper
}

func NewAdminHandler(articleService services.ArticleService, authService services.AuthService, maxImageBytes int64, h *helper.HTTPHelper) *AdminHandler {
	return &AdminHandler{
		articleService: articleService,
		authService:    authService,
		maxImageBytes:  maxImageBytes,
		Helper:         h,
	}
}

func (h *AdminHandler) ListArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendError(c, http.StatusBadRequest, "Invalid query")
		return
	}

	articles, err := h.articleService.ListAll(c.Request.Context(), params.Category)
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, articles)
}

func (h *AdminHandler) GetArticle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.Helper.SendError(c, http.StatusNotFound, msgArticleNotFound)
		return
	}

	article, err := h.articleService.Get(c.Request.Context(), id)
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *AdminHandler) CreateArticle(c *gin.Context) {
	var req models.CreateArticleRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, article)
}

func (h *AdminHandler) UpdateArticle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.Helper.SendError(c, http.StatusNotFound, msgArticleNotFound)
		return
	}

	var req models.UpdateArticleRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (h *AdminHandler) SetVisibility(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.Helper.SendError(c, http.StatusNotFound, msgArticleNotFound)
		return
	}

	var req models.VisibilityRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	if err := h.articleService.SetVisibility(c.Request.Context(), id, *req.Visible); err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "visible": *req.Visible})
}

func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.Helper.SendError(c, http.StatusNotFound, msgArticleNotFound)
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), id); err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted successfully"})
}

// UploadImage stores the multipart file "imagen" with an optional "orden".
func (h *AdminHandler) UploadImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.Helper.SendError(c, http.StatusNotFound, msgArticleNotFound)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxImageBytes+multipartOverhead)

	fileHeader, err := c.FormFile("imagen")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.Helper.SendError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("image exceeds %d bytes", h.maxImageBytes))
			return
		}
		h.Helper.SendError(c, http.StatusBadRequest, "imagen file is required")
		return
	}
	if fileHeader.Size > h.maxImageBytes {
		h.Helper.SendError(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("image exceeds %d bytes", h.maxImageBytes))
		return
	}

	upload := models.ImageUpload{ArticleID: id}
	if raw := c.PostForm("orden"); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil {
			h.Helper.SendError(c, http.StatusBadRequest, "orden must be an integer")
			return
		}
		upload.Order = &order
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}
	defer file.Close()

	upload.Data, err = io.ReadAll(io.LimitReader(file, h.maxImageBytes+1))
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	image, err := h.articleService.AddImage(c.Request.Context(), upload)
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, image)
}

func (h *AdminHandler) DeleteImage(c *gin.Context) {
	articleID, ok := parseID(c, "id")
	if !ok {
		h.Helper.SendError(c, http.StatusNotFound, msgArticleNotFound)
		return
	}
	imageID, ok := parseID(c, "imageId")
	if !ok {
		h.Helper.SendError(c, http.StatusNotFound, "Image not found")
		return
	}

	if err := h.articleService.DeleteImage(c.Request.Context(), articleID, imageID); err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

package handlers

import (
	"net/http"
	"strconv"

	"news-portal/helper"
	"news-portal/models"
	"news-portal/services"

	"github.com/gin-gonic/gin"
)

const msgArticleNotFound = "News article not found"

type ArticleHandler struct {
	articleService services.ArticleService
	Helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService, h *helper.HTTPHelper) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, Helper: h}
}

// parseID reads a numeric path parameter. ok is false for anything that is
// not a positive integer.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *ArticleHandler) ListArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendError(c, http.StatusBadRequest, "Invalid query")
		return
	}

	articles, err := h.articleService.ListPublic(c.Request.Context(), params.Category)
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.Helper.SendError(c, http.StatusNotFound, msgArticleNotFound)
		return
	}

	article, err := h.articleService.GetPublic(c.Request.Context(), id)
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

// GetImages answers with every image as JSON, or with the raw bytes of the
// first one when ?first=true.
func (h *ArticleHandler) GetImages(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.Helper.SendError(c, http.StatusNotFound, "No images found")
		return
	}

	first, _ := strconv.ParseBool(c.Query("first"))
	if first {
		image, err := h.articleService.FirstImage(c.Request.Context(), id)
		if err != nil {
			h.Helper.HandleError(c, err)
			return
		}
		c.Data(http.StatusOK, image.MimeType, image.Data)
		return
	}

	images, err := h.articleService.ListImages(c.Request.Context(), id)
	if err != nil {
		h.Helper.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, images)
}

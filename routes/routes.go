package routes

import (
	"net/http"

	"news-portal/config"
	"news-portal/handlers"
	"news-portal/helper"
	"news-portal/middleware"
	"news-portal/models"
	"news-portal/repositories"
	"news-portal/services"
	"news-portal/web"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers over db and returns the
// router. Image routes exist only when cfg.FeatureImages is set.
func Setup(cfg *config.Config, db *gorm.DB, log *logrus.Logger) (*gin.Engine, error) {
	h, err := helper.NewHTTPHelper(log)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	opts := repositories.QueryOptions{
		WithAuthor: cfg.FeatureAuthorJoin,
		WithImages: cfg.FeatureImages,
	}
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db, opts)
	var imageRepo repositories.ImageRepository
	if cfg.FeatureImages {
		imageRepo = repositories.NewImageRepository(db)
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, []byte(cfg.JWTSecret), cfg.JWTExpiration)
	articleService := services.NewArticleService(articleRepo, imageRepo, cfg.MaxImageBytes)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, h)
	articleHandler := handlers.NewArticleHandler(articleService, h)
	adminHandler := handlers.NewAdminHandler(articleService, authService, cfg.MaxImageBytes, h)

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxImageBytes

	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}
	if cfg.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(log),
		secure.New(secureConfig),
		middleware.CORS(),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Pages
	router.GET("/", web.Page("index.html"))
	router.GET("/nota/:id", web.Page("nota.html"))
	router.GET("/static/*filepath", web.StaticHandler("/static"))

	api := router.Group("/api")
	{
		notas := api.Group("/notas")
		{
			notas.GET("", articleHandler.ListArticles)
			notas.GET("/:id", articleHandler.GetArticle)
			if cfg.FeatureImages {
				notas.GET("/:id/imagenes", articleHandler.GetImages)
			}
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		admin := api.Group("/admin")
		admin.Use(
			middleware.AuthMiddleware([]byte(cfg.JWTSecret), h),
			middleware.RequireRole(h, models.RoleAdmin),
		)
		{
			admin.GET("/profile", authHandler.GetProfile)
			admin.POST("/usuarios", adminHandler.CreateUser)

			articles := admin.Group("/notas")
			{
				articles.GET("", adminHandler.ListArticles)
				articles.GET("/:id", adminHandler.GetArticle)
				articles.POST("", adminHandler.CreateArticle)
				articles.PUT("/:id", adminHandler.UpdateArticle)
				articles.PATCH("/:id/visibilidad", adminHandler.SetVisibility)
				articles.DELETE("/:id", adminHandler.DeleteArticle)
				if cfg.FeatureImages {
					articles.POST("/:id/imagenes", adminHandler.UploadImage)
					articles.DELETE("/:id/imagenes/:imageId", adminHandler.DeleteImage)
				}
			}
		}
	}

	return router, nil
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/securedoc-app/securedoc/docs"
	"github.com/securedoc-app/securedoc/internal/config"
	"github.com/securedoc-app/securedoc/internal/identity"
	"github.com/securedoc-app/securedoc/internal/middleware"
	"github.com/securedoc-app/securedoc/internal/modules/handler"
	"github.com/securedoc-app/securedoc/internal/modules/serializer"
)

type RouterDeps struct {
	Config         *config.Config
	Log            *zap.Logger
	Verifier       identity.Verifier
	ProjectHandler *handler.ProjectHandler
	FileHandler    *handler.FileHandler
	AccountHandler *handler.AccountHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/app/api")
	{
		api.Use(middleware.BearerAuth(d.Verifier))

		api.GET("/me", d.AccountHandler.Me)
		api.GET("/me/stats", d.AccountHandler.Stats)

		projects := api.Group("/projects")
		{
			projects.POST("", d.ProjectHandler.CreateProject)
			projects.GET("", d.ProjectHandler.ListProjects)
			projects.GET("/:id", d.ProjectHandler.GetProject)
			projects.PATCH("/:id", d.ProjectHandler.RenameProject)
			projects.DELETE("/:id", d.ProjectHandler.DeleteProject)

			projects.POST("/:id/uploads", d.FileHandler.CreateUploadSlot)
			projects.POST("/:id/uploads/:uploadId/complete", d.FileHandler.ConfirmUpload)

			projects.GET("/:id/files", d.FileHandler.ListFiles)
			projects.DELETE("/:id/files/:fileId", d.FileHandler.DeleteFile)
			projects.GET("/:id/files/:fileId/download", d.FileHandler.DownloadFile)
		}
	}
	return r
}

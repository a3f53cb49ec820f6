package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "minisocial/internal/app"
	"minisocial/internal/bootstrap"
	"minisocial/internal/cache"
	rabbitmqClient "minisocial/internal/platform/rabbitmq"
	"minisocial/internal/repository"
	"minisocial/internal/transport/http/handler"
	"minisocial/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.LoadHTMLGlob("web/templates/*.html")
	router.Static("/public", "public")

	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	activityRepo := repository.NewActivityRepository(app.MySQL)

	feedCache := cache.NewFeedCache(
		app.Redis,
		time.Duration(app.Config.Redis.FeedTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.FeedDirtyTTLSeconds)*time.Second,
	)
	activityPublisher := rabbitmqClient.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	postService := appsvc.NewPostService(postRepo, activityRepo, activityPublisher, feedCache)

	authHandler := handler.NewAuthHandler(authService, app.Config.Auth)
	postHandler := handler.NewPostHandler(postService, app.Config.Auth.DuplicateEmailStatus)
	profileHandler := handler.NewProfileHandler(authService, postService, app.Config.Uploads, app.Config.Auth)
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/", authHandler.ShowWelcome)
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.GET("/profile/update", profileHandler.ShowUploadForm)
	router.GET("/healthz", healthHandler.Check)

	authorized := router.Group("")
	authorized.Use(middleware.SessionAuth(app.Config.Auth.JWTSecret))
	authorized.GET("/profile", profileHandler.Show)
	authorized.POST("/post", postHandler.Create)
	authorized.GET("/like/:postId", postHandler.ToggleLike)
	authorized.GET("/edit/:postId", postHandler.EditForm)
	authorized.POST("/update/:postId", postHandler.Update)
	authorized.GET("/delete/:postId", postHandler.Delete)
	authorized.POST("/upload-profile", profileHandler.Upload)

	return router
}

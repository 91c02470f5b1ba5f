package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "portfolio-backend/internal/app"
	"portfolio-backend/internal/bootstrap"
	"portfolio-backend/internal/cache"
	"portfolio-backend/internal/platform/rabbitmq"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/transport/http/handler"
	"portfolio-backend/internal/transport/http/middleware"
	"portfolio-backend/internal/transport/http/response"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.CORS())

	// Legacy clients expect 405 on any method the action tables do not cover.
	router.HandleMethodNotAllowed = true
	router.NoMethod(response.MethodNotAllowed)

	userRepo := repository.NewUserRepository(app.MySQL)
	workRepo := repository.NewWorkRepository(app.MySQL)
	favoriteRepo := repository.NewFavoriteRepository(app.MySQL)
	activityRepo := repository.NewActivityRepository(app.MySQL)

	publisher := rabbitmq.NewActivityPublisher(app.MQConn, app.Config.RabbitMQ.ActivityQueue)
	workListCache := cache.NewWorkListCache(
		app.Redis,
		time.Duration(app.Config.Redis.WorksTTLSeconds)*time.Second,
	)

	authService := appsvc.NewAuthService(userRepo, publisher)
	portfolioService := appsvc.NewPortfolioService(workRepo, favoriteRepo, workListCache, publisher)

	authHandler := handler.NewAuthHandler(authService)
	worksHandler := handler.NewWorksHandler(portfolioService)
	activityHandler := handler.NewActivityHandler(activityRepo)
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/healthz", healthHandler.Check)

	api := router.Group("/api")
	api.POST("/auth", authHandler.Handle)
	api.PUT("/auth", authHandler.UpdateProfile)
	api.GET("/works", worksHandler.List)
	api.POST("/works", worksHandler.Handle)
	api.DELETE("/works", worksHandler.Delete)
	api.GET("/activity", activityHandler.List)

	return router
}

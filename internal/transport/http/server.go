package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "userhub/internal/app"
	"userhub/internal/bootstrap"
	"userhub/internal/cache"
	"userhub/internal/platform/rabbitmq"
	"userhub/internal/repository"
	"userhub/internal/transport/http/handler"
	"userhub/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/health", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	publisher := rabbitmq.NewSignupEventPublisher(app.MQConn, app.Config.RabbitMQ.SignupEventQueue)
	userCache := cache.NewUserCache(app.Redis, time.Duration(app.Config.Redis.UserTTLSeconds)*time.Second)
	authService := appsvc.NewAuthService(
		userRepo,
		publisher,
		userCache,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	authHandler := handler.NewAuthHandler(authService)

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.GET("/users/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	return router
}

package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/shivam13669/storiesby-auth/internal/cache"
	"github.com/shivam13669/storiesby-auth/internal/config"
	"github.com/shivam13669/storiesby-auth/internal/handler"
	"github.com/shivam13669/storiesby-auth/internal/middleware"
	"github.com/shivam13669/storiesby-auth/internal/users"
)

func setupHTTP(ctx context.Context, cfg config.Server) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	repo := users.NewPostgresRepository(infra.DB)

	var userCache users.Cache
	if infra.Redis != nil {
		userCache = cache.NewUserCache(infra.Redis.Client, cfg.UserCacheTTL)
	}

	service := users.NewService(repo, userCache)
	authHandler := handler.NewHandler(service)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	authHandler.RegisterRoutes(router)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if infra.Redis != nil {
			_ = infra.Redis.Close()
		}
		return infra.DB.Close()
	}, nil
}

package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/3dmarket-backend/internal/handlers"
  "github.com/yungbote/3dmarket-backend/internal/middleware"
  "github.com/yungbote/3dmarket-backend/internal/types"
)

type RouterConfig struct {
  AuthHandler    *handlers.AuthHandler
  AuthMiddleware *middleware.AuthMiddleware
  UserHandler    *handlers.UserHandler
  AssetHandler   *handlers.AssetHandler
  PictureDir     string
  AvatarDir      string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // ===============
  // || Public    ||
  // ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.Static("/asset_picture", cfg.PictureDir)
  if cfg.AvatarDir != "" {
    router.Static("/user_avatar", cfg.AvatarDir)
  }

  api := router.Group("/api")
  api.POST("/register", cfg.AuthHandler.Register)
  api.POST("/login", cfg.AuthHandler.Login)

  // ===============
  // || Protected ||
  // ===============
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)

  // Asset
  asset := protected.Group("/asset")
  asset.GET("", cfg.AuthMiddleware.RequireRole(types.RoleAdmin, types.RoleUser), cfg.AssetHandler.GetAllAssets)
  asset.GET("/getAssetById/:id", cfg.AuthMiddleware.RequireRole(types.RoleAdmin, types.RoleUser), cfg.AssetHandler.GetAssetById)
  asset.POST("/createAsset", cfg.AuthMiddleware.RequireRole(types.RoleAdmin), cfg.AssetHandler.CreateAsset)
  asset.PUT("/:id", cfg.AuthMiddleware.RequireRole(types.RoleAdmin), cfg.AssetHandler.UpdateAsset)
  asset.DELETE("/:id", cfg.AuthMiddleware.RequireRole(types.RoleAdmin), cfg.AssetHandler.DeleteAsset)

  return router
}

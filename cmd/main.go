package main

import (
  "fmt"
  "os"
  "time"

  "github.com/yungbote/3dmarket-backend/internal/db"
  "github.com/yungbote/3dmarket-backend/internal/handlers"
  "github.com/yungbote/3dmarket-backend/internal/logger"
  "github.com/yungbote/3dmarket-backend/internal/middleware"
  "github.com/yungbote/3dmarket-backend/internal/repos"
  "github.com/yungbote/3dmarket-backend/internal/server"
  "github.com/yungbote/3dmarket-backend/internal/services"
  "github.com/yungbote/3dmarket-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  pictureDir := utils.GetEnv("ASSET_PICTURE_DIR", "public/asset_picture", log)
  avatarDir := utils.GetEnv("USER_AVATAR_DIR", "public/user_avatar", log)
  avatarFont := utils.GetEnv("AVATAR_FONT", "", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  defer func() {
    if cErr := postgresService.Close(); cErr != nil {
      log.Warn("Postgres close failed", "error", cErr)
    }
  }()
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  assetRepo := repos.NewAssetRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  pictureService, err := services.NewPictureService(log, pictureDir)
  if err != nil {
    log.Error("Could not init PictureService", "error", err)
    os.Exit(1)
  }
  avatarService, err := services.NewAvatarService(log, userRepo, avatarDir, avatarFont)
  if err != nil {
    log.Error("Could not init AvatarService", "error", err)
    os.Exit(1)
  }
  authService := services.NewAuthService(thePG, log, userRepo, avatarService, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  assetService := services.NewAssetService(thePG, log, assetRepo, pictureService)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  assetHandler := handlers.NewAssetHandler(log, assetService, pictureService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:    authHandler,
    AuthMiddleware: authMiddleware,
    UserHandler:    userHandler,
    AssetHandler:   assetHandler,
    PictureDir:     pictureService.Dir(),
    AvatarDir:      avatarDir,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}

package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/3dmarket-backend/internal/logger"
  "github.com/yungbote/3dmarket-backend/internal/repos"
  "github.com/yungbote/3dmarket-backend/internal/requestdata"
  "github.com/yungbote/3dmarket-backend/internal/types"
)

type UserService interface {
  GetMe(ctx context.Context, tx *gorm.DB) (*types.User, error)
}

type userService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context, tx *gorm.DB) (*types.User, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("No authenticated user in context")
  }
  users, err := us.userRepo.GetByIDs(ctx, tx, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load user: %w", err)
  }
  if len(users) == 0 {
    return nil, fmt.Errorf("User not found")
  }
  return users[0], nil
}

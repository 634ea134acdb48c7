package utils

import (
  "context"
  "fmt"
  "golang.org/x/crypto/bcrypt"
  "github.com/yungbote/3dmarket-backend/internal/logger"
  "github.com/yungbote/3dmarket-backend/internal/normalization"
  "github.com/yungbote/3dmarket-backend/internal/repos"
  "github.com/yungbote/3dmarket-backend/internal/types"
)

func ValidateRegistration(ctx context.Context, userRepo repos.UserRepo, log *logger.Logger, user *types.User) error {
  if user == nil {
    return fmt.Errorf("No user given, cannot proceed with registration")
  }
  if user.Email == "" {
    return fmt.Errorf("An email is required to register")
  }
  emailExists, err := userRepo.EmailExists(ctx, nil, user.Email)
  if err != nil {
    return fmt.Errorf("Failed to check user email")
  }
  if emailExists {
    return fmt.Errorf("Email is already in use")
  }
  if user.Password == "" {
    return fmt.Errorf("A password is required to register")
  }
  if user.Name == "" {
    return fmt.Errorf("A name is required to register")
  }
  if user.Role != types.RoleAdmin && user.Role != types.RoleUser {
    return fmt.Errorf("Role must be either ADMIN or USER")
  }
  return nil
}

func ValidateLogin(email, password string) error {
  if email == "" {
    return fmt.Errorf("Email is required to login")
  }
  if password == "" {
    return fmt.Errorf("Password is required to login")
  }
  return nil
}

func HashPassword(ctx context.Context, log *logger.Logger, user *types.User) error {
  hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
  if err != nil {
    return fmt.Errorf("Failed to hash password")
  }
  user.Password = string(hashedPassword)
  return nil
}

func NormalizeUserFields(ctx context.Context, user *types.User) {
  user.Email = normalization.ParseInputString(user.Email)
  user.Name = normalization.TrimInputString(user.Name)
  if user.Role == "" {
    user.Role = types.RoleUser
  }
}

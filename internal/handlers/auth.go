package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/yungbote/3dmarket-backend/internal/services"
  "github.com/yungbote/3dmarket-backend/internal/types"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    Name     string `json:"name"`
    Password string `json:"password"`
    Role     string `json:"role"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid request body")
    return
  }
  user := types.User{
    Email:    req.Email,
    Name:     req.Name,
    Password: req.Password,
    Role:     req.Role,
  }
  if err := ah.authService.RegisterUser(c.Request.Context(), &user); err != nil {
    RespondError(c, http.StatusBadRequest, err.Error())
    return
  }
  RespondData(c, http.StatusOK, user, "User has been registered")
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid request body")
    return
  }
  accessToken, refreshToken, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    RespondError(c, http.StatusUnauthorized, err.Error())
    return
  }
  expiresIn := int(ah.authService.GetAccessTTL().Seconds())
  RespondData(c, http.StatusOK, gin.H{
    "access_token":  accessToken,
    "refresh_token": refreshToken,
    "expires_in":    expiresIn,
  }, "Login successful")
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
  accessToken, refreshToken, err := ah.authService.RefreshUser(c.Request.Context())
  if err != nil {
    RespondError(c, http.StatusUnauthorized, err.Error())
    return
  }
  expiresIn := int(ah.authService.GetAccessTTL().Seconds())
  RespondData(c, http.StatusOK, gin.H{
    "access_token":  accessToken,
    "refresh_token": refreshToken,
    "expires_in":    expiresIn,
  }, "Token refreshed")
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  if err := ah.authService.LogoutUser(c.Request.Context()); err != nil {
    RespondError(c, http.StatusBadRequest, err.Error())
    return
  }
  RespondData(c, http.StatusOK, nil, "Logged out successfully")
}

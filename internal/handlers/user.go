package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/yungbote/3dmarket-backend/internal/services"
)

type UserHandler struct {
  userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  me, err := uh.userService.GetMe(c.Request.Context(), nil)
  if err != nil {
    RespondError(c, http.StatusBadRequest, err.Error())
    return
  }
  RespondData(c, http.StatusOK, me, "User has been retrieved")
}

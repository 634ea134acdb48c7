package handlers

import (
  "github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape of every endpoint: status tells the
// caller whether the operation succeeded, data carries the payload when there
// is one, message is always present.
type Envelope struct {
  Status  bool        `json:"status"`
  Data    interface{} `json:"data,omitempty"`
  Message string      `json:"message"`
}

func RespondData(c *gin.Context, httpStatus int, data interface{}, message string) {
  c.JSON(httpStatus, Envelope{Status: true, Data: data, Message: message})
}

func RespondError(c *gin.Context, httpStatus int, message string) {
  c.JSON(httpStatus, Envelope{Status: false, Message: message})
}

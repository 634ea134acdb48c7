package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  RoleAdmin = "ADMIN"
  RoleUser  = "USER"
)

type User struct {
  ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
  Email         string        `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password      string        `gorm:"not null;column:password" json:"-"`
  Name          string        `gorm:"not null;column:name" json:"name"`
  Role          string        `gorm:"not null;default:USER;column:role" json:"role"`
  AvatarKey     string        `gorm:"column:avatar_key" json:"avatar_key"`
  AvatarURL     string        `gorm:"column:avatar_url" json:"avatar_url"`
  CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}

package types

import (
  "time"
)

type Asset struct {
  ID            uint        `gorm:"primaryKey;autoIncrement" json:"id"`
  UUID          string      `gorm:"uniqueIndex;not null;column:uuid" json:"uuid"`
  Name          string      `gorm:"not null;index;column:name" json:"name"`
  Category      string      `gorm:"not null;column:category" json:"category"`
  Price         float64     `gorm:"not null;column:price" json:"price"`
  Description   string      `gorm:"column:description" json:"description"`
  AssetPicture  string      `gorm:"column:asset_picture" json:"asset_picture"`
  CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
  UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

func (Asset) TableName() string {
  return "asset"
}

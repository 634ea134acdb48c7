package repos

import (
  "context"
  "gorm.io/gorm"
  "github.com/yungbote/3dmarket-backend/internal/logger"
  "github.com/yungbote/3dmarket-backend/internal/types"
)

type AssetRepo interface {
  Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error)
  GetByID(ctx context.Context, tx *gorm.DB, assetID uint) (*types.Asset, error)
  ListByName(ctx context.Context, tx *gorm.DB, nameContains string) ([]*types.Asset, error)
  UpdateByID(ctx context.Context, tx *gorm.DB, assetID uint, values map[string]interface{}) (int64, error)
  DeleteByID(ctx context.Context, tx *gorm.DB, assetID uint) (int64, error)
}

type assetRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
  repoLog := baseLog.With("repo", "AssetRepo")
  return &assetRepo{db: db, log: repoLog}
}

func (ar *assetRepo) Create(ctx context.Context, tx *gorm.DB, assets []*types.Asset) ([]*types.Asset, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if len(assets) == 0 {
    return []*types.Asset{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&assets).Error; err != nil {
    return nil, err
  }

  return assets, nil
}

func (ar *assetRepo) GetByID(ctx context.Context, tx *gorm.DB, assetID uint) (*types.Asset, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Asset

  if err := transaction.WithContext(ctx).
    Where("id = ?", assetID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (ar *assetRepo) ListByName(ctx context.Context, tx *gorm.DB, nameContains string) ([]*types.Asset, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.Asset

  query := transaction.WithContext(ctx)
  if nameContains != "" {
    query = query.Where("name LIKE ?", "%"+nameContains+"%")
  }
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// UpdateByID is a single conditional statement keyed by id, so the caller can
// detect a concurrently removed row from the affected count instead of doing
// an unguarded read-then-write.
func (ar *assetRepo) UpdateByID(ctx context.Context, tx *gorm.DB, assetID uint, values map[string]interface{}) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if len(values) == 0 {
    return 0, nil
  }

  result := transaction.WithContext(ctx).
    Model(&types.Asset{}).
    Where("id = ?", assetID).
    Updates(values)
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}

func (ar *assetRepo) DeleteByID(ctx context.Context, tx *gorm.DB, assetID uint) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  result := transaction.WithContext(ctx).
    Where("id = ?", assetID).
    Delete(&types.Asset{})
  if result.Error != nil {
    return 0, result.Error
  }
  return result.RowsAffected, nil
}

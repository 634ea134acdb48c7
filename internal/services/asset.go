package services

import (
  "context"
  "errors"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/3dmarket-backend/internal/logger"
  "github.com/yungbote/3dmarket-backend/internal/normalization"
  "github.com/yungbote/3dmarket-backend/internal/repos"
  "github.com/yungbote/3dmarket-backend/internal/types"
)

// ErrAssetNotFound is the single not-found result kind for asset lookups and
// mutations. The handler layer maps it to HTTP 404 for every operation.
var ErrAssetNotFound = errors.New("3D Asset not found")

type AssetCreateInput struct {
  Name        string
  Category    string
  Price       float64
  Description string
}

// AssetUpdateInput carries explicit optionals: a nil field was not supplied
// and keeps its prior value, a non-nil field is applied even when it holds a
// zero value (empty string, price 0).
type AssetUpdateInput struct {
  Name        *string
  Category    *string
  Price       *float64
  Description *string
}

type AssetService interface {
  List(ctx context.Context, search string) ([]*types.Asset, error)
  GetByID(ctx context.Context, assetID uint) (*types.Asset, error)
  Create(ctx context.Context, in AssetCreateInput, pictureFilename string) (*types.Asset, error)
  Update(ctx context.Context, assetID uint, in AssetUpdateInput, newPictureFilename string) (*types.Asset, error)
  Delete(ctx context.Context, assetID uint) (*types.Asset, error)
}

type assetService struct {
  db             *gorm.DB
  log            *logger.Logger
  assetRepo      repos.AssetRepo
  pictureService PictureService
}

func NewAssetService(db *gorm.DB, baseLog *logger.Logger, assetRepo repos.AssetRepo, pictureService PictureService) AssetService {
  serviceLog := baseLog.With("service", "AssetService")
  return &assetService{
    db:             db,
    log:            serviceLog,
    assetRepo:      assetRepo,
    pictureService: pictureService,
  }
}

func (as *assetService) List(ctx context.Context, search string) ([]*types.Asset, error) {
  assets, err := as.assetRepo.ListByName(ctx, nil, search)
  if err != nil {
    return nil, fmt.Errorf("Failed to list 3D assets: %w", err)
  }
  return assets, nil
}

func (as *assetService) GetByID(ctx context.Context, assetID uint) (*types.Asset, error) {
  asset, err := as.assetRepo.GetByID(ctx, nil, assetID)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch 3D asset: %w", err)
  }
  if asset == nil {
    return nil, ErrAssetNotFound
  }
  return asset, nil
}

func (as *assetService) Create(ctx context.Context, in AssetCreateInput, pictureFilename string) (*types.Asset, error) {
  if in.Price < 0 {
    return nil, fmt.Errorf("Price cannot be negative")
  }
  asset := &types.Asset{
    UUID:         uuid.New().String(),
    Name:         normalization.TrimInputString(in.Name),
    Category:     normalization.TrimInputString(in.Category),
    Price:        in.Price,
    Description:  in.Description,
    AssetPicture: pictureFilename,
  }
  if _, err := as.assetRepo.Create(ctx, nil, []*types.Asset{asset}); err != nil {
    // The uploaded picture (if any) is already on disk at this point and is
    // intentionally left behind, the caller reports the failure as-is.
    as.log.Error("Create asset failed", "error", err, "picture", pictureFilename)
    return nil, fmt.Errorf("Failed to create 3D asset: %w", err)
  }
  return asset, nil
}

func (as *assetService) Update(ctx context.Context, assetID uint, in AssetUpdateInput, newPictureFilename string) (*types.Asset, error) {
  if in.Price != nil && *in.Price < 0 {
    return nil, fmt.Errorf("Price cannot be negative")
  }

  var updated *types.Asset
  var oldPicture string

  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, gErr := as.assetRepo.GetByID(ctx, tx, assetID)
    if gErr != nil {
      return fmt.Errorf("Failed to fetch 3D asset: %w", gErr)
    }
    if existing == nil {
      return ErrAssetNotFound
    }

    values := map[string]interface{}{}
    if in.Name != nil {
      values["name"] = normalization.TrimInputString(*in.Name)
    }
    if in.Category != nil {
      values["category"] = normalization.TrimInputString(*in.Category)
    }
    if in.Price != nil {
      values["price"] = *in.Price
    }
    if in.Description != nil {
      values["description"] = *in.Description
    }
    if newPictureFilename != "" {
      values["asset_picture"] = newPictureFilename
      oldPicture = existing.AssetPicture
    }

    if len(values) == 0 {
      updated = existing
      return nil
    }

    rows, uErr := as.assetRepo.UpdateByID(ctx, tx, assetID, values)
    if uErr != nil {
      return fmt.Errorf("Failed to update 3D asset: %w", uErr)
    }
    if rows == 0 {
      return ErrAssetNotFound
    }

    reloaded, rErr := as.assetRepo.GetByID(ctx, tx, assetID)
    if rErr != nil {
      return fmt.Errorf("Failed to reload 3D asset: %w", rErr)
    }
    updated = reloaded
    return nil
  })
  if err != nil {
    return nil, err
  }

  // Old picture removal happens only after the row update committed, so a
  // failed store write never orphans the still-referenced file. A failed
  // removal leaves a stray file behind, which is logged and tolerated.
  if oldPicture != "" && oldPicture != newPictureFilename {
    if rmErr := as.pictureService.Remove(ctx, oldPicture); rmErr != nil {
      as.log.Warn("Failed to remove replaced asset picture", "error", rmErr, "filename", oldPicture)
    }
  }
  return updated, nil
}

func (as *assetService) Delete(ctx context.Context, assetID uint) (*types.Asset, error) {
  var deleted *types.Asset

  err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    existing, gErr := as.assetRepo.GetByID(ctx, tx, assetID)
    if gErr != nil {
      return fmt.Errorf("Failed to fetch 3D asset: %w", gErr)
    }
    if existing == nil {
      return ErrAssetNotFound
    }
    rows, dErr := as.assetRepo.DeleteByID(ctx, tx, assetID)
    if dErr != nil {
      return fmt.Errorf("Failed to delete 3D asset: %w", dErr)
    }
    if rows == 0 {
      return ErrAssetNotFound
    }
    deleted = existing
    return nil
  })
  if err != nil {
    return nil, err
  }

  // Same two-phase rule as Update: the file goes away only once the row is
  // gone for good.
  if deleted.AssetPicture != "" {
    if rmErr := as.pictureService.Remove(ctx, deleted.AssetPicture); rmErr != nil {
      as.log.Warn("Failed to remove picture of deleted asset", "error", rmErr, "filename", deleted.AssetPicture)
    }
  }
  return deleted, nil
}

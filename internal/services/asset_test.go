package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/3dmarket-backend/internal/repos"
	"github.com/yungbote/3dmarket-backend/internal/repos/testutil"
	"github.com/yungbote/3dmarket-backend/internal/types"
)

func newAssetServiceForTest(t *testing.T) (AssetService, PictureService, *gorm.DB) {
	t.Helper()
	log := testutil.Logger(t)
	db := testutil.DB(t)
	ps, err := NewPictureService(log, t.TempDir())
	if err != nil {
		t.Fatalf("NewPictureService: %v", err)
	}
	repo := repos.NewAssetRepo(db, log)
	return NewAssetService(db, log, repo, ps), ps, db
}

func writePicture(t *testing.T, ps PictureService, filename string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(ps.Dir(), filename), []byte("png"), 0o644); err != nil {
		t.Fatalf("write picture %s: %v", filename, err)
	}
}

func pictureExists(t *testing.T, ps PictureService, filename string) bool {
	t.Helper()
	_, err := os.Stat(filepath.Join(ps.Dir(), filename))
	if err == nil {
		return true
	}
	if os.IsNotExist(err) {
		return false
	}
	t.Fatalf("stat picture %s: %v", filename, err)
	return false
}

func TestAssetCreateWithoutPicture(t *testing.T) {
	svc, _, _ := newAssetServiceForTest(t)
	ctx := context.Background()

	asset, err := svc.Create(ctx, AssetCreateInput{
		Name:        "Chair",
		Category:    "Furniture",
		Price:       50,
		Description: "Wood",
	}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if asset.AssetPicture != "" {
		t.Fatalf("Create: expected empty asset_picture, got %q", asset.AssetPicture)
	}
	if asset.Price != 50 {
		t.Fatalf("Create: expected price 50, got %v", asset.Price)
	}
	if asset.ID == 0 {
		t.Fatalf("Create: expected assigned id")
	}
	if asset.UUID == "" {
		t.Fatalf("Create: expected assigned uuid")
	}
}

func TestAssetCreateAssignsDistinctUUIDs(t *testing.T) {
	svc, _, _ := newAssetServiceForTest(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		asset, err := svc.Create(ctx, AssetCreateInput{Name: "chair", Category: "furniture", Price: 1}, "")
		if err != nil {
			t.Fatalf("Create #%d: %v", i, err)
		}
		if seen[asset.UUID] {
			t.Fatalf("Create #%d: duplicate uuid %q", i, asset.UUID)
		}
		seen[asset.UUID] = true
	}
}

func TestAssetCreateRejectsNegativePrice(t *testing.T) {
	svc, _, _ := newAssetServiceForTest(t)

	if _, err := svc.Create(context.Background(), AssetCreateInput{Name: "chair", Category: "furniture", Price: -5}, ""); err == nil {
		t.Fatalf("Create: expected error for negative price")
	}
}

func TestAssetListFiltersByName(t *testing.T) {
	svc, _, _ := newAssetServiceForTest(t)
	ctx := context.Background()

	for _, name := range []string{"wooden chair", "office chair", "table"} {
		if _, err := svc.Create(ctx, AssetCreateInput{Name: name, Category: "furniture", Price: 10}, ""); err != nil {
			t.Fatalf("Create %q: %v", name, err)
		}
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List: expected 3 assets, got %d", len(all))
	}

	chairs, err := svc.List(ctx, "chair")
	if err != nil {
		t.Fatalf("List(chair): %v", err)
	}
	if len(chairs) != 2 {
		t.Fatalf("List(chair): expected 2 assets, got %d", len(chairs))
	}
}

func TestAssetGetByID(t *testing.T) {
	svc, _, _ := newAssetServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, AssetCreateInput{Name: "chair", Category: "furniture", Price: 50, Description: "wood"}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "chair" || got.Category != "furniture" || got.Price != 50 || got.Description != "wood" {
		t.Fatalf("GetByID: unexpected values: %+v", got)
	}

	if _, err := svc.GetByID(ctx, created.ID+999); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("GetByID (missing): expected ErrAssetNotFound, got %v", err)
	}
}

func TestAssetUpdatePartial(t *testing.T) {
	svc, _, _ := newAssetServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, AssetCreateInput{Name: "chair", Category: "furniture", Price: 50, Description: "wood"}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newName := "stool"
	updated, err := svc.Update(ctx, created.ID, AssetUpdateInput{Name: &newName}, "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "stool" {
		t.Fatalf("Update: name not applied: %+v", updated)
	}
	if updated.Category != "furniture" || updated.Price != 50 || updated.Description != "wood" {
		t.Fatalf("Update: omitted fields changed: %+v", updated)
	}
}

func TestAssetUpdateAppliesZeroValues(t *testing.T) {
	// A supplied-but-empty field is a real update, not an omission.
	svc, _, _ := newAssetServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, AssetCreateInput{Name: "chair", Category: "furniture", Price: 50, Description: "wood"}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	emptyDesc := ""
	zeroPrice := 0.0
	updated, err := svc.Update(ctx, created.ID, AssetUpdateInput{Description: &emptyDesc, Price: &zeroPrice}, "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Description != "" {
		t.Fatalf("Update: empty description not applied: %+v", updated)
	}
	if updated.Price != 0 {
		t.Fatalf("Update: zero price not applied: %+v", updated)
	}
	if updated.Name != "chair" {
		t.Fatalf("Update: omitted name changed: %+v", updated)
	}
}

func TestAssetUpdateWithNoFieldsKeepsEverything(t *testing.T) {
	svc, _, _ := newAssetServiceForTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, AssetCreateInput{Name: "chair", Category: "furniture", Price: 50, Description: "wood"}, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ID, AssetUpdateInput{}, "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != created.Name || updated.Category != created.Category ||
		updated.Price != created.Price || updated.Description != created.Description ||
		updated.AssetPicture != created.AssetPicture {
		t.Fatalf("Update: fields changed without input: %+v", updated)
	}
}

func TestAssetUpdateReplacesPicture(t *testing.T) {
	svc, ps, _ := newAssetServiceForTest(t)
	ctx := context.Background()

	writePicture(t, ps, "old.png")
	created, err := svc.Create(ctx, AssetCreateInput{Name: "chair", Category: "furniture", Price: 50}, "old.png")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	writePicture(t, ps, "new.png")
	updated, err := svc.Update(ctx, created.ID, AssetUpdateInput{}, "new.png")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.AssetPicture != "new.png" {
		t.Fatalf("Update: expected asset_picture new.png, got %q", updated.AssetPicture)
	}
	if pictureExists(t, ps, "old.png") {
		t.Fatalf("Update: old picture file still present")
	}
	if !pictureExists(t, ps, "new.png") {
		t.Fatalf("Update: new picture file missing")
	}
}

func TestAssetUpdateMissing(t *testing.T) {
	svc, _, _ := newAssetServiceForTest(t)

	name := "stool"
	if _, err := svc.Update(context.Background(), 12345, AssetUpdateInput{Name: &name}, ""); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("Update (missing): expected ErrAssetNotFound, got %v", err)
	}
}

func TestAssetDeleteRemovesRowAndPicture(t *testing.T) {
	svc, ps, db := newAssetServiceForTest(t)
	ctx := context.Background()

	writePicture(t, ps, "gone.png")
	created, err := svc.Create(ctx, AssetCreateInput{Name: "chair", Category: "furniture", Price: 50}, "gone.png")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.ID != created.ID || deleted.Name != "chair" {
		t.Fatalf("Delete: expected last known values, got %+v", deleted)
	}
	if pictureExists(t, ps, "gone.png") {
		t.Fatalf("Delete: picture file still present")
	}

	var count int64
	if err := db.Model(&types.Asset{}).Count(&count).Error; err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Fatalf("Delete: expected empty store, got %d rows", count)
	}
}

func TestAssetDeleteMissingLeavesStoreUnchanged(t *testing.T) {
	svc, _, db := newAssetServiceForTest(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, AssetCreateInput{Name: "chair", Category: "furniture", Price: 50}, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Delete(ctx, 7777); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("Delete (missing): expected ErrAssetNotFound, got %v", err)
	}

	var count int64
	if err := db.Model(&types.Asset{}).Count(&count).Error; err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Delete (missing): store changed, got %d rows", count)
	}
}

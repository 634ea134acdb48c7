package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/3dmarket-backend/internal/types"
)

func SeedAsset(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, price float64, picture string) *types.Asset {
	tb.Helper()
	a := &types.Asset{
		UUID:         uuid.NewString(),
		Name:         name,
		Category:     "misc",
		Price:        price,
		Description:  "seeded",
		AssetPicture: picture,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed asset: %v", err)
	}
	return a
}

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, role string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
		Name:     "Seed User",
		Role:     role,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

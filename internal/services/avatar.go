package services

import (
  "bytes"
  "context"
  "fmt"
  "hash/fnv"
  "image/color"
  "os"
  "path/filepath"
  "strings"
  "time"

  "github.com/fogleman/gg"
  "github.com/golang/freetype/truetype"
  "golang.org/x/image/font"
  "gorm.io/gorm"
  "github.com/yungbote/3dmarket-backend/internal/logger"
  "github.com/yungbote/3dmarket-backend/internal/repos"
  "github.com/yungbote/3dmarket-backend/internal/types"
)

// AvatarService renders a deterministic initials avatar for new users and
// writes it to the local media directory. When no font is configured the
// service is disabled and registration proceeds without an avatar.
type AvatarService interface {
  CreateUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error
  GenerateUserAvatar(ctx context.Context, user *types.User) (bytes.Buffer, error)
  Enabled() bool
}

var avatarPalette = []color.NRGBA{
  {R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF},
  {R: 0x10, G: 0xB9, B: 0x81, A: 0xFF},
  {R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
  {R: 0xEF, G: 0x44, B: 0x44, A: 0xFF},
  {R: 0x8B, G: 0x5C, B: 0xF6, A: 0xFF},
  {R: 0xEC, G: 0x48, B: 0x99, A: 0xFF},
  {R: 0x14, G: 0xB8, B: 0xA6, A: 0xFF},
  {R: 0x64, G: 0x74, B: 0x8B, A: 0xFF},
}

type avatarService struct {
  log      *logger.Logger
  userRepo repos.UserRepo
  dir      string
  fontFace font.Face
}

func NewAvatarService(log *logger.Logger, userRepo repos.UserRepo, dir, fontPath string) (AvatarService, error) {
  serviceLog := log.With("service", "AvatarService")

  svc := &avatarService{log: serviceLog, userRepo: userRepo, dir: dir}

  if strings.TrimSpace(fontPath) == "" {
    serviceLog.Warn("No avatar font configured, avatar generation disabled")
    return svc, nil
  }

  face, err := loadFontFace(fontPath, 206)
  if err != nil {
    return nil, fmt.Errorf("Could not load avatar font: %w", err)
  }
  if err := os.MkdirAll(dir, 0o755); err != nil {
    return nil, fmt.Errorf("Failed to create avatar directory %q: %w", dir, err)
  }
  svc.fontFace = face
  return svc, nil
}

func (as *avatarService) Enabled() bool {
  return as.fontFace != nil
}

func (as *avatarService) CreateUserAvatar(ctx context.Context, tx *gorm.DB, user *types.User) error {
  if !as.Enabled() {
    return nil
  }

  buf, err := as.GenerateUserAvatar(ctx, user)
  if err != nil {
    return err
  }

  oldKey := strings.TrimSpace(user.AvatarKey)

  // Versioned filename so a stale cached avatar is never served.
  newKey := fmt.Sprintf("%s_%d.png", user.ID.String(), time.Now().UnixNano())
  if err := os.WriteFile(filepath.Join(as.dir, newKey), buf.Bytes(), 0o644); err != nil {
    return fmt.Errorf("Failed to write user avatar: %w", err)
  }

  user.AvatarKey = newKey
  user.AvatarURL = "/user_avatar/" + newKey

  // Best-effort delete of the old file, only after the new one exists.
  if oldKey != "" && oldKey != newKey {
    if rmErr := os.Remove(filepath.Join(as.dir, filepath.Base(oldKey))); rmErr != nil && !os.IsNotExist(rmErr) {
      as.log.Warn("Failed to delete old avatar (ignored)", "oldKey", oldKey, "error", rmErr)
    }
  }
  return nil
}

func (as *avatarService) GenerateUserAvatar(ctx context.Context, user *types.User) (bytes.Buffer, error) {
  const size = 512

  var buf bytes.Buffer
  if !as.Enabled() {
    return buf, fmt.Errorf("Avatar generation is disabled")
  }

  dc := gg.NewContext(size, size)

  dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
  dc.Clip()

  base := pickAvatarColor(user.Email)
  dc.SetColor(base)
  dc.DrawRectangle(0, 0, float64(size), float64(size))
  dc.Fill()

  initials := computeInitials(user.Name)

  dc.SetFontFace(as.fontFace)
  tw, th := dc.MeasureString(initials)
  cx, cy := float64(size)/2, float64(size)/2

  dc.SetColor(color.White)
  dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

  if err := dc.EncodePNG(&buf); err != nil {
    return buf, fmt.Errorf("Failed to encode PNG: %w", err)
  }
  return buf, nil
}

func pickAvatarColor(seed string) color.NRGBA {
  h := fnv.New32a()
  _, _ = h.Write([]byte(seed))
  return avatarPalette[int(h.Sum32())%len(avatarPalette)]
}

func computeInitials(name string) string {
  fields := strings.Fields(strings.TrimSpace(name))
  switch len(fields) {
  case 0:
    return "?"
  case 1:
    return strings.ToUpper(fields[0][:1])
  default:
    return strings.ToUpper(fields[0][:1] + fields[len(fields)-1][:1])
  }
}

func loadFontFace(path string, points float64) (font.Face, error) {
  raw, err := os.ReadFile(path)
  if err != nil {
    return nil, fmt.Errorf("Failed to read font file: %w", err)
  }
  parsed, err := truetype.Parse(raw)
  if err != nil {
    return nil, fmt.Errorf("Failed to parse font file: %w", err)
  }
  face := truetype.NewFace(parsed, &truetype.Options{Size: points})
  return face, nil
}

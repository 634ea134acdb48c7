package services

import (
  "context"
  "fmt"
  "io"
  "mime/multipart"
  "os"
  "path/filepath"
  "strings"

  "github.com/google/uuid"
  "github.com/yungbote/3dmarket-backend/internal/logger"
)

// PictureService owns the asset picture directory. Filenames are generated
// here and recorded on the asset row; an empty filename means "no picture".
type PictureService interface {
  Save(ctx context.Context, file *multipart.FileHeader) (string, error)
  Remove(ctx context.Context, filename string) error
  URL(filename string) string
  Dir() string
}

type pictureService struct {
  log *logger.Logger
  dir string
}

func NewPictureService(log *logger.Logger, dir string) (PictureService, error) {
  serviceLog := log.With("service", "PictureService")
  if dir == "" {
    return nil, fmt.Errorf("Picture directory cannot be empty")
  }
  if err := os.MkdirAll(dir, 0o755); err != nil {
    return nil, fmt.Errorf("Failed to create picture directory %q: %w", dir, err)
  }
  return &pictureService{log: serviceLog, dir: dir}, nil
}

func (ps *pictureService) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
  if file == nil {
    return "", fmt.Errorf("No file given")
  }
  ext := strings.ToLower(filepath.Ext(file.Filename))
  filename := uuid.New().String() + ext

  src, err := file.Open()
  if err != nil {
    return "", fmt.Errorf("Failed to open uploaded file: %w", err)
  }
  defer src.Close()

  dst, err := os.Create(filepath.Join(ps.dir, filename))
  if err != nil {
    return "", fmt.Errorf("Failed to create picture file: %w", err)
  }
  defer dst.Close()

  if _, err := io.Copy(dst, src); err != nil {
    return "", fmt.Errorf("Failed to write picture file: %w", err)
  }
  ps.log.Debug("Saved asset picture", "filename", filename, "original", file.Filename)
  return filename, nil
}

func (ps *pictureService) Remove(ctx context.Context, filename string) error {
  if filename == "" {
    return nil
  }
  // Base name only, the stored value must never escape the picture dir.
  path := filepath.Join(ps.dir, filepath.Base(filename))
  if err := os.Remove(path); err != nil {
    if os.IsNotExist(err) {
      return nil
    }
    return fmt.Errorf("Failed to remove picture file %q: %w", filename, err)
  }
  ps.log.Debug("Removed asset picture", "filename", filename)
  return nil
}

func (ps *pictureService) URL(filename string) string {
  if filename == "" {
    return ""
  }
  return "/asset_picture/" + filename
}

func (ps *pictureService) Dir() string {
  return ps.dir
}

package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yungbote/3dmarket-backend/internal/repos/testutil"
)

func uploadedFileHeader(t *testing.T, fieldName, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	files := req.MultipartForm.File[fieldName]
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	return files[0]
}

func TestPictureServiceSave(t *testing.T) {
	ps, err := NewPictureService(testutil.Logger(t), t.TempDir())
	if err != nil {
		t.Fatalf("NewPictureService: %v", err)
	}

	header := uploadedFileHeader(t, "asset_picture", "chair.PNG", "fake image bytes")
	filename, err := ps.Save(context.Background(), header)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(filename, ".png") {
		t.Fatalf("Save: expected lowercased extension, got %q", filename)
	}

	raw, err := os.ReadFile(filepath.Join(ps.Dir(), filename))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(raw) != "fake image bytes" {
		t.Fatalf("saved content mismatch: %q", raw)
	}
}

func TestPictureServiceRemove(t *testing.T) {
	ps, err := NewPictureService(testutil.Logger(t), t.TempDir())
	if err != nil {
		t.Fatalf("NewPictureService: %v", err)
	}
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(ps.Dir(), "old.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ps.Remove(ctx, "old.png"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ps.Dir(), "old.png")); !os.IsNotExist(err) {
		t.Fatalf("Remove: file still present")
	}

	// Missing files and the empty filename are both no-ops.
	if err := ps.Remove(ctx, "never-existed.png"); err != nil {
		t.Fatalf("Remove (missing): %v", err)
	}
	if err := ps.Remove(ctx, ""); err != nil {
		t.Fatalf("Remove (empty): %v", err)
	}
}

func TestPictureServiceURL(t *testing.T) {
	ps, err := NewPictureService(testutil.Logger(t), t.TempDir())
	if err != nil {
		t.Fatalf("NewPictureService: %v", err)
	}
	if got := ps.URL("a.png"); got != "/asset_picture/a.png" {
		t.Fatalf("URL: got %q", got)
	}
	if got := ps.URL(""); got != "" {
		t.Fatalf("URL (empty): got %q", got)
	}
}

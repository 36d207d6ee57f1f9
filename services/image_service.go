package services

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const uploadsRoot = "uploads"

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// SaveImageBytes writes image data under ./uploads/<subdir> and returns the
// public URL path ("/uploads/...") for storing in Lodge.Images.
func SaveImageBytes(data []byte, ext, subdir string) (string, error) {
	ext = strings.ToLower(ext)
	if !allowedImageExts[ext] {
		return "", fmt.Errorf("validation: unsupported image type %q", ext)
	}

	dir := filepath.Join(uploadsRoot, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("mkdir uploads dir: %w", err)
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	fullpath := filepath.Join(dir, filename)
	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return "/" + filepath.ToSlash(fullpath), nil
}

// SaveBase64Image accepts a data-URI or bare base64 payload.
func SaveBase64Image(b64 string, subdir string) (string, error) {
	ext := ".jpg"
	if idx := strings.Index(b64, "base64,"); idx >= 0 {
		header := b64[:idx]
		switch {
		case strings.Contains(header, "image/png"):
			ext = ".png"
		case strings.Contains(header, "image/webp"):
			ext = ".webp"
		}
		b64 = b64[idx+7:]
	}

	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}
	return SaveImageBytes(data, ext, subdir)
}

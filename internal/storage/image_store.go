package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImageStore persists uploaded images and returns a URL clients can fetch.
type ImageStore interface {
	SaveBase64(b64, folder string) (string, error)
}

// DiskStore writes decoded images under a root directory served at /uploads.
type DiskStore struct {
	root string
}

// NewDiskStore creates a disk-backed image store.
func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

// SaveBase64 decodes a base64 image (with or without a data: prefix) and
// writes it to <root>/<folder>. The returned path is the public URL.
func (s *DiskStore) SaveBase64(b64, folder string) (string, error) {
	if idx := strings.Index(b64, ","); idx != -1 && strings.HasPrefix(b64, "data:") {
		b64 = b64[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	filename := fmt.Sprintf("%d.png", time.Now().UnixNano())
	if err := os.WriteFile(filepath.Join(dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return "/uploads/" + folder + "/" + filename, nil
}

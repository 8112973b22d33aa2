package services

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Storage persists evidence images and hands back a durable URL. The
// production deployment fronts a hosted bucket; LocalStorage keeps the same
// contract on the local filesystem.
type Storage interface {
	Save(key, contentType string, r io.Reader) (string, error)
}

// Store is wired at startup.
var Store Storage

type LocalStorage struct {
	Dir     string
	BaseURL string
}

func (s *LocalStorage) Save(key, contentType string, r io.Reader) (string, error) {
	dst := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/uploads/%s", strings.TrimRight(s.BaseURL, "/"), key), nil
}

// EvidenceKey builds the object key for an uploaded image. The uuid suffix
// keeps two uploads within the same millisecond from colliding.
func EvidenceKey(teamID, tileID uint32, ext string) string {
	return fmt.Sprintf("%d/%d/%d-%s.%s",
		teamID, tileID, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}

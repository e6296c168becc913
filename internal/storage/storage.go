package storage

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/maxaizer/selectflow/internal/config"
	"io"
	"path"
	"strings"
)

// FileStorage keeps uploaded files and returns the path they can be found at.
type FileStorage interface {
	Save(ctx context.Context, key string, content io.Reader, size int64, contentType string) (string, error)
	// Delete removes a stored file. A missing file is not an error.
	Delete(ctx context.Context, key string) error
}

func New(ctx context.Context, cfg config.StorageConfig) (FileStorage, error) {
	switch cfg.Driver {
	case config.S3Storage:
		return NewS3Storage(ctx, cfg.S3)
	case config.LocalStorage:
		return NewLocalStorage(cfg.LocalDir)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ResumeKey builds a collision-free key for a candidate's résumé, keeping the original extension.
func ResumeKey(candidateID int64, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("resumes/%d/%s%s", candidateID, uuid.NewString(), ext)
}

package ports

import (
	"context"
	"io"
	"time"
)

// FileStorage almacenamiento de objetos para adjuntos (S3 o compatible).
type FileStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
}

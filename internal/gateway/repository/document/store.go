// Package document stores the source PDFs uploaded for analysis, keyed
// by mine. Production uses S3/minio; development falls back to an
// in-memory store.
package document

import (
	"context"
	"errors"
)

// Store defines operations for persisting uploaded documents.
type Store interface {
	Put(ctx context.Context, mineID, name string, content []byte) error
	Get(ctx context.Context, mineID, name string) ([]byte, error)
	GetURL(ctx context.Context, mineID, name string) (string, error)
	List(ctx context.Context, mineID string) ([]string, error)
}

var ErrNotFound = errors.New("document not found")

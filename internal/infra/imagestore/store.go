package imagestore

import (
	"context"
	"io"
)

type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Store recibe el archivo subido por el admin y devuelve una URL
// pública servible desde el frontend.
type Store interface {
	Upload(ctx context.Context, r io.Reader, filename string) (*UploadResult, error)
}

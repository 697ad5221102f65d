package ports

import (
	"context"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
)

// ObjectStorage puerto para emitir URLs pre-firmadas de subida de imágenes.
type ObjectStorage interface {
	GenerateUploadURL(ctx context.Context, fileType, ext string) (*dto.UploadURLResponse, error)
}

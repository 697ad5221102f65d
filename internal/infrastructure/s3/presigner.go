package s3

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/antonyto02/nexsoft-inventory/internal/application/dto"
	"github.com/antonyto02/nexsoft-inventory/internal/application/ports"
	"github.com/antonyto02/nexsoft-inventory/internal/domain"
	"github.com/antonyto02/nexsoft-inventory/pkg/config"
)

var _ ports.ObjectStorage = (*Presigner)(nil)

// Expiración corta: la URL solo existe para que el cliente suba la imagen inmediatamente.
const uploadURLExpiry = 5 * time.Minute

// Presigner emite URLs pre-firmadas de subida directa a S3. El backend nunca
// recibe los bytes de la imagen; el cliente sube con PUT a la URL firmada y
// guarda la URL pública final en el producto.
type Presigner struct {
	presign *awss3.PresignClient
	bucket  string
	region  string
}

// NewPresigner construye el adaptador con credenciales estáticas de la configuración.
func NewPresigner(ctx context.Context, cfg config.AWSConfig) (*Presigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cargar configuración AWS: %w", err)
	}
	client := awss3.NewFromConfig(awsCfg)
	return &Presigner{
		presign: awss3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		region:  cfg.Region,
	}, nil
}

// GenerateUploadURL emite una URL pre-firmada de subida para una imagen.
// fileType debe ser image/*; ext es la extensión del archivo sin punto.
func (p *Presigner) GenerateUploadURL(ctx context.Context, fileType, ext string) (*dto.UploadURLResponse, error) {
	if !strings.HasPrefix(fileType, "image/") {
		return nil, domain.ErrInvalidInput
	}
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		return nil, domain.ErrInvalidInput
	}

	key := fmt.Sprintf("logos/temp_upload_url_%d.%s", time.Now().UnixNano(), ext)
	req, err := p.presign.PresignPutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}, awss3.WithPresignExpires(uploadURLExpiry))
	if err != nil {
		return nil, fmt.Errorf("firmar URL de subida: %w", err)
	}

	return &dto.UploadURLResponse{
		UploadURL: req.URL,
		FinalURL:  fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.bucket, p.region, key),
	}, nil
}

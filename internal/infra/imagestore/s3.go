package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store normaliza a webp antes de subir; las URLs quedan servidas
// directamente desde el bucket (o un CDN delante vía publicBaseURL).
type S3Store struct {
	client        *s3.Client
	bucket        string
	region        string
	publicBaseURL string
}

type S3Options struct {
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	Endpoint      string // opcional, para S3 compatibles
	PublicBaseURL string // opcional, default URL del bucket
}

func NewS3Store(opts S3Options) *S3Store {
	cfg := aws.Config{
		Region:      opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		client:        client,
		bucket:        opts.Bucket,
		region:        opts.Region,
		publicBaseURL: opts.PublicBaseURL,
	}
}

func (s *S3Store) Upload(ctx context.Context, r io.Reader, filename string) (*UploadResult, error) {
	body, err := normalizeToWebP(r)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("servicios/%s.webp", uuid.NewString())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return nil, fmt.Errorf("s3: upload failed: %w", err)
	}

	return &UploadResult{
		URL:      s.publicURL(key),
		PublicID: key,
	}, nil
}

func (s *S3Store) publicURL(key string) string {
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", s.publicBaseURL, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

var _ Store = (*S3Store)(nil)

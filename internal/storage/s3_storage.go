package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/beanvanilla/storefront-backend/config"
	"github.com/google/uuid"
)

const (
	productImageFolder = "products"
	presignExpiry      = 15 * time.Minute
)

// ErrUnsupportedImageType is returned for uploads that are not web images.
var ErrUnsupportedImageType = errors.New("unsupported image type")

var imageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

// PresignedUpload tells the client where to PUT the file and where it will be served from.
type PresignedUpload struct {
	UploadURL string    `json:"upload_url"`
	FileURL   string    `json:"file_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ImageStorage issues upload URLs for product images.
type ImageStorage interface {
	PresignProductImage(ctx context.Context, filename, contentType string) (*PresignedUpload, error)
}

type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	region  string
	baseURL string
}

// NewS3Storage uses the static keys in cfg when present, otherwise the default
// AWS credential chain.
func NewS3Storage(ctx context.Context, cfg *config.S3Config) (*S3Storage, error) {
	var awsCfg aws.Config
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region:      cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		}
	} else {
		loaded, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		awsCfg = loaded
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
		region:  cfg.Region,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// ValidateImageType accepts the content types the storefront can render.
func ValidateImageType(contentType string) error {
	if slices.Contains(imageTypes, strings.ToLower(contentType)) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedImageType, contentType)
}

func objectKey(folder, filename string) string {
	return fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
}

func (s *S3Storage) fileURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// PresignProductImage returns a PUT URL valid for 15 minutes.
func (s *S3Storage) PresignProductImage(ctx context.Context, filename, contentType string) (*PresignedUpload, error) {
	if err := ValidateImageType(contentType); err != nil {
		return nil, err
	}

	key := objectKey(productImageFolder, filename)
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		FileURL:   s.fileURL(key),
		Key:       key,
		ExpiresAt: time.Now().Add(presignExpiry).UTC(),
	}, nil
}

package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"

	"github.com/phambaophuc/ai-image-studio/internal/config"
	"github.com/phambaophuc/ai-image-studio/pkg/utils"
	storage_go "github.com/supabase-community/storage-go"
)

// bucketStore is the slice of Supabase Storage the host relies on.
type bucketStore interface {
	Put(bucket, key string, data io.Reader, contentType string) error
	PublicURL(bucket, key string) string
	Ping(bucket string) error
}

type supabaseStore struct {
	sbClient *storage_go.Client
}

func (s *supabaseStore) Put(bucket, key string, data io.Reader, contentType string) error {
	_, err := s.sbClient.UploadFile(bucket, key, data, storage_go.FileOptions{
		ContentType: &contentType,
	})
	return err
}

func (s *supabaseStore) PublicURL(bucket, key string) string {
	return s.sbClient.GetPublicUrl(bucket, key).SignedURL
}

func (s *supabaseStore) Ping(bucket string) error {
	_, err := s.sbClient.ListFiles(bucket, "", storage_go.FileSearchOptions{})
	return err
}

// SupabaseHost publishes images to a public Supabase Storage bucket.
type SupabaseHost struct {
	store  bucketStore
	bucket string
}

func NewSupabaseHost(cfg config.SupabaseConfig) *SupabaseHost {
	sbClient := storage_go.NewClient(cfg.URL+"/storage/v1", cfg.KEY, nil)
	return &SupabaseHost{store: &supabaseStore{sbClient: sbClient}, bucket: cfg.BUCKET}
}

func (s *SupabaseHost) Name() string { return "supabase" }

// Upload uploads file to Supabase Storage
func (s *SupabaseHost) Upload(ctx context.Context, base64Image string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(base64Image)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	contentType := http.DetectContentType(data)
	if !utils.IsValidImageType(contentType) {
		return "", fmt.Errorf("invalid content type: %s", contentType)
	}

	key := utils.GenerateStorageKey("image" + extensionFor(contentType))
	if err := s.store.Put(s.bucket, key, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("failed to upload to supabase: %w", err)
	}

	publicURL := s.store.PublicURL(s.bucket, key)
	if publicURL == "" {
		return "", fmt.Errorf("supabase returned no public url for %s", key)
	}
	return publicURL, nil
}

// HealthCheck lists the bucket root to confirm credentials and bucket.
func (s *SupabaseHost) HealthCheck(ctx context.Context) string {
	if s.bucket == "" {
		return "not configured"
	}
	if err := s.store.Ping(s.bucket); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "healthy"
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

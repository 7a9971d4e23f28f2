package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hyperengineering/packvec/internal/config"
)

// mockS3Client implements s3Client for testing
type mockS3Client struct {
	err error

	callCount  int
	lastBucket string
	lastKey    string
	lastPath   string
}

func (m *mockS3Client) FPutObject(ctx context.Context, bucket, objectName, filePath string) error {
	m.callCount++
	m.lastBucket = bucket
	m.lastKey = objectName
	m.lastPath = filePath
	return m.err
}

// TestNewUploader_NoopWithoutBucket verifies local-only default
func TestNewUploader_NoopWithoutBucket(t *testing.T) {
	uploader, err := NewUploader(config.UploadConfig{})
	if err != nil {
		t.Fatalf("NewUploader() error = %v", err)
	}

	if _, ok := uploader.(*NoopUploader); !ok {
		t.Errorf("expected NoopUploader, got %T", uploader)
	}
	if err := uploader.Upload(context.Background(), "data/out.json"); err != nil {
		t.Errorf("noop upload should never fail, got: %v", err)
	}
}

// TestS3Uploader_UploadsOnce verifies bucket, key, and path wiring
func TestS3Uploader_UploadsOnce(t *testing.T) {
	mock := &mockS3Client{}
	uploader := &S3Uploader{client: mock, bucket: "exports", prefix: "packing"}

	if err := uploader.Upload(context.Background(), "data/packing-embeddings.json"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if mock.callCount != 1 {
		t.Errorf("expected 1 upload call, got %d", mock.callCount)
	}
	if mock.lastBucket != "exports" {
		t.Errorf("bucket = %q, want exports", mock.lastBucket)
	}
	if mock.lastKey != "packing/packing-embeddings.json" {
		t.Errorf("key = %q, want packing/packing-embeddings.json", mock.lastKey)
	}
	if mock.lastPath != "data/packing-embeddings.json" {
		t.Errorf("path = %q, want the local file path", mock.lastPath)
	}
}

// TestS3Uploader_NoPrefix verifies the key without a configured prefix
func TestS3Uploader_NoPrefix(t *testing.T) {
	mock := &mockS3Client{}
	uploader := &S3Uploader{client: mock, bucket: "exports"}

	if err := uploader.Upload(context.Background(), "data/out.json"); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if mock.lastKey != "out.json" {
		t.Errorf("key = %q, want out.json", mock.lastKey)
	}
}

// TestS3Uploader_WrapsError verifies upload failures carry context
func TestS3Uploader_WrapsError(t *testing.T) {
	originalErr := errors.New("connection refused")
	mock := &mockS3Client{err: originalErr}
	uploader := &S3Uploader{client: mock, bucket: "exports"}

	err := uploader.Upload(context.Background(), "data/out.json")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "upload export to S3") {
		t.Errorf("error should contain 'upload export to S3', got: %v", err)
	}
	if !errors.Is(err, originalErr) {
		t.Errorf("error should wrap original error")
	}
}

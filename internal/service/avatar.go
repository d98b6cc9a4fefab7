package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/pageza/devfolio/backend/config"
	"github.com/pageza/devfolio/backend/internal/logging"
)

// MaxAvatarSize caps uploaded avatar files.
const MaxAvatarSize = 5 << 20

var allowedAvatarTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// AvatarStore persists avatar images and returns the URL they are served from.
type AvatarStore interface {
	Save(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

// Avatar is a validated avatar upload.
type Avatar struct {
	Data        []byte
	ContentType string
	Extension   string
}

// ReadAvatar loads a multipart upload and checks it is a small image.
func ReadAvatar(fh *multipart.FileHeader) (*Avatar, error) {
	if fh.Size > MaxAvatarSize {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidAvatar, MaxAvatarSize)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open avatar: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, MaxAvatarSize+1))
	if err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}
	if len(data) > MaxAvatarSize {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidAvatar, MaxAvatarSize)
	}

	mtype := mimetype.Detect(data)
	if !allowedAvatarTypes[mtype.String()] {
		return nil, fmt.Errorf("%w: unsupported type %s", ErrInvalidAvatar, mtype.String())
	}

	return &Avatar{Data: data, ContentType: mtype.String(), Extension: mtype.Extension()}, nil
}

// LocalAvatarStore writes avatars below a media root served as static files.
type LocalAvatarStore struct {
	root    string
	baseURL string
}

func NewLocalAvatarStore(root, baseURL string) *LocalAvatarStore {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalAvatarStore{root: root, baseURL: baseURL}
}

func (s *LocalAvatarStore) Save(_ context.Context, key, _ string, data []byte) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create avatar directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}
	return s.baseURL + key, nil
}

func (s *LocalAvatarStore) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove avatar: %w", err)
	}
	return nil
}

// S3AvatarStore uploads avatars to the configured bucket.
type S3AvatarStore struct {
	s3Config *config.S3Config
	log      *slog.Logger
}

func NewS3AvatarStore(s3Config *config.S3Config) *S3AvatarStore {
	return &S3AvatarStore{s3Config: s3Config, log: logging.Component("avatar")}
}

func (s *S3AvatarStore) Save(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := s.s3Config.PublicURL(key)
	s.log.Info("uploaded avatar", "url", publicURL)
	return publicURL, nil
}

func (s *S3AvatarStore) Delete(ctx context.Context, key string) error {
	_, err := s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

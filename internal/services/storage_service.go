// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/minicart/minicart-backend/internal/config"
	"github.com/minicart/minicart-backend/internal/i18n"
)

const imageFolder = "images"

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// StorageService keeps catalog images in S3 when credentials are configured,
// otherwise on local disk under the upload directory.
type StorageService struct {
	s3Client s3iface.S3API
	aws      config.AWSConfig
	upload   config.UploadConfig
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

func NewStorageService(awsCfg config.AWSConfig, uploadCfg config.UploadConfig) (*StorageService, error) {
	service := &StorageService{aws: awsCfg, upload: uploadCfg}
	if awsCfg.AccessKeyID == "" {
		// Local disk for development
		return service, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(awsCfg.Region),
		Credentials: credentials.NewStaticCredentials(
			awsCfg.AccessKeyID,
			awsCfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	service.s3Client = s3.New(sess)
	return service, nil
}

func (s *StorageService) maxSize() int64 {
	return int64(s.upload.MaxSizeMB) * 1024 * 1024
}

// UploadImage stores an image and returns where it can be fetched. The type is
// taken from the file content, not from its name.
func (s *StorageService) UploadImage(file io.Reader, size int64) (*UploadResult, error) {
	if size > s.maxSize() {
		return nil, newError(ErrValidation, i18n.KeyFileTooLarge)
	}

	// One extra byte tells an oversized body apart from one at the limit.
	fileBytes, err := io.ReadAll(io.LimitReader(file, s.maxSize()+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(fileBytes)) > s.maxSize() {
		return nil, newError(ErrValidation, i18n.KeyFileTooLarge)
	}

	contentType := http.DetectContentType(fileBytes)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, newError(ErrValidation, i18n.KeyFileInvalidType)
	}

	key := s.generateKey(ext)
	if s.s3Client != nil {
		return s.uploadToS3(fileBytes, key, contentType)
	}
	return s.uploadToLocal(fileBytes, key, contentType)
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.aws.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	return &UploadResult{
		URL:      s.getS3URL(key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) (*UploadResult, error) {
	path := filepath.Join(s.upload.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL:      strings.TrimSuffix(s.upload.BaseURL, "/") + "/" + key,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

// DeleteFile removes an uploaded image by the key UploadImage returned.
func (s *StorageService) DeleteFile(key string) error {
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if !strings.HasPrefix(key, imageFolder+"/") {
		return newError(ErrValidation, i18n.KeyFileInvalidKey)
	}

	if s.s3Client == nil {
		localPath := filepath.Join(s.upload.Dir, filepath.FromSlash(key))
		if err := os.Remove(localPath); err != nil {
			if os.IsNotExist(err) {
				return newError(ErrNotFound, i18n.KeyFileNotFound)
			}
			return fmt.Errorf("failed to delete file: %w", err)
		}
		logrus.WithField("key", key).Debug("Deleted local upload")
		return nil
	}

	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.aws.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// LocalDir is the directory served under the upload base URL, or "" when images live in S3.
func (s *StorageService) LocalDir() string {
	if s.s3Client != nil {
		return ""
	}
	return s.upload.Dir
}

func (s *StorageService) generateKey(ext string) string {
	timestamp := time.Now().UTC().Format("20060102")
	return fmt.Sprintf("%s/%s_%s%s", imageFolder, timestamp, uuid.New().String(), ext)
}

func (s *StorageService) getS3URL(key string) string {
	if s.aws.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.aws.CloudFrontURL, "/"), key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.aws.S3Bucket, s.aws.Region, key)
}

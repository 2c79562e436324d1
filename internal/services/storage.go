package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedResumeExts = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".doc":  {},
}

// StoredFile describes an upload persisted under the upload directory.
type StoredFile struct {
	Filename string
	Path     string
	Size     int64
}

type StorageService interface {
	// SaveFile checks the extension allow-list and size limit, then stores
	// file as <owner>_<uuid><ext>.
	SaveFile(file *multipart.FileHeader, owner string) (*StoredFile, error)
	DeleteFile(path string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
}

func NewStorageService(uploadPath string, maxFileSize int64) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) SaveFile(file *multipart.FileHeader, owner string) (*StoredFile, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedResumeExts[ext]; !ok {
		return nil, fmt.Errorf("%w: file type %q not allowed, use .pdf, .docx or .doc", ErrInvalidUpload, ext)
	}

	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: file too large, max size %dMB", ErrInvalidUpload, s.maxFileSize/(1024*1024))
	}

	uniqueFilename := fmt.Sprintf("%s_%s%s", safeOwner(owner), uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StoredFile{
		Filename: uniqueFilename,
		Path:     filePath,
		Size:     written,
	}, nil
}

// DeleteFile removes path. A file that is already gone is not an error.
func (s *storageService) DeleteFile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// safeOwner keeps identity strings usable as a file name prefix.
func safeOwner(owner string) string {
	if owner == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, owner)
}

package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is 5MB in bytes
	MaxFileSize = 5 * 1024 * 1024
)

// AllowedImageFormats are the extensions accepted for product and banner images
var AllowedImageFormats = []string{".png", ".jpg", ".jpeg", ".webp"}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile validates the uploaded file format and size
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	for _, allowed := range AllowedImageFormats {
		if ext == allowed {
			return nil
		}
	}

	return &FileUploadError{
		Code:    "INVALID_FILE_FORMAT",
		Message: fmt.Sprintf("Only %s files are allowed", strings.Join(AllowedImageFormats, ", ")),
	}
}

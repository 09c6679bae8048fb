package utils

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
		wantCode string
	}{
		{"valid png", "banner.png", 1024, false, ""},
		{"valid jpg", "tv.jpg", 1024, false, ""},
		{"valid jpeg", "laptop.jpeg", 1024, false, ""},
		{"valid webp", "phone.webp", 1024, false, ""},
		{"uppercase extension allowed", "BANNER.PNG", 1024, false, ""},
		{"gif rejected", "animation.gif", 1024, true, "INVALID_FILE_FORMAT"},
		{"no extension rejected", "banner", 1024, true, "INVALID_FILE_FORMAT"},
		{"executable rejected", "payload.exe", 1024, true, "INVALID_FILE_FORMAT"},
		{"too large", "huge.png", MaxFileSize + 1, true, "FILE_TOO_LARGE"},
		{"exactly max size allowed", "max.png", MaxFileSize, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := &multipart.FileHeader{
				Filename: tt.filename,
				Size:     tt.size,
			}

			err := ValidateImageFile(header)

			if tt.wantErr {
				assert.Error(t, err)
				uploadErr, ok := err.(*FileUploadError)
				assert.True(t, ok, "error should be a FileUploadError")
				assert.Equal(t, tt.wantCode, uploadErr.Code)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileUploadError(t *testing.T) {
	err := &FileUploadError{
		Code:    "TEST_ERROR",
		Message: "This is a test error",
	}

	assert.Equal(t, "This is a test error", err.Error())
}

package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveUploadedFile persists an uploaded photo or document under destDir and
// returns the stored path.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Create a unique filename
	ext := filepath.Ext(file.Filename)
	newFilename := time.Now().Format("20060102150405") + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filePath, nil
}

// GetFileURL maps a stored path onto the public uploads route. Files live
// under ./public/uploads and are served from /uploads, so subdirectories
// like profiles/ and properties/ must survive the mapping.
func GetFileURL(filePath string) string {
	if filePath == "" {
		return ""
	}
	path := filepath.ToSlash(filePath)
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "public/uploads/")
	return "/uploads/" + path
}

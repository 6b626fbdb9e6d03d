package utils

import (
	"os"
	"path/filepath"
	"strings"

	config "github.com/dkrause/service_market/configs"
)

// MaxUploadSize caps multipart file uploads at 5 MB.
const MaxUploadSize = 5 * 1024 * 1024

var (
	ImageExtensions       = []string{".jpg", ".jpeg", ".png"}
	ProfileFileExtensions = []string{".jpg", ".jpeg", ".png", ".pdf", ".doc", ".docx"}
)

func UploadDir() string {
	return config.ConfigDefault("UPLOAD_DIR", "uploads")
}

func AllowedExtension(filename string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}

func StoredFilePath(name string) string {
	return filepath.Join(UploadDir(), name)
}

// RemoveStoredFile deletes a file from the upload dir. Missing files are not
// an error: the row may reference an external URL or a file already swept.
func RemoveStoredFile(name string) {
	if name == "" {
		return
	}
	_ = os.Remove(StoredFilePath(name))
}

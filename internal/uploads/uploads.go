package uploads

import (
	"fmt"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// PublicPrefix is the URL path under which stored images are served.
const PublicPrefix = "/static/uploads"

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"webp": true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Allowed reports whether filename has an accepted image extension.
func Allowed(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return allowedExtensions[ext]
}

// SanitizeFilename keeps only the base name and replaces every character
// outside [A-Za-z0-9_.-] with an underscore. Leading dots are dropped.
func SanitizeFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Join(strings.Fields(base), "_")
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.TrimLeft(base, "._")
	if base == "" || base == "_" {
		return "image"
	}
	return base
}

// DiskStore writes uploaded images into a directory served as static files.
type DiskStore struct {
	dir string
}

// NewDiskStore creates dir if needed and returns a store writing into it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save stores the file under a sanitised, uniquely suffixed name and
// returns its public path.
func (s *DiskStore) Save(fh *multipart.FileHeader) (string, error) {
	name := uniqueName(SanitizeFilename(fh.Filename))
	if err := fasthttp.SaveMultipartFile(fh, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("failed to save upload %s: %w", fh.Filename, err)
	}
	return path.Join(PublicPrefix, name), nil
}

func uniqueName(sanitized string) string {
	ext := filepath.Ext(sanitized)
	stem := strings.TrimSuffix(sanitized, ext)
	if stem == "" {
		stem = "image"
	}
	return fmt.Sprintf("%s_%s%s", stem, uuid.New().String()[:8], strings.ToLower(ext))
}

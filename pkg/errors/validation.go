package errors

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// snapshotExts lists the image formats a window snapshot can be written as.
var snapshotExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// ValidateSnapshotPath validates the destination of a window snapshot.
//
// The rules are:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Extension must be .png, .jpg or .jpeg (case-insensitive)
func ValidateSnapshotPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidFormat, "snapshot path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFormat, "snapshot path contains invalid characters")
		}
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !snapshotExts[ext] {
		return New(ErrCodeInvalidFormat, "unsupported snapshot format %q (must be .png, .jpg or .jpeg)", ext)
	}
	return nil
}

// RequireFile reports MISSING_FILE when path does not name an existing
// regular file.
func RequireFile(path string) error {
	if path == "" {
		return New(ErrCodeMissingFile, "no file given")
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(ErrCodeMissingFile, "%s", path)
		}
		return Wrap(ErrCodeMissingFile, err, "%s", path)
	}
	if info.IsDir() {
		return New(ErrCodeMissingFile, "%s is a directory", path)
	}
	return nil
}

// ValidateName validates a registry lookup key such as a demo or surface
// name. Names are matched case-insensitively by the registries, so only
// emptiness and control characters are rejected here.
func ValidateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidScene, "%s name cannot be empty", kind)
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidScene, "%s name too long (max 128 characters)", kind)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidScene, "%s name contains invalid control characters", kind)
		}
	}
	return nil
}

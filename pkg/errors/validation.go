package errors

import (
	"os"
	"regexp"
	"unicode"
)

// ValidateMaxMissing checks the missing-character threshold. Zero is
// accepted; it simply produces no opportunities.
func ValidateMaxMissing(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "max missing must be >= 0, got %d", n)
	}
	return nil
}

// CompileFamilyFilter compiles a family name filter. An empty pattern
// means no filtering and yields a nil regexp.
func CompileFamilyFilter(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, Wrap(ErrCodeInvalidInput, err, "invalid family filter %q", pattern)
	}
	return re, nil
}

// ValidatePath rejects empty paths and paths containing control characters.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateDir checks that path names an existing directory. code is the
// error code to report, so callers can mark a missing corpus or catalog as
// the fatal condition it is.
func ValidateDir(code Code, path string) error {
	if err := ValidatePath(path); err != nil {
		return Wrap(code, err, "invalid directory")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return New(code, "directory does not exist: %s", path)
	}
	if err != nil {
		return Wrap(code, err, "stat %s", path)
	}
	if !info.IsDir() {
		return New(code, "not a directory: %s", path)
	}
	return nil
}

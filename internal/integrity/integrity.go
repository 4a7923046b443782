// Package integrity verifies downloaded artifacts against SHA-256 digest
// companion files.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// digestRegex matches the first 64-hex-digit token anywhere in a digest
// descriptor. The conventional layout is "<hex>  <filename>" but tools
// disagree on the details, so the surrounding text is not constrained.
var digestRegex = regexp.MustCompile(`[A-Fa-f0-9]{64}`)

// MismatchError reports a digest that did not match the artifact.
type MismatchError struct {
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("sha-256 mismatch: expected=%s actual=%s", e.Expected, e.Actual)
}

// FormatError reports a digest descriptor with no recognizable digest token.
type FormatError struct {
	Path string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("no 64-hex-digit sha-256 token found in %s", e.Path)
}

// FileDigest computes the lowercase hex SHA-256 digest of a file,
// streaming so memory use is constant regardless of file size.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ExpectedDigest extracts the digest value from a descriptor file.
// Returns a FormatError when no 64-hex token is present.
func ExpectedDigest(descriptorPath string) (string, error) {
	content, err := os.ReadFile(descriptorPath)
	if err != nil {
		return "", fmt.Errorf("failed to read digest file %s: %w", descriptorPath, err)
	}
	m := digestRegex.FindString(string(content))
	if m == "" {
		return "", &FormatError{Path: descriptorPath}
	}
	return strings.ToLower(m), nil
}

// Verify checks artifactPath against the digest recorded in descriptorPath.
// Returns nil on match, a MismatchError carrying both digests otherwise.
func Verify(descriptorPath, artifactPath string) error {
	expected, err := ExpectedDigest(descriptorPath)
	if err != nil {
		return err
	}
	actual, err := FileDigest(artifactPath)
	if err != nil {
		return err
	}
	if actual != expected {
		return &MismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

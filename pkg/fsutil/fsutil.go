// Package fsutil provides the file system primitives of mdwarehouse:
// bounded document reads with a content digest, and atomic output writes.
package fsutil

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates the file exceeds the byte cap.
	ErrTooLarge = errors.New("file too large")
)

// FileInfo captures the state of a document at read time.
type FileInfo struct {
	// Path is the path the file was read from.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the content.
	Hash [sha256.Size]byte
}

// Digest returns the hex form of Hash.
func (fi *FileInfo) Digest() string {
	return hex.EncodeToString(fi.Hash[:])
}

// Digest returns the hex SHA-256 of content.
func Digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ReadFile reads a file and returns its content along with metadata.
// A maxBytes above zero rejects larger files with ErrTooLarge before and
// while reading, so an oversized document is never fully loaded.
func ReadFile(ctx context.Context, path string, maxBytes int64) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	if maxBytes > 0 && stat.Size() > maxBytes {
		return nil, nil, fmt.Errorf("%w: %s: %d bytes exceeds %d", ErrTooLarge, path, stat.Size(), maxBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		// The file may have grown since the stat.
		r = io.LimitReader(f, maxBytes+1)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	if maxBytes > 0 && int64(len(content)) > maxBytes {
		return nil, nil, fmt.Errorf("%w: %s: exceeds %d bytes", ErrTooLarge, path, maxBytes)
	}

	info := &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    int64(len(content)),
		Hash:    sha256.Sum256(content),
	}

	return content, info, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}

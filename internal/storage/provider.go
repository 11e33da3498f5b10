// Package storage defines the workspace file-system abstraction.
package storage

import "github.com/starford/ansuz/internal/models"

// Provider is the interface for workspace file operations.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to workspace root).
	List(dir string) ([]models.DocumentMeta, error)
	// Read returns the raw bytes of the file at path (relative to workspace root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to workspace root).
	Write(path string, content []byte) error
	// Delete removes the file at path (relative to workspace root).
	Delete(path string) error
	// Move renames oldPath to newPath (both relative to workspace root).
	Move(oldPath, newPath string) error
}

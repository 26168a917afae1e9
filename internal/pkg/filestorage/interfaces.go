package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for resume storage operations
type FileStorage interface {
	// SaveResume validates an uploaded resume and stores it under a generated name
	SaveResume(fileHeader *multipart.FileHeader) (string, error)

	// DeleteFile removes a stored file; missing files are not an error
	DeleteFile(name string) error

	// GetFullPath resolves a stored name to its filesystem path, or "" if the name is unsafe
	GetFullPath(name string) string
}

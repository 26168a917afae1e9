package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/yigit/alumnilink/internal/pkg/apperrors"
	"github.com/yigit/alumnilink/internal/pkg/logger"
)

// ErrInvalidFileType is returned for uploads outside the resume allowlist
var ErrInvalidFileType = &apperrors.CustomError{
	Err:     apperrors.ErrValidationFailed,
	Message: "Invalid file format. Only PDF, DOC, DOCX allowed",
}

// ErrFileTooLarge is returned when an upload exceeds the configured limit
var ErrFileTooLarge = &apperrors.CustomError{
	Err:     apperrors.ErrValidationFailed,
	Message: "File is too large",
}

// resumeTypes maps each accepted extension to the content types it may carry.
// Legacy .doc files sniff as OLE storage; .docx files are zip containers.
var resumeTypes = map[string][]string{
	".pdf": {"application/pdf"},
	".doc": {"application/msword", "application/x-ole-storage"},
	".docx": {
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/zip",
	},
}

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string
	maxSize  int64
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
// A maxSize of zero disables the size check.
func NewLocalStorage(basePath string, maxSize int64) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		maxSize:  maxSize,
	}, nil
}

// SaveResume checks extension and sniffed content type, then writes the file
// as <uuid><ext>. It returns the stored name.
func (ls *LocalStorage) SaveResume(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed, ok := resumeTypes[ext]
	if !ok {
		return "", ErrInvalidFileType
	}
	if ls.maxSize > 0 && fileHeader.Size > ls.maxSize {
		return "", ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to inspect uploaded file: %w", err)
	}
	if !matchesAny(mtype, allowed) {
		logger.Warn().Str("filename", fileHeader.Filename).Str("detected", mtype.String()).Msg("Rejected resume with unexpected content")
		return "", ErrInvalidFileType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind uploaded file: %w", err)
	}

	storedName := uuid.New().String() + ext
	dstPath := filepath.Join(ls.basePath, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err = io.Copy(dst, file); err != nil {
		dst.Close()
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", storedName).Msg("File saved successfully")
	return storedName, nil
}

func matchesAny(mtype *mimetype.MIME, allowed []string) bool {
	for m := mtype; m != nil; m = m.Parent() {
		for _, a := range allowed {
			if m.Is(a) {
				return true
			}
		}
	}
	return false
}

// DeleteFile removes a file from the storage directory.
// Returns nil if deletion is successful or if the file doesn't exist.
func (ls *LocalStorage) DeleteFile(name string) error {
	if name == "" {
		return nil
	}

	physicalPath := ls.GetFullPath(name)
	if physicalPath == "" {
		return fmt.Errorf("invalid file path: %s", name)
	}

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// GetFullPath returns the filesystem path for a stored name. Only the base
// name is honoured so callers cannot escape the storage directory.
func (ls *LocalStorage) GetFullPath(name string) string {
	filename := filepath.Base(filepath.Clean("/" + name))
	if filename == "" || filename == "." || filename == "/" || filename == ".." {
		return ""
	}
	return filepath.Join(ls.basePath, filename)
}

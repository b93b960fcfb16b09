package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"borica-qes/internal/config"
)

// DocumentService stores downloaded signed artifacts on disk.
type DocumentService interface {
	// SaveSigned writes the signed bytes under the signed folder, named by
	// the callback id and original file name. Returns the stored path.
	SaveSigned(callbackID, fileName string, content []byte) (string, error)

	// GetSignedPath returns the full path to the signed folder
	GetSignedPath() string
}

type documentService struct {
	config *config.DocumentConfig
	logger *zap.Logger
}

func NewDocumentService(cfg *config.Config, logger *zap.Logger) (DocumentService, error) {
	svc := &documentService{
		config: &cfg.Document,
		logger: logger,
	}

	if err := os.MkdirAll(svc.GetSignedPath(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}

	logger.Info("Document service initialized",
		zap.String("base_path", cfg.Document.BasePath),
		zap.String("signed_folder", svc.GetSignedPath()),
	)

	return svc, nil
}

func (s *documentService) GetSignedPath() string {
	return filepath.Join(s.config.BasePath, s.config.SignedFolder)
}

func (s *documentService) SaveSigned(callbackID, fileName string, content []byte) (string, error) {
	name := sanitizeFileName(fileName)
	if name == "" {
		name = "signed"
	}
	target := filepath.Join(s.GetSignedPath(), fmt.Sprintf("%s_%s", callbackID, name))

	// Write to a temp file first so a crash never leaves a partial artifact
	tmp, err := os.CreateTemp(s.GetSignedPath(), ".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write signed content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to move signed content into place: %w", err)
	}

	s.logger.Info("Signed content stored",
		zap.String("callback_id", callbackID),
		zap.String("path", target),
		zap.Int("size", len(content)),
	)

	return target, nil
}

// sanitizeFileName strips path separators so a server-supplied name cannot
// escape the signed folder.
func sanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

var Module = fx.Module("document",
	fx.Provide(NewDocumentService),
)

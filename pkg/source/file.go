package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/techradar/pkg/errors"
)

// FileSource reads a local radar file. The format follows the extension.
type FileSource struct {
	Path   string
	Logger *log.Logger
}

// Kind implements Source.
func (s *FileSource) Kind() string { return "file" }

// Load reads and parses the file.
func (s *FileSource) Load(_ context.Context) (*Document, error) {
	format, err := FormatFromPath(s.Path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "radar file %s", s.Path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", s.Path)
	}
	return Parse(format, data, s.Logger)
}

// FormatFromPath maps a file extension to a parse format.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv", nil
	case ".html", ".htm":
		return "html", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported radar file %q", filepath.Base(path))
}

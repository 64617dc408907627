// Package records persists ROI record sets as JSON files next to the images
// they describe.
package records

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/soocke/roi-editor-go/domain/roi"
)

const (
	// maxNameAttempts bounds the roi_<stem>_(i).json numbering.
	maxNameAttempts = 100
	// fileMode is applied to saved record sets; CreateTemp starts at 0600.
	fileMode os.FileMode = 0o644
)

var (
	// ErrNotRecordSet reports a path that is not a .json record set.
	ErrNotRecordSet = errors.New("not a record set file")
	// ErrNoFreeName reports that every numbered record set name is taken.
	ErrNoFreeName = errors.New("no free record set name")
)

// Store reads and writes record set files. Load and Save are
// all-or-nothing: a failed load returns no boxes and a failed save leaves
// the previous file in place.
type Store struct {
	logger *slog.Logger
}

// NewStore returns a Store logging to logger (may be nil).
func NewStore(logger *slog.Logger) *Store { return &Store{logger: logger} }

// Load reads and decodes the record set at path.
func (s *Store) Load(path string) ([]roi.Box, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read record set: %w", err)
	}
	boxes, err := roi.DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if s.logger != nil {
		s.logger.Debug("records loaded", "path", path, "rois", len(boxes))
	}
	return boxes, nil
}

// Save encodes boxes and replaces the file at path atomically.
func (s *Store) Save(path string, boxes []roi.Box) error {
	data, err := roi.EncodeRecords(boxes)
	if err != nil {
		return fmt.Errorf("encode record set: %w", err)
	}
	if err := writeFileAtomic(path, data); err != nil {
		if s.logger != nil {
			s.logger.Error("records save failed", "path", path, "error", err)
		}
		return err
	}
	if s.logger != nil {
		s.logger.Info("records saved", "path", path, "rois", len(boxes), "size", humanize.Bytes(uint64(len(data))))
	}
	return nil
}

// IsRecordSet reports whether path names a readable .json file holding a
// well-formed record set.
func (s *Store) IsRecordSet(path string) bool {
	if !HasRecordExt(path) {
		return false
	}
	_, err := s.Load(path)
	return err == nil
}

// HasRecordExt reports whether path has the record set extension.
func HasRecordExt(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// NextPath proposes a new record set path next to imagePath named
// roi_<stem>_(i).json with the smallest i whose file does not exist and
// which taken does not report (taken may be nil).
func NextPath(imagePath string, taken func(string) bool) (string, error) {
	dir := filepath.Dir(imagePath)
	stem := strings.TrimSuffix(filepath.Base(imagePath), filepath.Ext(imagePath))
	for i := 1; i <= maxNameAttempts; i++ {
		p := filepath.Join(dir, fmt.Sprintf("roi_%s_(%d).json", stem, i))
		if taken != nil && taken(p) {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", p, err)
		}
		return p, nil
	}
	return "", fmt.Errorf("%w for %s", ErrNoFreeName, filepath.Base(imagePath))
}

// Exists reports whether a file exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()
	if err = tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

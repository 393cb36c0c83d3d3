package export

import (
	"os"
	"path/filepath"
	"sync"

	apperrors "metalwatch/internal/errors"
)

// Writer owns the single "last download" slot. A second export before the
// first is consumed simply replaces the slot; the previous transient handle
// is released before the replacement lands.
type Writer struct {
	dir string

	mu   sync.Mutex
	last *os.File
}

// NewWriter creates a writer that saves reports under dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Save writes the report bytes under the given filename and returns the
// full path. Empty data is a no-op and returns an empty path.
func (w *Writer) Save(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", apperrors.NewExportError(filepath.Ext(filename), "mkdir", err)
	}

	path := filepath.Join(w.dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return "", apperrors.NewExportError(filepath.Ext(filename), "create", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", apperrors.NewExportError(filepath.Ext(filename), "write", err)
	}

	w.mu.Lock()
	if w.last != nil {
		w.last.Close()
	}
	w.last = f
	w.mu.Unlock()

	return path, nil
}

// LastPath returns the path of the most recent export, empty when none.
func (w *Writer) LastPath() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return ""
	}
	return w.last.Name()
}

// Close releases the last download slot.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.last == nil {
		return nil
	}
	err := w.last.Close()
	w.last = nil
	return err
}

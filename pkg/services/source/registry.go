package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/de-tools/condition-atlas/pkg/models/domain"
)

// Reader loads a condition log from a file. Rows without a usable date are dropped;
// the returned records are in file order and may repeat dates.
type Reader interface {
	Read(ctx context.Context, path string) ([]domain.ConditionRecord, error)
}

// Registry maps file formats to readers
type Registry interface {
	// Register adds a reader for a format, named by its file extension without the dot
	Register(format string, reader Reader) error
	// ReaderFor selects the reader matching the extension of path
	ReaderFor(path string) (Reader, error)
	// ListFormats returns the registered formats
	ListFormats() []string
}

type registry struct {
	mu      sync.RWMutex
	readers map[string]Reader
}

func NewRegistry(readers map[string]Reader) (Registry, error) {
	r := &registry{readers: make(map[string]Reader)}
	for format, reader := range readers {
		if err := r.Register(format, reader); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) Register(format string, reader Reader) error {
	format = normalize(format)
	if format == "" {
		return fmt.Errorf("format name cannot be empty")
	}
	if reader == nil {
		return fmt.Errorf("reader cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.readers[format]; exists {
		return fmt.Errorf("format %q is already registered", format)
	}

	r.readers[format] = reader
	return nil
}

func (r *registry) ReaderFor(path string) (Reader, error) {
	format := normalize(filepath.Ext(path))

	r.mu.RLock()
	reader, exists := r.readers[format]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported input format %q for %s", format, path)
	}
	return reader, nil
}

func (r *registry) ListFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]string, 0, len(r.readers))
	for format := range r.readers {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

func normalize(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}

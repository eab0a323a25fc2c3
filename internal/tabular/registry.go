package tabular

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupportedFormat is returned when no registered format handles a file.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Options tune how files are read and written. Zero values select defaults.
type Options struct {
	Comma    rune   // CSV delimiter (default ',')
	Encoding string // CSV input encoding (default UTF-8)
	Sheet    string // XLSX sheet (default: first sheet on read, "Sheet1" on write)
}

// ReadFunc decodes a whole file into a Table.
type ReadFunc func(r io.Reader, opts Options) (*Table, error)

// WriteFunc encodes a Table.
type WriteFunc func(w io.Writer, t *Table, opts Options) error

// Format describes a file format that can round-trip a Table.
type Format struct {
	Name       string   // Unique identifier: "csv"
	Extensions []string // Lowercase, with dot: ".csv"
	Read       ReadFunc
	Write      WriteFunc
}

var (
	registry   = make(map[string]Format)
	registryMu sync.RWMutex
)

// Register adds a format to the registry.
// Panics if a format with the same name is already registered.
func Register(f Format) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[f.Name]; exists {
		panic(fmt.Sprintf("format already registered: %s", f.Name))
	}
	registry[f.Name] = f
}

// Get returns a format by name.
func Get(name string) (Format, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	f, ok := registry[strings.ToLower(name)]
	return f, ok
}

// ForPath returns the format registered for the path's extension.
func ForPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))

	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, f := range registry {
		for _, e := range f.Extensions {
			if e == ext {
				return f, nil
			}
		}
	}
	return Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(path))
}

// Formats returns all registered formats sorted by name.
func Formats() []Format {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Format, 0, len(registry))
	for _, f := range registry {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// FormatNames returns the sorted names of all registered formats.
func FormatNames() []string {
	formats := Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name
	}
	return names
}

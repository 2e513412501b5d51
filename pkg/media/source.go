package media

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// FileSource is a file on the local filesystem.
type FileSource struct {
	Path string
	// Type overrides content-type detection when set.
	Type string
}

// Name returns the base name of the file.
func (f FileSource) Name() string {
	return filepath.Base(f.Path)
}

// ContentType derives the type from the extension, falling back to sniffing
// the first bytes of the file.
func (f FileSource) ContentType() string {
	if f.Type != "" {
		return f.Type
	}
	if t := mime.TypeByExtension(filepath.Ext(f.Path)); t != "" {
		return t
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return DefaultContentType
	}
	defer file.Close()
	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	return http.DetectContentType(head[:n])
}

// Open opens the file for reading.
func (f FileSource) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

// BytesSource is an in-memory blob, as received from an upload.
type BytesSource struct {
	Filename string
	Type     string
	Data     []byte
}

func (b BytesSource) Name() string        { return b.Filename }
func (b BytesSource) ContentType() string { return b.Type }

func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

// FromPaths wraps plain file paths as sources.
func FromPaths(paths ...string) []Source {
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, FileSource{Path: p})
	}
	return sources
}

// FromPatterns expands doublestar glob patterns (e.g. "fotos/**/*.jpg") into
// file sources. Matches of one pattern are sorted; patterns keep their order.
// A pattern without glob characters must name an existing file.
func FromPatterns(patterns ...string) ([]Source, error) {
	var sources []Source
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			sources = append(sources, FileSource{Path: m})
		}
	}
	return sources, nil
}

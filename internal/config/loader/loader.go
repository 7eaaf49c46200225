// Package loader reads configuration sources into nested maps.
//
// Files are TOML or YAML, chosen by extension. Environment variables are
// mapped onto dotted setting paths. A source that does not exist loads
// as nil with no error.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat indicates a config file extension with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Loader produces one configuration layer.
type Loader interface {
	Load() (map[string]any, error)
}

// FileSystem is the subset of file access the loaders need.
// fstest.MapFS satisfies it, which is what the tests use.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
}

type osFS struct{}

func (osFS) ReadFile(name string) ([]byte, error)  { return os.ReadFile(name) }
func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// DefaultFS returns the operating system's file system.
func DefaultFS() FileSystem {
	return osFS{}
}

// Format is a config file syntax.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Decode parses data in the given format. source names the input in
// parse errors.
func Decode(format Format, source string, data []byte) (map[string]any, error) {
	var (
		m   map[string]any
		err error
	)
	switch format {
	case FormatTOML:
		m, err = decodeTOML(source, data)
	case FormatYAML:
		m, err = decodeYAML(source, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// File loads a single config file.
type File struct {
	fsys   FileSystem
	path   string
	format Format
}

// NewFile returns a loader for path, picking the format from its extension.
func NewFile(fsys FileSystem, path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &File{fsys: fsys, path: path, format: format}, nil
}

// Format returns the file's format.
func (f *File) Format() Format { return f.format }

// Load reads and decodes the file.
func (f *File) Load() (map[string]any, error) {
	data, err := f.fsys.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", f.path, err)
	}
	return Decode(f.format, f.path, data)
}

// ParseError is a syntax error in a config source. Line and Column are
// 1-based and zero when the decoder did not report them.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	loc := e.Path
	if e.Line > 0 {
		loc += fmt.Sprintf(":%d", e.Line)
		if e.Column > 0 {
			loc += fmt.Sprintf(":%d", e.Column)
		}
	}
	return fmt.Sprintf("parse error at %s: %s", loc, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

package gosmithy

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExtensions are the file extensions recognized as Smithy IDL files.
var DefaultExtensions = []string{".smithy"}

// Source enumerates and reads IDL files. Paths returned by Files are the
// paths used in diagnostics.
type Source interface {
	// Files returns the paths of all IDL files known to this source.
	Files() ([]string, error)

	// Read returns the content of one of the paths returned by Files.
	Read(path string) ([]byte, error)
}

// SourceOption configures a source.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	extensions []string
}

func defaultSourceConfig() sourceConfig {
	return sourceConfig{extensions: DefaultExtensions}
}

// WithExtensions sets the file extensions recognized by this source.
func WithExtensions(exts ...string) SourceOption {
	return func(c *sourceConfig) {
		c.extensions = exts
	}
}

// --- Dir source (single directory) ---

type dirSource struct {
	path   string
	config sourceConfig
}

// Dir creates a Source over the IDL files of a single directory, without
// recursion.
func Dir(path string, opts ...SourceOption) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &dirSource{path: path, config: cfg}, nil
}

func (s *dirSource) Files() ([]string, error) {
	entries, err := os.ReadDir(s.path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(s.path, entry.Name())
		if hasExtension(path, s.config.extensions) {
			files = append(files, path)
		}
	}
	return files, nil
}

func (s *dirSource) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// --- DirTree source (recursive) ---

type treeSource struct {
	root   string
	config sourceConfig
}

// DirTree creates a Source that recursively walks a directory tree for
// IDL files.
func DirTree(root string, opts ...SourceOption) (Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: root, Err: os.ErrInvalid}
	}
	cfg := defaultSourceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &treeSource{root: root, config: cfg}, nil
}

func (s *treeSource) Files() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if hasExtension(path, s.config.extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *treeSource) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// --- Files source (explicit list) ---

type fileSource struct {
	paths []string
}

// Files creates a Source over an explicit list of file paths. The paths
// are used as given; extensions are not checked.
func Files(paths ...string) Source {
	return &fileSource{paths: paths}
}

func (s *fileSource) Files() ([]string, error) {
	return s.paths, nil
}

func (s *fileSource) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// --- Mem source (in-memory) ---

type memSource struct {
	files map[string][]byte
}

// Mem creates a Source over in-memory file contents keyed by path. Useful
// for tests and generated models.
func Mem(files map[string][]byte) Source {
	return &memSource{files: files}
}

func (s *memSource) Files() ([]string, error) {
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *memSource) Read(path string) ([]byte, error) {
	content, ok := s.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return content, nil
}

// --- Multi source ---

type multiSource struct {
	sources []Source
}

// Multi combines several sources into one. Files are enumerated in source
// order; duplicate paths keep the first occurrence.
func Multi(sources ...Source) Source {
	return &multiSource{sources: sources}
}

func (s *multiSource) Files() ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, src := range s.sources {
		paths, err := src.Files()
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}
	return files, nil
}

func (s *multiSource) Read(path string) ([]byte, error) {
	var lastErr error = fs.ErrNotExist
	for _, src := range s.sources {
		content, err := src.Read(path)
		if err == nil {
			return content, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

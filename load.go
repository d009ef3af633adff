package gosmithy

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"sync"

	"github.com/gosmithy/gosmithy/internal/assembler"
	"github.com/gosmithy/gosmithy/internal/parser"
	"github.com/gosmithy/gosmithy/model"
)

// Load reads every IDL file from the source, parses the files in
// parallel, and assembles them into one model. Use Multi() to combine
// multiple sources.
//
// Example:
//
//	m, err := gosmithy.Load(
//	    gosmithy.DirTree("./model"),
//	    gosmithy.WithLogger(slog.Default()),
//	)
//
// Load returns an error only for I/O failures; syntax and semantic
// problems are reported through the model's Diagnostics.
func Load(source Source, opts ...LoadOption) (*model.Model, error) {
	return LoadContext(context.Background(), source, opts...)
}

// LoadContext is Load with cancellation.
func LoadContext(ctx context.Context, source Source, opts ...LoadOption) (*model.Model, error) {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var sources []Source
	if source != nil {
		sources = append(sources, source)
	}
	if cfg.searchPath {
		sources = append(sources, searchPathSources()...)
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	src := Multi(sources...)

	paths, err := src.Files()
	if err != nil {
		return nil, err
	}
	// Deterministic file order regardless of source enumeration.
	paths = slices.Clone(paths)
	slices.Sort(paths)

	logger := cfg.logger
	if logEnabled(logger, slog.LevelInfo) {
		logger.LogAttrs(ctx, slog.LevelInfo, "loading model",
			slog.Int("files", len(paths)))
	}

	files := make([]assembler.File, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case sem <- struct{}{}:
			}
			defer func() { <-sem }()

			content, err := src.Read(path)
			if err != nil {
				errs[i] = err
				return
			}

			p := parser.New(path, content, nil, componentLogger(logger, "parser"))
			files[i] = assembler.File{
				Path:   path,
				Source: content,
				AST:    p.ParseFile(),
			}
		}(i, path)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	parsed := files[:0]
	for _, f := range files {
		if f.AST != nil {
			parsed = append(parsed, f)
		}
	}

	m := assembler.Assemble(parsed, componentLogger(logger, "assembler"))

	if logEnabled(logger, slog.LevelInfo) {
		logger.LogAttrs(ctx, slog.LevelInfo, "loading complete",
			slog.Int("shapes", m.NumShapes()),
			slog.Int("diagnostics", len(m.Diagnostics)))
	}
	return m, nil
}

// LoadFile is a convenience for loading a single IDL file.
func LoadFile(path string, opts ...LoadOption) (*model.Model, error) {
	return Load(Files(path), opts...)
}

// ParseString parses IDL text without touching the filesystem and
// assembles it alone. The path is used in diagnostics.
func ParseString(path, text string, opts ...LoadOption) (*model.Model, error) {
	return Load(Mem(map[string][]byte{path: []byte(text)}), opts...)
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("component", component))
}

func logEnabled(logger *slog.Logger, level slog.Level) bool {
	return logger != nil && logger.Enabled(context.Background(), level)
}

package gosmithy

import (
	"os"
	"path/filepath"
	"strings"
)

// searchPathSources returns fallback sources for the directories named by
// GOSMITHY_PATH. A leading '+' appends the default directories after the
// listed ones; without it the variable replaces the defaults entirely.
func searchPathSources() []Source {
	dirs := searchPathDirs(os.Getenv("GOSMITHY_PATH"))
	var sources []Source
	for _, d := range dirs {
		if src, err := DirTree(d); err == nil {
			sources = append(sources, src)
		}
	}
	return sources
}

func searchPathDirs(env string) []string {
	if env == "" {
		return filterExistingDirs(defaultSearchDirs())
	}
	appendDefaults := strings.HasPrefix(env, "+")
	env = strings.TrimPrefix(env, "+")

	dirs := filepath.SplitList(env)
	if appendDefaults {
		dirs = append(dirs, defaultSearchDirs()...)
	}
	return filterExistingDirs(dedup(dirs))
}

func defaultSearchDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".smithy", "models"))
	}
	dirs = append(dirs,
		"/usr/local/share/smithy/models",
		"/usr/share/smithy/models",
	)
	return dirs
}

func dedup(dirs []string) []string {
	seen := make(map[string]struct{}, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

func filterExistingDirs(dirs []string) []string {
	out := dirs[:0]
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			out = append(out, d)
		}
	}
	return out
}

package walk

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/bmatcuk/doublestar/v4"
)

// skipDirs lists directory names that never contain source worth scanning.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
	".venv":        true,
	"venv":         true,
	"vendor":       true,
}

// Options configures file discovery, mirroring spec §6's --extensions and
// the CLI's positional path arguments.
type Options struct {
	Extensions []string // without leading dot, e.g. "py", "go"
	Include    []string // doublestar glob patterns
	Exclude    []string // doublestar glob patterns
}

// Collect walks paths (files or directories), respecting a root .gitignore
// when present, filtering by extension, then deduplicating by canonical
// path (spec §6's "deduplicated by canonical path").
func Collect(paths []string, opts Options) ([]string, error) {
	extSet := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		extSet[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	seen := make(map[string]bool)
	var files []string

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		var gi *ignore.GitIgnore
		if info.IsDir() {
			gitignorePath := filepath.Join(root, ".gitignore")
			if _, err := os.Stat(gitignorePath); err == nil {
				gi, _ = ignore.CompileIgnoreFile(gitignorePath)
			}
		}

		if !info.IsDir() {
			matchAndAdmit(root, root, extSet, opts, nil, seen, &files)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				name := d.Name()
				if name != "." && strings.HasPrefix(name, ".") {
					return fs.SkipDir
				}
				if skipDirs[name] {
					return fs.SkipDir
				}
				return nil
			}
			matchAndAdmit(path, root, extSet, opts, gi, seen, &files)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

func matchAndAdmit(path, root string, extSet map[string]bool, opts Options, gi *ignore.GitIgnore, seen map[string]bool, files *[]string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if len(extSet) > 0 && !extSet[ext] {
		return false
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	if gi != nil && gi.MatchesPath(rel) {
		return false
	}

	if len(opts.Exclude) > 0 && matchesAny(opts.Exclude, rel) {
		return false
	}
	if len(opts.Include) > 0 && !matchesAny(opts.Include, rel) {
		return false
	}

	canonical, err := filepath.Abs(path)
	if err != nil {
		canonical = path
	}
	if seen[canonical] {
		return false
	}
	seen[canonical] = true
	*files = append(*files, path)
	return true
}

func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

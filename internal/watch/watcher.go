// Package watch notifies about changes to request and schema files
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ChangeFunc is called for every matching file event
type ChangeFunc func(path string, op fsnotify.Op)

// FileWatcher watches files for changes based on patterns
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	exclude  []string
	onChange ChangeFunc
	logger   zerolog.Logger

	// roots are the directories given to AddDirectory; directory excludes
	// apply only below them
	roots []string
}

// NewFileWatcher creates a new file watcher. Patterns are matched against
// the base name; "**/*.ext" matches the extension at any depth. An exclude
// pattern ending in "/" names a directory skipped with everything below it.
func NewFileWatcher(patterns, exclude []string, onChange ChangeFunc, logger zerolog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create watcher")
	}

	return &FileWatcher{
		watcher:  watcher,
		patterns: patterns,
		exclude:  exclude,
		onChange: onChange,
		logger:   logger.With().Str("component", "watch").Logger(),
	}, nil
}

// AddDirectory recursively adds a directory to the watcher
func (fw *FileWatcher) AddDirectory(dir string) error {
	fw.roots = append(fw.roots, filepath.Clean(dir))
	return fw.addTree(dir)
}

func (fw *FileWatcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && fw.excludedDir(path) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch directory %s", path)
		}
		return nil
	})
}

// Start begins watching for file changes and blocks until ctx is done
func (fw *FileWatcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watcher channel closed")
			}

			if fw.shouldWatch(event.Name) {
				fw.onChange(event.Name, event.Op)
			}

			// new directories are watched too
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !fw.excludedDir(event.Name) {
					if err := fw.addTree(event.Name); err != nil {
						fw.logger.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
					}
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			if err != nil {
				fw.logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}
}

// excludedDir reports whether a directory matches a "name/" exclude
func (fw *FileWatcher) excludedDir(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range fw.exclude {
		dirPattern, ok := strings.CutSuffix(pattern, "/")
		if !ok {
			continue
		}
		if matched, _ := filepath.Match(dirPattern, base); matched {
			return true
		}
	}
	return false
}

// shouldWatch checks if a file should trigger a change event based on patterns
func (fw *FileWatcher) shouldWatch(path string) bool {
	base := filepath.Base(path)

	dirs := fw.relativeDirs(path)
	for _, pattern := range fw.exclude {
		if dirPattern, ok := strings.CutSuffix(pattern, "/"); ok {
			for _, part := range dirs {
				if matched, _ := filepath.Match(dirPattern, part); matched {
					return false
				}
			}
			continue
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return false
		}
	}

	for _, pattern := range fw.patterns {
		if ext, ok := strings.CutPrefix(pattern, "**/*"); ok {
			if strings.HasSuffix(base, ext) {
				return true
			}
		} else if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// relativeDirs returns the directories between the enclosing root and path.
// Paths outside every root have none.
func (fw *FileWatcher) relativeDirs(path string) []string {
	dir := filepath.Dir(filepath.Clean(path))
	for _, root := range fw.roots {
		rel, err := filepath.Rel(root, dir)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if rel == "." {
			return nil
		}
		return strings.Split(filepath.ToSlash(rel), "/")
	}
	return nil
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}

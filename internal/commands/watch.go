package commands

import (
	"context"
	"io/fs"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/codestub/codestub/internal/config"
	"github.com/codestub/codestub/internal/schema"
	"github.com/codestub/codestub/internal/watch"
)

// watchDebounce collapses the burst of events editors emit for one save
const watchDebounce = 100 * time.Millisecond

// WatchOptions contains options for the watch command
type WatchOptions struct {
	Dir       string
	OutDir    string
	Language  string
	NoHarness bool
}

// regenerator turns a changed request or schema file into templates
type regenerator struct {
	ctrl     *Controller
	pipeline *pipeline
	opts     WatchOptions

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func (c *Controller) Watch(ctx context.Context, opts WatchOptions) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.OutDir == "" {
		opts.OutDir = filepath.Join(opts.Dir, "build")
	}

	r := &regenerator{
		ctrl:     c,
		pipeline: c.newPipeline(cfg, opts.NoHarness),
		opts:     opts,
		timers:   make(map[string]*time.Timer),
	}

	exclude := append([]string{config.FileName}, cfg.Watch.Exclude...)
	if rel, err := filepath.Rel(opts.Dir, opts.OutDir); err == nil && !strings.HasPrefix(rel, "..") && rel != "." {
		exclude = append(exclude, filepath.Base(opts.OutDir)+"/")
	}

	watcher, err := watch.NewFileWatcher(cfg.Watch.Include, exclude, r.schedule, c.Logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.AddDirectory(opts.Dir); err != nil {
		return errors.Wrap(err, "failed to watch directory")
	}

	// render what is already there before waiting for changes
	if err := filepath.WalkDir(opts.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != opts.Dir && excludedDir(exclude, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != config.FileName {
			r.regenerate(path)
		}
		return nil
	}); err != nil {
		return errors.Wrap(err, "failed to scan directory")
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c.Logger.Info().Str("dir", opts.Dir).Str("out_dir", opts.OutDir).Msg("watching for changes")
	err = watcher.Start(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func excludedDir(exclude []string, name string) bool {
	for _, pattern := range exclude {
		if dir, ok := strings.CutSuffix(pattern, "/"); ok {
			if matched, _ := filepath.Match(dir, name); matched {
				return true
			}
		}
	}
	return false
}

// schedule regenerates path once its events stop for watchDebounce
func (r *regenerator) schedule(path string, op fsnotify.Op) {
	if !op.Has(fsnotify.Write) && !op.Has(fsnotify.Create) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.timers[path]; ok {
		t.Stop()
	}
	r.timers[path] = time.AfterFunc(watchDebounce, func() {
		r.mu.Lock()
		delete(r.timers, path)
		r.mu.Unlock()
		r.regenerate(path)
	})
}

// regenerate renders one file; failures are logged and watching continues
func (r *regenerator) regenerate(path string) {
	logger := r.ctrl.Logger.With().Str("file", path).Logger()

	switch ext := strings.ToLower(filepath.Ext(path)); {
	case schema.IsRequestFile(path):
		req, err := schema.LoadRequest(path)
		if err != nil {
			logger.Warn().Err(err).Msg("skipping unreadable request")
			return
		}
		if r.opts.Language != "" {
			req.Language = r.opts.Language
		}
		code, outExt, err := r.pipeline.render(req)
		if err != nil {
			logger.Error().Err(err).Msg("template generation failed")
			return
		}
		out := filepath.Join(r.opts.OutDir, req.QuestionID+outExt)
		if err := writeOutput(out, code); err != nil {
			logger.Error().Err(err).Msg("failed to write template")
			return
		}
		logger.Info().Str("out", out).Msg("template regenerated")

	case ext == ".graphql" || ext == ".gql":
		written, err := r.ctrl.generateFromSchema(r.pipeline, GenerateOptions{
			Schema:   path,
			Language: r.opts.Language,
			OutDir:   r.opts.OutDir,
		})
		if err != nil {
			logger.Error().Err(err).Msg("schema generation failed")
		}
		logger.Info().Int("templates", len(written)).Msg("schema regenerated")
	}
}

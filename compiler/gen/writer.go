package gen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Writer writes generated output to a target directory, one file per
// entity, with parallel execution.
type Writer struct {
	target  string
	workers int

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks written files.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter creates a writer for the target directory of the config.
func NewWriter(c *Config) (*Writer, error) {
	if c == nil || c.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory in config")
	}
	w := &Writer{target: c.Target, workers: c.Workers}
	if w.workers <= 0 {
		w.workers = runtime.GOMAXPROCS(0)
	}
	return w, nil
}

// Metrics returns a copy of the write metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// Write writes every file of the output in parallel and returns the
// written paths in entity order. Files whose names collide get a numeric
// suffix.
func (w *Writer) Write(ctx context.Context, out *Output) ([]string, error) {
	if err := os.MkdirAll(w.target, 0o755); err != nil {
		return nil, NewGenerationError(PhaseWrite, w.target, err)
	}
	paths := make([]string, len(out.Files))
	taken := make(map[string]bool, len(out.Files))
	for i, f := range out.Files {
		name := f.Name
		ext := filepath.Ext(name)
		for n := 2; taken[name]; n++ {
			name = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(f.Name, ext), n, ext)
		}
		taken[name] = true
		paths[i] = filepath.Join(w.target, name)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for i, f := range out.Files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(paths[i], f.Source)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// writeFile writes a single file.
func (w *Writer) writeFile(path, src string) error {
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return NewGenerationError(PhaseWrite, filepath.Base(path), err)
	}
	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(src))
	w.mu.Unlock()
	return nil
}

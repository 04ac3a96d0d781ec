package export

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/julianshen/codexplain/internal/diagram"
	"github.com/julianshen/codexplain/internal/logger"
	"github.com/julianshen/codexplain/internal/tutorial"
)

// Exporter writes tutorials to disk. It is the default Download action.
type Exporter struct {
	Format string
	Dir    string
	// SVG, when set, renders each diagram to an SVG file next to the pages.
	SVG         diagram.Renderer
	Concurrency int
}

// NewExporter creates an Exporter for the given format and base directory.
func NewExporter(format, dir string) *Exporter {
	return &Exporter{Format: format, Dir: dir, Concurrency: 4}
}

// TargetDir returns the directory a tutorial is written to. It is always a
// direct child of Dir: ids that are not a single plain path element are
// slugged.
func (e *Exporter) TargetDir(t *tutorial.Tutorial) string {
	name := t.ID
	if !plainElement(name) {
		name = Slug(name)
	}
	if name == "" {
		name = Slug(t.DisplayTitle())
	}
	if name == "" {
		name = "tutorial"
	}
	return filepath.Join(e.Dir, name)
}

func plainElement(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.IsLocal(name)
}

// Export writes t and returns the directory it was written to. SVG failures
// are logged and skipped; the page still carries the mermaid source.
func (e *Exporter) Export(ctx context.Context, t *tutorial.Tutorial) (string, error) {
	dir := e.TargetDir(t)
	contentDir := dir
	switch e.Format {
	case "hugo":
		contentDir = filepath.Join(dir, "content")
	case "docusaurus":
		contentDir = filepath.Join(dir, "docs")
	}

	var svgs map[int]string
	if e.SVG != nil && len(t.Diagrams) > 0 {
		var err error
		svgs, err = RenderSVGs(ctx, t.Diagrams, e.SVG, e.Concurrency, filepath.Join(contentDir, "diagrams"))
		if err != nil {
			logger.Warn(ctx, "some diagrams could not be rendered to svg", "error", err)
		}
	}

	cfg := RendererConfig{Format: e.Format, OutputDir: dir, SiteTitle: t.DisplayTitle()}
	if err := Render(Assemble(t, svgs), cfg); err != nil {
		return "", fmt.Errorf("exporting tutorial %s: %w", t.ID, err)
	}
	return dir, nil
}

// RenderSVGs renders diagrams concurrently and writes each SVG into dir.
// The returned map holds the page-relative path of every diagram that
// succeeded; the error joins all failures.
func RenderSVGs(ctx context.Context, diagrams []tutorial.Diagram, r diagram.Renderer, concurrency int, dir string) (map[int]string, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	var mu sync.Mutex
	paths := make(map[int]string, len(diagrams))
	var errs []error

	p := pool.New().WithMaxGoroutines(concurrency).WithContext(ctx)
	for i, d := range diagrams {
		p.Go(func(ctx context.Context) error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			id := fmt.Sprintf("diagram-%d", i)
			svg, err := r.Render(id, d.Content)
			if err == nil {
				err = writeDoc(filepath.Join(dir, id+".svg"), svg)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			paths[i] = "diagrams/" + id + ".svg"
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		errs = append(errs, err)
	}
	return paths, errors.Join(errs...)
}

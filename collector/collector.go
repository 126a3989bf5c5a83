package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/liops/vigil/config"
	"github.com/liops/vigil/model"
)

// Source reads one class of metric into a sample.
type Source interface {
	Name() string
	Collect(ctx context.Context, s *model.Sample) error
}

// SourceError wraps a failure of a single source. It never aborts the
// tick; the metric is left unavailable in the sample instead.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("sampling %s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Registry holds the active metric sources. Sources disabled by
// configuration are simply not registered.
type Registry struct {
	sources []Source
}

// NewRegistry builds the source set for a config: cpu, memory, and disk
// are always on; network and process sources follow the advanced flags.
func NewRegistry(cfg *config.Config) *Registry {
	sources := []Source{
		&CPUSource{},
		&MemorySource{},
		NewDiskSource(cfg.Advanced.DiskPaths),
	}
	if cfg.Advanced.NetworkMonitor {
		sources = append(sources, &NetworkSource{})
	}
	if cfg.Advanced.ProcessMonitor {
		sources = append(sources, &ProcessSource{})
	}
	return &Registry{sources: sources}
}

// Add registers an additional source.
func (r *Registry) Add(s Source) {
	r.sources = append(r.sources, s)
}

// Collect runs every source and returns the joined sample. A failing
// source contributes an error but does not stop the others; the returned
// sample is complete for everything that could be read.
func (r *Registry) Collect(ctx context.Context) (*model.Sample, []error) {
	sample := &model.Sample{Timestamp: time.Now()}

	var errs []error
	for _, s := range r.sources {
		if err := s.Collect(ctx, sample); err != nil {
			errs = append(errs, &SourceError{Source: s.Name(), Err: err})
		}
	}
	return sample, errs
}

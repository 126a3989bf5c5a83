package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shirou/gopsutil/v3/disk"
	"golang.org/x/sync/errgroup"

	"github.com/liops/vigil/model"
)

// diskWorkers bounds concurrent statfs calls; paths on slow or hung
// mounts must not serialize behind each other.
const diskWorkers = 4

// DiskSource reads used-space percentage for each configured mount path.
// Paths are sampled independently: one unreadable path is reported as an
// error while the rest still land in the sample.
type DiskSource struct {
	paths []string
}

// NewDiskSource creates a source for the given mount paths.
func NewDiskSource(paths []string) *DiskSource {
	return &DiskSource{paths: paths}
}

func (s *DiskSource) Name() string { return "disk" }

func (s *DiskSource) Collect(ctx context.Context, sample *model.Sample) error {
	results := make(map[string]float64, len(s.paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(diskWorkers)

	var pathErrs []error
	for _, path := range s.paths {
		path := path
		g.Go(func() error {
			usage, err := disk.UsageWithContext(ctx, path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				pathErrs = append(pathErrs, fmt.Errorf("path %s: %w", path, err))
				return nil // other paths keep going
			}
			results[path] = usage.UsedPercent
			return nil
		})
	}
	// Workers never return a non-nil error; they record per-path failures.
	_ = g.Wait()

	if sample.Disks == nil {
		sample.Disks = make(map[string]float64, len(results))
	}
	for path, pct := range results {
		sample.Disks[path] = pct
	}
	return errors.Join(pathErrs...)
}

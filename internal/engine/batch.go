package engine

import (
	"context"
	"runtime"
	"sync"
)

// Result is the outcome of loading one file.
type Result struct {
	Path   string
	Config *Config
	Err    error
}

// LoadAll loads every path concurrently, with at most workers loads in
// flight (GOMAXPROCS when workers <= 0). Results keep the order of paths.
// Each file gets its own Config, so no schema tree is shared between
// goroutines. Paths not started before ctx is done report ctx.Err().
func LoadAll(ctx context.Context, paths []string, workers int) []Result {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(paths))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, path := range paths {
		results[i].Path = path
		select {
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx].Config, results[idx].Err = Load(results[idx].Path)
		}(i)
	}
	wg.Wait()
	return results
}

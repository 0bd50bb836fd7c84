// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "sync"

// FileResult is the outcome of converting one path.
type FileResult struct {
	Path     string
	Markdown string
	Err      error
}

// ConvertFiles converts paths on up to workers goroutines. Each document
// gets its own tree; results come back in input order.
func ConvertFiles(c Converter, paths []string, workers int) []FileResult {
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	results := make([]FileResult, len(paths))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				md, err := c.Convert(paths[i])
				results[i] = FileResult{Path: paths[i], Markdown: md, Err: err}
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

package propagate

import (
	"runtime"
	"sync"
)

// Body counts below this run the per-body stage loop sequentially; goroutine
// overhead dominates for small systems.
const parallelThreshold = 16

// parallelFor executes fn over chunks of [0, n). Stage computations are
// independent reads over the pre-step snapshot, so this is safe as long as
// the caller commits updates only after the wait completes.
func parallelFor(n, minChunk int, fn func(start, end int)) {
	workers := runtime.NumCPU()
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}

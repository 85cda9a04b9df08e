package parallel

import (
	"runtime"
	"sync"
)

// minRowsPerBand keeps bands large enough that goroutine start-up does not
// dominate small images.
const minRowsPerBand = 16

// Rows splits [0, height) into contiguous bands and calls fn for each band
// concurrently. fn must only write rows inside its band. Rows returns after
// every band has finished.
func Rows(height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}
	bands := min(runtime.GOMAXPROCS(0), (height+minRowsPerBand-1)/minRowsPerBand)
	if bands <= 1 {
		fn(0, height)
		return
	}

	var wg sync.WaitGroup
	size := (height + bands - 1) / bands
	for y0 := 0; y0 < height; y0 += size {
		y1 := min(y0+size, height)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(y0, y1)
		}()
	}
	wg.Wait()
}

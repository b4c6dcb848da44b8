package runner

import (
	"sync"

	"go.uber.org/multierr"
)

type Job func() error

// RunPool executes jobs with at most maxWorkers concurrently and returns the
// combined errors of all failed jobs.
func RunPool(maxWorkers int, jobs []Job) error {
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	var (
		mu  sync.Mutex
		err error
		wg  sync.WaitGroup
	)
	sem := make(chan struct{}, maxWorkers)

	for _, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(j Job) {
			defer wg.Done()
			defer func() { <-sem }()
			if jerr := j(); jerr != nil {
				mu.Lock()
				err = multierr.Append(err, jerr)
				mu.Unlock()
			}
		}(job)
	}
	wg.Wait()
	return err
}

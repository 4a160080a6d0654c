package systems

import (
	"errors"
	"sync"

	"github.com/spaghettifunk/patchview/engine/core"
)

// JobTask is a unit of work for the job system. OnComplete or OnFailure runs
// on the worker after Run returns, then OnCompletionCallback.
type JobTask struct {
	Run                  func() error
	OnComplete           func()
	OnFailure            func(err error)
	OnCompletionCallback func()
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

var (
	ErrNoWorkers           = errors.New("attempting to create worker pool with less than 1 worker")
	ErrNegativeChannelSize = errors.New("attempting to create worker pool with a negative channel size")
	ErrJobSystemClosed     = errors.New("job system already shut down")
)

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) {
	if err := job.Run(); err != nil {
		core.LogError(err.Error())
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
	} else if job.OnComplete != nil {
		job.OnComplete()
	}

	// Call the completion callback if set
	if job.OnCompletionCallback != nil {
		job.OnCompletionCallback()
	}
}

// NumWorkers returns the size of the pool.
func (js *JobSystem) NumWorkers() int {
	return js.numWorkers
}

/**
 * @brief Shuts the job system down. Queued jobs still run; Shutdown waits
 * for them.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return ErrJobSystemClosed
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return ErrJobSystemClosed
	}
	js.jobQueue <- jt
	return nil
}

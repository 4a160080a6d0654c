package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/patchview/engine/bezier"
)

// TessellationSystem samples the patches of a model on the job system, one job
// per patch, and triangulates the grids in input order. The soup is identical
// to bezier.Tessellate.
type TessellationSystem struct {
	jobs *JobSystem
}

func NewTessellationSystem(jobs *JobSystem) (*TessellationSystem, error) {
	if jobs == nil {
		return nil, fmt.Errorf("tessellation system: %w", ErrNoWorkers)
	}
	return &TessellationSystem{jobs: jobs}, nil
}

func (ts *TessellationSystem) Tessellate(surfaces []*bezier.Surface, coarseness int) (bezier.Soup, error) {
	if coarseness < bezier.MinCoarseness || len(surfaces) == 0 {
		return bezier.Soup{}, nil
	}
	// A single patch gains nothing from a round trip through the queue.
	if len(surfaces) == 1 || ts.jobs.NumWorkers() == 1 {
		return bezier.Tessellate(surfaces, coarseness), nil
	}

	patches := make([]bezier.Patch, len(surfaces))
	var wg sync.WaitGroup
	for i, s := range surfaces {
		wg.Add(1)
		err := ts.jobs.Submit(JobTask{
			Run: func() error {
				patches[i] = bezier.Patch{Surface: s, Grid: s.Sample(coarseness)}
				return nil
			},
			OnCompletionCallback: wg.Done,
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return bezier.Soup{}, err
		}
	}
	wg.Wait()

	return bezier.Triangulate(patches)
}

package systems

import "runtime"

// SystemManager owns the engine's background systems.
type SystemManager struct {
	JobSystem          *JobSystem
	TessellationSystem *TessellationSystem
}

// NewSystemManager starts a job system with one worker per CPU.
func NewSystemManager() (*SystemManager, error) {
	workers := runtime.NumCPU()
	js, err := NewJobSystem(workers, workers*4)
	if err != nil {
		return nil, err
	}
	ts, err := NewTessellationSystem(js)
	if err != nil {
		js.Shutdown()
		return nil, err
	}
	return &SystemManager{
		JobSystem:          js,
		TessellationSystem: ts,
	}, nil
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.JobSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}

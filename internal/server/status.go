package server

import (
	"sync"
	"time"
)

type Phase string

const (
	PhasePending  Phase = "pending"
	PhaseBrewing  Phase = "brewing"
	PhaseFinished Phase = "finished"
	PhaseFailed   Phase = "failed"
)

type Snapshot struct {
	Recipe     string    `json:"recipe"`
	Phase      Phase     `json:"phase"`
	StartedAt  time.Time `json:"started_at,omitzero"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
	Batches    int64     `json:"batches"`
	Records    int64     `json:"records"`
	Error      string    `json:"error,omitempty"`
}

// Status is the brew state reported on /status.
type Status struct {
	mu   sync.RWMutex
	snap Snapshot
}

func NewStatus(recipe string) *Status {
	return &Status{snap: Snapshot{Recipe: recipe, Phase: PhasePending}}
}

func (s *Status) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Phase = PhaseBrewing
	s.snap.StartedAt = time.Now()
}

func (s *Status) Finish(batches, records int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.FinishedAt = time.Now()
	s.snap.Batches = batches
	s.snap.Records = records
	if err != nil {
		s.snap.Phase = PhaseFailed
		s.snap.Error = err.Error()
		return
	}
	s.snap.Phase = PhaseFinished
}

func (s *Status) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

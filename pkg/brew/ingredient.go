package brew

import (
	"context"

	"github.com/DjordjeVuckovic/elastictea/pkg/tea"
)

// Kind selects how the pot treats a stage.
type Kind int

const (
	// KindFill stages produce batches and submit them to the pot.
	KindFill Kind = iota
	// KindSteep stages transform a batch.
	KindSteep
	// KindPour stages write a batch to a destination and pass it on.
	KindPour
)

func (k Kind) String() string {
	switch k {
	case KindFill:
		return "fill"
	case KindSteep:
		return "steep"
	case KindPour:
		return "pour"
	default:
		return "unknown"
	}
}

// Submitter hands a batch to the pot for processing. Submit does not wait
// for the batch to be processed, but it blocks while every worker is busy.
type Submitter interface {
	Submit(batch tea.Batch)
}

// FillFunc is the computation of a source stage.
type FillFunc func(ctx context.Context, params Argument, pot Submitter) error

// StageFunc is the computation of a steep or pour stage. A returned error
// aborts the brew and is reserved for wiring defects.
type StageFunc func(ctx context.Context, batch tea.Batch, params Argument) (tea.Batch, error)

// Fill is a source stage.
type Fill struct {
	Name        string
	Source      string
	Params      Argument
	Computation FillFunc
}

func (f *Fill) GetName() string {
	return f.Name
}

// Stage is a steep or pour stage.
type Stage struct {
	Name        string
	Kind        Kind
	Params      Argument
	Computation StageFunc
}

func (s *Stage) GetName() string {
	return s.Name
}

// DefineSource builds a source stage.
func DefineSource(name, source string, fn FillFunc, params Argument) *Fill {
	return &Fill{
		Name:        name,
		Source:      source,
		Params:      params,
		Computation: fn,
	}
}

// DefineStage builds a steep or pour stage.
func DefineStage(kind Kind, name string, fn StageFunc, params Argument) *Stage {
	return &Stage{
		Name:        name,
		Kind:        kind,
		Params:      params,
		Computation: fn,
	}
}

// Steep builds a parameterless transformation stage.
func Steep(name string, fn func(ctx context.Context, batch tea.Batch) (tea.Batch, error)) *Stage {
	return DefineStage(KindSteep, name, func(ctx context.Context, batch tea.Batch, _ Argument) (tea.Batch, error) {
		return fn(ctx, batch)
	}, nil)
}

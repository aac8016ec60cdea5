// Package recipe describes, in YAML, which indices a brew reads and writes.
package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/DjordjeVuckovic/elastictea/pkg/pagination"
	"gopkg.in/yaml.v3"
)

type Recipe struct {
	Name  string `yaml:"name"`
	Fills []Fill `yaml:"fills"`
	Pours []Pour `yaml:"pours"`
}

type Fill struct {
	Name            string         `yaml:"name"`
	Index           string         `yaml:"index"`
	BatchSize       int            `yaml:"batch_size"`
	MaxResultWindow int            `yaml:"max_result_window"`
	Query           map[string]any `yaml:"query"`
}

type Pour struct {
	Name        string `yaml:"name"`
	Index       string `yaml:"index"`
	EnsureIndex bool   `yaml:"ensure_index"`
}

// QueryJSON encodes the predicate, or returns nil when the fill reads everything.
func (f Fill) QueryJSON() (json.RawMessage, error) {
	if len(f.Query) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(f.Query)
	if err != nil {
		return nil, fmt.Errorf("fill %q: failed to encode query: %w", f.Name, err)
	}
	return b, nil
}

func (r *Recipe) applyDefaults() {
	for i := range r.Fills {
		if r.Fills[i].BatchSize == 0 {
			r.Fills[i].BatchSize = pagination.DefaultBatchSize
		}
		if r.Fills[i].MaxResultWindow == 0 {
			r.Fills[i].MaxResultWindow = pagination.MaxResultWindow
		}
		if r.Fills[i].Name == "" {
			r.Fills[i].Name = r.Fills[i].Index
		}
	}
	for i := range r.Pours {
		if r.Pours[i].Name == "" {
			r.Pours[i].Name = r.Pours[i].Index
		}
	}
}

func (r *Recipe) Validate() error {
	var errs []error

	if r.Name == "" {
		errs = append(errs, errors.New("recipe name is required"))
	}
	if len(r.Fills) == 0 {
		errs = append(errs, errors.New("at least one fill is required"))
	}
	if len(r.Pours) == 0 {
		errs = append(errs, errors.New("at least one pour is required"))
	}

	for i, f := range r.Fills {
		if f.Index == "" {
			errs = append(errs, fmt.Errorf("fills[%d]: index is required", i))
		}
		if err := pagination.NewOffsetRequest(f.BatchSize).Validate(f.MaxResultWindow); err != nil {
			errs = append(errs, fmt.Errorf("fills[%d]: %w", i, err))
		}
	}
	for i, p := range r.Pours {
		if p.Index == "" {
			errs = append(errs, fmt.Errorf("pours[%d]: index is required", i))
		}
	}

	return errors.Join(errs...)
}

type Loader struct {
	reader io.Reader
}

func NewLoader(reader io.Reader) *Loader {
	return &Loader{
		reader: reader,
	}
}

func (l *Loader) Load(validate bool) (*Recipe, error) {
	decoder := yaml.NewDecoder(l.reader)
	decoder.KnownFields(true)

	var r Recipe
	if err := decoder.Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}
	r.applyDefaults()

	if validate {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid recipe %q: %w", r.Name, err)
		}
	}
	return &r, nil
}

// LoadFile reads and validates the recipe at path.
func LoadFile(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recipe: %w", err)
	}
	defer f.Close()

	return NewLoader(f).Load(true)
}

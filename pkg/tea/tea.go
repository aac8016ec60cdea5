// Package tea holds the opaque record handle passed between brew stages.
//
// A Tea boxes a pointer to a concrete schema value. Stages that do not care
// about the schema move Tea values around; stages bound to a schema recover
// the original pointer with As.
package tea

import (
	"reflect"

	"github.com/DjordjeVuckovic/elastictea/pkg/apperr"
)

// Tea is one opaque pipeline record.
type Tea interface {
	// ID is the backend identity the record was extracted with, or "".
	ID() string
	// Schema names the concrete type behind the handle.
	Schema() string
}

// Batch is an ordered group of records moved between stages as a unit.
type Batch []Tea

type cup[T any] struct {
	id    string
	value *T
}

func (c *cup[T]) ID() string {
	return c.id
}

func (c *cup[T]) Schema() string {
	return schemaOf[T]()
}

// Wrap boxes v without a backend identity.
func Wrap[T any](v *T) Tea {
	return &cup[T]{value: v}
}

// WithID boxes v together with the backend identity it was read with.
func WithID[T any](id string, v *T) Tea {
	return &cup[T]{id: id, value: v}
}

// As recovers the pointer boxed in t. It fails with a SchemaMismatchError if
// t was not created for T.
func As[T any](t Tea) (*T, error) {
	c, ok := t.(*cup[T])
	if !ok {
		got := "<nil>"
		if t != nil {
			got = t.Schema()
		}
		return nil, &apperr.SchemaMismatchError{Want: schemaOf[T](), Got: got}
	}
	return c.value, nil
}

// MustAs is As for call sites where a mismatch can only be a programming error.
func MustAs[T any](t Tea) *T {
	v, err := As[T](t)
	if err != nil {
		panic(err)
	}
	return v
}

// Collect recovers every record of the batch, in order.
func Collect[T any](batch Batch) ([]*T, error) {
	values := make([]*T, 0, len(batch))
	for _, t := range batch {
		v, err := As[T](t)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func schemaOf[T any]() string {
	return reflect.TypeFor[T]().String()
}

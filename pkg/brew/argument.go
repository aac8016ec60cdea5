package brew

import (
	"fmt"
	"reflect"

	"github.com/DjordjeVuckovic/elastictea/pkg/apperr"
)

// Argument is the boxed parameter object of a stage. The pot stores the
// parameters of every stage in one uniform slot; the stage recovers its own
// concrete type with ArgAs.
type Argument any

// ArgAs recovers the concrete parameter object of a stage. A missing
// argument (nil interface or nil pointer) is a ConfigurationError; an
// argument of another type is a SchemaMismatchError.
func ArgAs[A any](stage string, params Argument) (A, error) {
	var zero A
	want := reflect.TypeFor[A]().String()

	if isNil(params) {
		return zero, apperr.NewConfiguration(stage, fmt.Sprintf("%s is required to run this stage", want))
	}

	a, ok := params.(A)
	if !ok {
		return zero, &apperr.SchemaMismatchError{Want: want, Got: reflect.TypeOf(params).String()}
	}
	return a, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

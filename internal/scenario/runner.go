package scenario

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/limpo1989/vector"
)

// ErrUnexpected is returned when a step fails although it was not expected
// to, or succeeds although it was.
var ErrUnexpected = errors.New("scenario: unexpected outcome")

// errEmpty stands in for PopBack on an empty vector, which would panic.
var errEmpty = errors.New("pop on empty vector")

// Result is the vector state observed after one step.
type Result struct {
	Step     int
	Desc     string
	Len      int
	Cap      int
	Contents []int
	Value    *int
	Err      error
}

type Runner struct {
	logger *zap.Logger
}

// NewRunner creates a Runner. A nil logger disables logging.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger}
}

// Run replays s on a fresh vector. It stops at the first step whose outcome
// contradicts its expect_error flag and returns the results gathered so far.
func (r *Runner) Run(s *Scenario) ([]Result, error) {
	lg := r.logger.With(zap.String("scenario", s.Name))
	vec := vector.New(vector.WithLogger[int](lg))
	defer vec.Release()

	if err := vec.Reserve(s.Reserve); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(s.Steps))
	for i, st := range s.Steps {
		res := Result{Step: i + 1, Desc: st.String()}
		res.Value, res.Err = apply(vec, st)
		res.Len, res.Cap = vec.Len(), vec.Cap()
		res.Contents = slices.Clone(vec.Data())
		results = append(results, res)

		lg.Debug("step applied",
			zap.Int("step", res.Step),
			zap.String("op", st.Op),
			zap.Int("len", res.Len),
			zap.Int("cap", res.Cap),
			zap.Error(res.Err))

		if (res.Err != nil) != st.ExpectError {
			if res.Err != nil {
				return results, fmt.Errorf("%w: step %d (%s): %v", ErrUnexpected, res.Step, res.Desc, res.Err)
			}
			return results, fmt.Errorf("%w: step %d (%s) succeeded, error expected", ErrUnexpected, res.Step, res.Desc)
		}
	}
	return results, nil
}

func apply(vec *vector.Vector[int], st Step) (*int, error) {
	switch st.Op {
	case OpAppend:
		return nil, vec.Append(*st.Value)
	case OpPop:
		if vec.Empty() {
			return nil, errEmpty
		}
		vec.PopBack()
	case OpClear:
		vec.Clear()
	case OpReserve:
		return nil, vec.Reserve(st.Size)
	case OpShrink:
		return nil, vec.ShrinkToFit()
	case OpResize:
		if st.Fill != nil {
			return nil, vec.ResizeFill(st.Size, *st.Fill)
		}
		return nil, vec.Resize(st.Size)
	case OpAt:
		v, err := vec.At(st.Index)
		if err != nil {
			return nil, err
		}
		return &v, nil
	case OpSet:
		return nil, vec.Set(st.Index, *st.Value)
	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrInvalid, st.Op)
	}
	return nil, nil
}

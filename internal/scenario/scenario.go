// Package scenario loads scripted vector workloads from YAML and replays
// them against a vector.Vector[int].
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Operations understood by the runner.
const (
	OpAppend  = "append"
	OpPop     = "pop"
	OpClear   = "clear"
	OpReserve = "reserve"
	OpShrink  = "shrink"
	OpResize  = "resize"
	OpAt      = "at"
	OpSet     = "set"
)

// ErrInvalid is returned for scenarios that fail validation.
var ErrInvalid = errors.New("scenario: invalid")

type Scenario struct {
	Name    string `yaml:"name"`
	Reserve int    `yaml:"reserve"`
	Steps   []Step `yaml:"steps"`
}

type Step struct {
	Op          string `yaml:"op"`
	Value       *int   `yaml:"value,omitempty"`
	Index       int    `yaml:"index,omitempty"`
	Size        int    `yaml:"size,omitempty"`
	Fill        *int   `yaml:"fill,omitempty"`
	ExpectError bool   `yaml:"expect_error,omitempty"`
}

// Load reads and validates a scenario file. A scenario without a name is
// named after the file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes and validates a scenario from YAML bytes.
func Parse(data []byte) (*Scenario, error) {
	return Decode(bytes.NewReader(data))
}

// Decode decodes and validates a scenario. Unknown keys are rejected.
func Decode(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalid)
		}
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every step names a known operation with the
// arguments it needs.
func (s *Scenario) Validate() error {
	if s.Reserve < 0 {
		return fmt.Errorf("%w: negative reserve %d", ErrInvalid, s.Reserve)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalid)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("%w: step %d: %v", ErrInvalid, i+1, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	switch st.Op {
	case OpAppend, OpSet:
		if st.Value == nil {
			return fmt.Errorf("%s needs a value", st.Op)
		}
	case OpReserve:
		if st.Size < 0 {
			return fmt.Errorf("%s size %d is negative", st.Op, st.Size)
		}
	case OpResize:
		if st.Size < 0 && !st.ExpectError {
			return fmt.Errorf("%s size %d is negative", st.Op, st.Size)
		}
	case OpPop, OpClear, OpShrink, OpAt:
	case "":
		return errors.New("missing op")
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

func (st Step) String() string {
	switch st.Op {
	case OpAppend:
		return fmt.Sprintf("append %d", *st.Value)
	case OpSet:
		return fmt.Sprintf("set [%d] = %d", st.Index, *st.Value)
	case OpAt:
		return fmt.Sprintf("at [%d]", st.Index)
	case OpReserve:
		return fmt.Sprintf("reserve %d", st.Size)
	case OpResize:
		if st.Fill != nil {
			return fmt.Sprintf("resize %d fill %d", st.Size, *st.Fill)
		}
		return fmt.Sprintf("resize %d", st.Size)
	}
	return st.Op
}

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	out, err := execute(t, "run", "testdata/basic.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "== basic")
	assert.Contains(t, out, "[1 2 9 9]")
	assert.Contains(t, out, "= 9")
	assert.Contains(t, out, "error: vector: index out of range")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "testdata/basic.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "basic: ok (8 steps)")

	out, err = execute(t, "validate", "testdata/basic.yaml", "testdata/broken.yaml")
	assert.Error(t, err)
	assert.Contains(t, out, "append needs a value")
}

func TestRunCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "run", "testdata/missing.yaml")
	assert.Error(t, err)
}

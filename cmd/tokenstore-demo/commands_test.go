package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunScriptSeedStageCommitSnapshot(t *testing.T) {
	script := `
seed 1 A
stage 1 2 B
commit
snapshot 2
snapshot 1
`
	var out bytes.Buffer
	require.NoError(t, runScript(&out, strings.NewReader(script), zap.NewNop()))

	output := out.String()
	require.Contains(t, output, "seed 1 -> Success")
	require.Contains(t, output, "stage 1 2 -> Success")
	require.Contains(t, output, "snapshot 2 -> initial=1 previous=1 current=2 value=B")
	require.Contains(t, output, "snapshot 1 -> none")
}

func TestRunScriptUnknownVerb(t *testing.T) {
	var out bytes.Buffer
	err := runScript(&out, strings.NewReader("bogus 1 2"), zap.NewNop())
	require.Error(t, err)
}

func TestRunScriptDiscardAndStats(t *testing.T) {
	script := `
seed 1 A
stage 1 2 B
discard
stats
`
	var out bytes.Buffer
	require.NoError(t, runScript(&out, strings.NewReader(script), zap.NewNop()))
	require.Contains(t, out.String(), "stats tokens=1 staged=0 pool=1")
}

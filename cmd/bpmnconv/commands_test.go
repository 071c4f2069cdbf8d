package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vine-io/bpmnconv/bpmn"
	"github.com/vine-io/bpmnconv/graph"
)

const orderDocument = "../../convert/testdata/order.bpmn"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config := writeFile(t, "bpmnconv.yaml", "workers: 2\nlog_level: error\n")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", config}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestGraphAndBackCommands(t *testing.T) {
	dir := t.TempDir()
	graphFile := filepath.Join(dir, "order.json")
	docFile := filepath.Join(dir, "order.bpmn")

	_, err := run(t, "graph", orderDocument, "-o", graphFile)
	require.NoError(t, err)

	data, err := os.ReadFile(graphFile)
	require.NoError(t, err)
	root, err := graph.UnmarshalNode(data)
	require.NoError(t, err)
	assert.Equal(t, "order", root.ID())

	_, err = run(t, "bpmn", graphFile, "-o", docFile)
	require.NoError(t, err)

	data, err = os.ReadFile(docFile)
	require.NoError(t, err)
	defs, err := bpmn.FromBytes(data)
	require.NoError(t, err)
	require.Len(t, defs.Processes, 1)
	assert.Equal(t, "order", defs.Processes[0].Id)
}

func TestGraphCommandUnknownProcess(t *testing.T) {
	_, err := run(t, "graph", orderDocument, "--process", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "process missing not found")
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", orderDocument)
	require.NoError(t, err)
	assert.Contains(t, out, "order\tSuccess")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "check", orderDocument)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

const twoProcesses = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn2:definitions xmlns:bpmn2="http://www.omg.org/spec/BPMN/20100524/MODEL" id="_defs">
  <bpmn2:process id="broken" isExecutable="true">
    <bpmn2:serviceTask id="charge"/>
  </bpmn2:process>
  <bpmn2:process id="good" isExecutable="true"/>
</bpmn2:definitions>
`

func TestGraphCommandSelectsProcess(t *testing.T) {
	in := writeFile(t, "two.bpmn", twoProcesses)

	out, err := run(t, "graph", in, "--process", "good")
	require.NoError(t, err)
	root, err := graph.UnmarshalNode([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "good", root.ID())

	_, err = run(t, "graph", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ServiceTask")
}

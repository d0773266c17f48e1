package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testNotebook = `{
 "nbformat": 4,
 "nbformat_minor": 5,
 "metadata": {},
 "cells": [
  {"cell_type": "markdown", "metadata": {}, "source": "# Deploy\n## Prepare"},
  {
   "cell_type": "code",
   "execution_count": 1,
   "metadata": {"execution": {
     "iopub.execute_input": "2024-03-01T09:30:00.000000Z",
     "shell.execute_reply": "2024-03-01T09:30:01.042000Z"
   }},
   "source": "deploy('{target}')",
   "outputs": [{"output_type": "stream", "name": "stdout", "text": "deployed\n"}]
  },
  {"cell_type": "code", "execution_count": 2, "metadata": {"tags": ["hide_cell"]}, "source": "cleanup_secrets()", "outputs": []}
 ]
}`

// testEnv is an Environment with captured output and a private process
// environment, so tests can run in parallel.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(vars map[string]string) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
			Stdout: stdout,
			Stderr: stderr,
			Getenv: func(name string) string { return vars[name] },
			Environ: func() []string {
				out := make([]string, 0, len(vars))
				for k, v := range vars {
					out = append(out, k+"="+v)
				}
				return out
			},
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// writeFile writes content under dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("creating dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

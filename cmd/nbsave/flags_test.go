package main

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	flag "github.com/spf13/pflag"

	nbsave "github.com/abalbekov/go-nbsave"
)

func TestParseExportFlags_Instructions(t *testing.T) {
	t.Parallel()

	args := []string{
		"run.ipynb",
		"-c", "team",
		"-v",
		"--style", "compact",
		"--code-style", "monokai",
		"--var", "host=db,replica",
		"--var", "port=5432",
		"--vars-file", "vars.yaml",
		"--env-vars",
		"--remove-tag", "internal",
		"--remove-tag", "scratch",
		"out.html",
	}

	f, positional, err := parseExportFlags(nbsave.ModeInstructions, args, io.Discard)
	if err != nil {
		t.Fatalf("parseExportFlags() error: %v", err)
	}

	if diff := cmp.Diff([]string{"run.ipynb", "out.html"}, positional); diff != "" {
		t.Errorf("positional mismatch (-want +got):\n%s", diff)
	}
	if f.common.config != "team" || !f.common.verbose || f.common.quiet {
		t.Errorf("common flags = %+v", f.common)
	}
	if f.assets.style != "compact" || f.assets.codeStyle != "monokai" {
		t.Errorf("asset flags = %+v", f.assets)
	}

	want := instructionsFlags{
		vars:       []string{"host=db,replica", "port=5432"},
		varsFile:   "vars.yaml",
		envVars:    true,
		removeTags: []string{"internal", "scratch"},
	}
	if diff := cmp.Diff(want, f.instructions, cmp.AllowUnexported(instructionsFlags{})); diff != "" {
		t.Errorf("instructions flags mismatch (-want +got):\n%s", diff)
	}
}

func TestParseExportFlags_Evidence(t *testing.T) {
	t.Parallel()

	f, _, err := parseExportFlags(nbsave.ModeEvidence, []string{"--time-format", "iso", "--date", "auto:long", "run.ipynb"}, io.Discard)
	if err != nil {
		t.Fatalf("parseExportFlags() error: %v", err)
	}
	if f.document.timeFormat != "iso" || f.document.date != "auto:long" {
		t.Errorf("document flags = %+v", f.document)
	}

	if _, _, err := parseExportFlags(nbsave.ModeEvidence, []string{"--remove-tag", "x"}, io.Discard); err == nil {
		t.Error("evidence should not accept instructions flags")
	}
	if _, _, err := parseExportFlags(nbsave.ModeInstructions, []string{"--time-format", "iso"}, io.Discard); err == nil {
		t.Error("instructions should not accept evidence flags")
	}
	if _, _, err := parseExportFlags(nbsave.ModeEvidence, []string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h error = %v, want ErrHelp", err)
	}
}

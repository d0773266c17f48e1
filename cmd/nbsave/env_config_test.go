package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abalbekov/go-nbsave/internal/config"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"NBSAVE_CONFIG":     "team",
		"NBSAVE_STYLE":      "compact",
		"NBSAVE_CODE_STYLE": "monokai",
		"NBSAVE_ASSET_PATH": "/srv/assets",
		"NBSAVE_OUTPUT_DIR": "/srv/out",
		"NBSAVE_IMAGES_DIR": "/srv/img",
		"NBSAVE_VARS_FILE":  "vars.yaml",
	}

	got := loadEnvConfig(func(name string) string { return vars[name] })
	want := &envConfig{
		ConfigPath: "team",
		Style:      "compact",
		CodeStyle:  "monokai",
		AssetPath:  "/srv/assets",
		OutputDir:  "/srv/out",
		ImagesDir:  "/srv/img",
		VarsFile:   "vars.yaml",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Style:     "compact",
		CodeStyle: "monokai",
		AssetPath: "/srv/assets",
		OutputDir: "/srv/out",
		ImagesDir: "/srv/img",
		VarsFile:  "vars.yaml",
	}

	t.Run("fills empty fields", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.Style != "compact" || cfg.CodeStyle != "monokai" {
			t.Errorf("style = %q/%q, want compact/monokai", cfg.Style, cfg.CodeStyle)
		}
		if cfg.Assets.BasePath != "/srv/assets" || cfg.Output.DefaultDir != "/srv/out" || cfg.Images.BaseDir != "/srv/img" {
			t.Errorf("paths not applied: %+v", cfg)
		}
		if cfg.Instructions.VarsFile != "vars.yaml" {
			t.Errorf("VarsFile = %q, want vars.yaml", cfg.Instructions.VarsFile)
		}
	})

	t.Run("config file wins", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Style = "custom"
		cfg.Output.DefaultDir = "/cfg/out"
		applyEnvConfig(env, cfg)

		if cfg.Style != "custom" {
			t.Errorf("Style = %q, want config value", cfg.Style)
		}
		if cfg.Output.DefaultDir != "/cfg/out" {
			t.Errorf("DefaultDir = %q, want config value", cfg.Output.DefaultDir)
		}
	})
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"NBSAVE_STYLE=compact",
		"NBSAVE_STYEL=compact",
		"HOME=/root",
		"NBSAVE_EMPTY",
	})

	out := buf.String()
	if !strings.Contains(out, "NBSAVE_STYEL") || !strings.Contains(out, "NBSAVE_EMPTY") {
		t.Errorf("expected warnings for unknown variables, got %q", out)
	}
	if strings.Contains(out, "NBSAVE_STYLE ") || strings.Contains(out, "HOME") {
		t.Errorf("unexpected warning, got %q", out)
	}
}

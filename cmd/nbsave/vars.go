package main

import (
	"fmt"
	"os"
	"strings"

	nbsave "github.com/abalbekov/go-nbsave"
	"github.com/abalbekov/go-nbsave/internal/config"
	"github.com/abalbekov/go-nbsave/internal/yamlutil"
)

// parseVarFlags turns repeated --var name=value flags into Vars.
// The value may itself contain "="; a later flag wins over an earlier one.
func parseVarFlags(values []string) (nbsave.Vars, error) {
	vars := make(nbsave.Vars, len(values))
	for _, kv := range values {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q (want name=value)", ErrInvalidVar, kv)
		}
		if err := config.ValidateVariableName(name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidVar, err)
		}
		vars[name] = value
	}
	return vars, nil
}

// loadVarsFile reads a YAML or JSON mapping of placeholder values.
func loadVarsFile(path string) (nbsave.Vars, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided vars path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVarsFile, err)
	}

	values, err := yamlutil.UnmarshalScalars(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrVarsFile, path, err)
	}
	for name := range values {
		if err := config.ValidateVariableName(name); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrVarsFile, path, err)
		}
	}
	return nbsave.Vars(values), nil
}

// buildNamespace assembles the placeholder sources of an instructions
// export, highest priority first: --var flags, the vars file, the config's
// variables, then the process environment when enabled.
func buildNamespace(f instructionsFlags, cfg *config.Config) (nbsave.Namespace, error) {
	var chain nbsave.ChainNamespace

	flagVars, err := parseVarFlags(f.vars)
	if err != nil {
		return nil, err
	}
	if len(flagVars) > 0 {
		chain = append(chain, flagVars)
	}

	if cfg.Instructions.VarsFile != "" {
		fileVars, err := loadVarsFile(cfg.Instructions.VarsFile)
		if err != nil {
			return nil, err
		}
		chain = append(chain, fileVars)
	}

	if len(cfg.Instructions.Variables) > 0 {
		chain = append(chain, nbsave.Vars(cfg.Instructions.Variables))
	}

	if cfg.Instructions.EnvVars {
		chain = append(chain, nbsave.EnvVars{})
	}

	return chain, nil
}

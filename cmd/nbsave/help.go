package main

import (
	"fmt"
	"io"

	nbsave "github.com/abalbekov/go-nbsave"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbsave <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  evidence       Save a notebook as a timestamped evidence record")
	fmt.Fprintln(w, "  instructions   Save a notebook as clean, reusable instructions")
	fmt.Fprintln(w, "  version        Show version information")
	fmt.Fprintln(w, "  help           Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'nbsave help <command>' for details on a specific command.")
}

// printExportUsage prints usage for an export command.
func printExportUsage(w io.Writer, mode nbsave.Mode) {
	fmt.Fprintf(w, "Usage: nbsave %s <notebook.ipynb> [output.html] [flags]\n", mode)
	fmt.Fprintln(w)
	if mode == nbsave.ModeEvidence {
		fmt.Fprintln(w, "Save a notebook with all outputs, annotating each executed code cell")
		fmt.Fprintln(w, "with its finish time and duration.")
	} else {
		fmt.Fprintln(w, "Save a notebook without outputs or hidden cells, with {name} placeholders")
		fmt.Fprintln(w, "in code cells replaced and markdown headings numbered.")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  notebook   nbformat 4 notebook file")
	fmt.Fprintln(w, "  output     HTML file or directory (default: notebook name with .html,")
	fmt.Fprintln(w, "             in output.defaultDir or next to the notebook)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Document title (\"\" = auto)")
	fmt.Fprintln(w, "      --images-dir <path>   Directory relative images are read from")
	if mode == nbsave.ModeEvidence {
		fmt.Fprintln(w, "      --time-format <s>     Finish time format (default \"HH:mm:ss YYYY-MM-DD\")")
		fmt.Fprintln(w, "                            Tokens: YYYY, MM, DD, HH, mm, ss; presets: iso, european, us, long")
		fmt.Fprintln(w, "      --date <s>            Save date: \"auto\", \"auto:FORMAT\", or literal")
	}
	fmt.Fprintln(w)
	if mode == nbsave.ModeInstructions {
		fmt.Fprintln(w, "Placeholders:")
		fmt.Fprintln(w, "      --var <name=value>    Placeholder value (repeatable, wins over other sources)")
		fmt.Fprintln(w, "      --vars-file <path>    YAML or JSON mapping of placeholder values")
		fmt.Fprintln(w, "      --env-vars            Resolve remaining placeholders from the environment")
		fmt.Fprintln(w, "      --remove-tag <tag>    Drop cells with this tag (repeatable, default: hide_cell)")
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           CSS style name or file path")
	fmt.Fprintln(w, "      --code-style <s>      Code highlighting style (default: github)")
	fmt.Fprintln(w, "      --template <s>        Template set name")
	fmt.Fprintln(w, "      --asset-path <path>   Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	if !isCommand(args[0]) {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: nbsave version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: nbsave help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printExportUsage(env.Stdout, nbsave.Mode(args[0]))
	}
	return ExitSuccess
}

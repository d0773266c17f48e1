// Package nbsave exports Jupyter notebooks (nbformat v4) to standalone HTML.
//
// # Quick Start
//
// Save a timestamped evidence record of an executed notebook:
//
//	err := nbsave.SaveAsEvidence(ctx, "run.ipynb", "run.html")
//
// Save clean instructions, with {name} placeholders in code cells filled in:
//
//	err := nbsave.SaveAsInstructions(ctx, "setup.ipynb", "setup.html",
//	    nbsave.Vars{"data_dir": "/srv/data"})
//
// # Export Modes
//
// Evidence exports keep every cell and output. Each executed code cell is
// annotated with its finish time and duration, read from the
// metadata.execution timestamps that JupyterLab records when
// "Record Cell Timing" is enabled.
//
// Instructions exports:
//
//  1. Drop cells tagged "hide_cell" (see WithRemoveTags)
//  2. Clear outputs and execution counts
//  3. Substitute {name} placeholders in code cells; \{ and \} escape braces
//  4. Inline local <img> files in markdown cells as data URIs
//  5. Number "##" and deeper headings across the document ("## 1 Setup")
//  6. Fix toc2 table-of-contents links in cells flagged with toc metadata
//
// # Configuration
//
// Use functional options to customize the exporter:
//
//	exp, err := nbsave.NewExporter(
//	    nbsave.WithStyle("compact"),
//	    nbsave.WithLocation(time.UTC),
//	    nbsave.WithTimeFormat("YYYY-MM-DD HH:mm:ss"),
//	    nbsave.WithLogger(logger),
//	)
//	res, err := exp.Export(ctx, nbsave.Input{Notebook: data, Mode: nbsave.ModeEvidence})
//
// # Custom Assets
//
// Override built-in styles and templates using WithAssetPath:
//
//	assets/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── evidence/
//	        └── index.html
//
// Templates use html/template and receive the document view model and a
// filter table: storeStartTime, storeEndTime, renderElapsed and
// renderEndLocal for timing (called in that order per cell),
// numberHeadings, fixTocAnchors, embedImages, markdown, highlight,
// outputText and join.
package nbsave

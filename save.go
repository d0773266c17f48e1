package nbsave

import (
	"context"
)

// SaveAsEvidence exports the notebook at nbPath as a timestamped evidence
// record and writes it to outPath. Every cell and output is kept; executed
// code cells show when they finished and how long they ran, taken from the
// timing metadata recorded by the notebook front end.
func SaveAsEvidence(ctx context.Context, nbPath, outPath string, opts ...Option) error {
	return save(ctx, nbPath, outPath, ModeEvidence, nil, opts)
}

// SaveAsInstructions exports the notebook at nbPath as a clean instructional
// document and writes it to outPath. Cells tagged "hide_cell" are dropped,
// outputs are cleared, {name} placeholders in code cells are replaced with
// values from ns, local images are inlined and headings numbered.
func SaveAsInstructions(ctx context.Context, nbPath, outPath string, ns Namespace, opts ...Option) error {
	return save(ctx, nbPath, outPath, ModeInstructions, ns, opts)
}

func save(ctx context.Context, nbPath, outPath string, mode Mode, ns Namespace, opts []Option) error {
	exp, err := NewExporter(opts...)
	if err != nil {
		return err
	}
	_, err = exp.ExportFile(ctx, nbPath, outPath, mode, ns)
	return err
}

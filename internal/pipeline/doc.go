// Package pipeline turns a notebook into a rendered HTML document.
//
// The stages run in order for one conversion:
//   - Preprocessors mutate the notebook: tag removal, output clearing and
//     the per-cell hook that substitutes variables and rewrites markdown
//   - NewDocument builds the template view model from the processed cells
//   - TemplateRenderer executes a template set with the filter table, which
//     exposes the transform package to template authors by name
//   - CSSInjection adds the style sheet to the rendered document
//
// All mutable state of a conversion (heading counter, timing slots, heading
// IDs) lives in a State value created per conversion, so concurrent
// conversions never share counters.
package pipeline

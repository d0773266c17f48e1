// Package transform implements the text transforms applied to notebook cells
// and exposed to templates as filters.
//
// Most functions are pure string-in/string-out. The two stateful pieces,
// HeaderCounter and Timing, are explicit values owned by a single conversion:
// callers create one per document and pass it to every call that needs it.
//
//   - FormatInterval renders an elapsed time as "1h 2m 5s" style text
//   - EmbedImages inlines <img src="..."> files as base64 data URIs
//   - NumberHeadings prefixes markdown headings with outline numbers
//   - FixTocAnchors aligns table-of-contents links with numbered headings
//   - Substitute expands {name} placeholders in code cell sources
package transform

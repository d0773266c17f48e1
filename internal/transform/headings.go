package transform

import (
	"strconv"
	"strings"
)

// MaxHeadingDepth is the deepest heading level that receives a number.
const MaxHeadingDepth = 5

// minNumberedDepth is the shallowest numbered level; "#" titles are skipped.
const minNumberedDepth = 2

// HeaderCounter tracks outline numbering across all markdown cells of one
// document. The zero value is ready to use.
type HeaderCounter struct {
	counts [MaxHeadingDepth + 1]int // index = depth, [0] unused
}

// NewHeaderCounter returns a counter with every depth at zero.
func NewHeaderCounter() *HeaderCounter {
	return &HeaderCounter{}
}

// Reset zeroes every depth.
func (c *HeaderCounter) Reset() {
	c.counts = [MaxHeadingDepth + 1]int{}
}

// Next increments depth, clears all deeper depths and returns the
// dot-joined prefix for depths 2..depth (e.g. "2.1").
func (c *HeaderCounter) Next(depth int) string {
	c.counts[depth]++
	for d := depth + 1; d <= MaxHeadingDepth; d++ {
		c.counts[d] = 0
	}

	parts := make([]string, 0, depth)
	for d := minNumberedDepth; d <= depth; d++ {
		parts = append(parts, strconv.Itoa(c.counts[d]))
	}
	return strings.Join(parts, ".")
}

// Count returns the current count at depth, or 0 when out of range.
func (c *HeaderCounter) Count(depth int) int {
	if depth < 1 || depth > MaxHeadingDepth {
		return 0
	}
	return c.counts[depth]
}

// NumberHeadings prefixes each "##"-or-deeper heading line with its outline
// number, advancing counter as it goes:
//
//	"# A\n## B\n### C\n" -> "# A\n## 1 B\n### 1.1 C\n"
//
// Leading whitespace before the hashes is dropped. Headings deeper than
// MaxHeadingDepth and all other lines pass through unchanged. Every output
// line ends with a single "\n".
func NumberHeadings(counter *HeaderCounter, markdown string) string {
	if markdown == "" {
		return ""
	}

	var out strings.Builder
	out.Grow(len(markdown) + 16)

	for _, line := range splitLines(markdown) {
		hashes, text, ok := parseHeading(line)
		if !ok || len(hashes) > MaxHeadingDepth {
			out.WriteString(line)
			out.WriteByte('\n')
			continue
		}

		prefix := counter.Next(len(hashes))
		out.WriteString(hashes)
		out.WriteByte(' ')
		out.WriteString(prefix)
		if text != "" {
			out.WriteByte(' ')
			out.WriteString(text)
		}
		out.WriteByte('\n')
	}
	return out.String()
}

// parseHeading splits a line into its run of leading '#' and the remaining
// text. ok is false unless the run holds at least two hashes.
func parseHeading(line string) (hashes, text string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")

	n := 0
	for n < len(trimmed) && trimmed[n] == '#' {
		n++
	}
	if n < minNumberedDepth {
		return "", "", false
	}
	return trimmed[:n], strings.TrimSpace(trimmed[n:]), true
}

// splitLines splits on \n, \r\n and \r. A trailing line break does not
// produce an empty final line.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

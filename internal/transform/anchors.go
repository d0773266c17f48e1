package transform

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tocModifiedIDAttr is written by the toc2 notebook extension on every
// generated table-of-contents link.
const tocModifiedIDAttr = "data-toc-modified-id"

// FixTocAnchors rewrites table-of-contents links so they point at numbered
// headings. The outline number is taken from the data-toc-modified-id suffix:
//
//	<a href="#three-hash" data-toc-modified-id="three-hash-1.1">
//	<a href="#1.1-three-hash" data-toc-modified-id="three-hash-1.1">
//
// Anchors without that attribute, with a non-fragment href, or whose id does
// not end in "-N[.N...]" are left untouched. Applying it twice prepends the
// number twice.
func FixTocAnchors(htmlText string) string {
	if !strings.Contains(htmlText, tocModifiedIDAttr) {
		return htmlText
	}
	return rewriteTags(htmlText, atom.A, fixTocAnchor)
}

func fixTocAnchor(tok *html.Token) bool {
	modifiedID, idx := attr(tok, tocModifiedIDAttr)
	if idx < 0 {
		return false
	}
	href, hrefIdx := attr(tok, "href")
	if hrefIdx < 0 || !strings.HasPrefix(href, "#") || len(href) == 1 {
		return false
	}

	number, ok := outlineSuffix(modifiedID)
	if !ok {
		return false
	}

	tok.Attr[hrefIdx].Val = "#" + number + "-" + href[1:]
	return true
}

// outlineSuffix returns the dotted number after the last '-' in id.
func outlineSuffix(id string) (string, bool) {
	dash := strings.LastIndexByte(id, '-')
	if dash <= 0 || dash == len(id)-1 {
		return "", false
	}
	number := id[dash+1:]
	hasDigit := false
	for i := 0; i < len(number); i++ {
		switch c := number[i]; {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.':
		default:
			return "", false
		}
	}
	return number, hasDigit
}

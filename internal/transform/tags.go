package transform

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// rewriteTags tokenizes s and hands every start (or self-closing) tag of the
// given element to fn. When fn reports a change, the token is re-serialized;
// every other byte of s is copied through unmodified.
func rewriteTags(s string, element atom.Atom, fn func(tok *html.Token) bool) string {
	if !strings.Contains(s, "<") {
		return s
	}

	var out strings.Builder
	out.Grow(len(s))

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		// Raw is invalidated by Token, so copy it first.
		raw := string(z.Raw())

		switch tt {
		case html.ErrorToken:
			// EOF. Raw holds any unterminated trailing tag.
			out.WriteString(raw)
			return out.String()
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom == element && fn(&tok) {
				out.WriteString(tok.String())
				continue
			}
		}
		out.WriteString(raw)
	}
}

// attr returns the value of the first attribute named key.
func attr(tok *html.Token, key string) (string, int) {
	for i, a := range tok.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, i
		}
	}
	return "", -1
}

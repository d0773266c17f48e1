package transform

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/abalbekov/go-nbsave/internal/fileutil"
)

// imageDataPrefix is written in front of every embedded payload. Notebook
// images are overwhelmingly PNG and browsers sniff the real type anyway.
const imageDataPrefix = "data:image/png;base64,"

// ImageEmbedder replaces local <img> sources with base64 data URIs.
// The zero value reads paths relative to the working directory.
type ImageEmbedder struct {
	// BaseDir resolves relative sources. Empty means the working directory.
	BaseDir string

	// ReadFile defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)

	// OnReadError, if set, is told about each source that could not be read.
	OnReadError func(path string, err error)
}

// EmbedImages inlines every local <img src="..."> in markdown using the
// working directory. See ImageEmbedder.Embed.
func EmbedImages(markdown string) string {
	return (&ImageEmbedder{}).Embed(markdown)
}

// Embed inlines every local <img src="..."> in markdown:
//
//	<img src="diagram.png" alt="Drawing">
//	<img src="data:image/png;base64,iVBORw0..." alt="Drawing">
//
// A source that cannot be read gets an empty payload; Embed never fails.
// data: URIs and http(s) URLs are left as they are.
func (e *ImageEmbedder) Embed(markdown string) string {
	if !strings.Contains(markdown, "<img") && !strings.Contains(markdown, "<IMG") {
		return markdown
	}
	return rewriteTags(markdown, atom.Img, e.inline)
}

func (e *ImageEmbedder) inline(tok *html.Token) bool {
	src, idx := attr(tok, "src")
	if idx < 0 || src == "" {
		return false
	}
	if strings.HasPrefix(src, "data:") || fileutil.IsURL(src) {
		return false
	}

	tok.Attr[idx].Val = imageDataPrefix + base64.StdEncoding.EncodeToString(e.read(src))
	return true
}

// read returns the file content or nil on any error.
func (e *ImageEmbedder) read(src string) []byte {
	path := strings.TrimPrefix(src, "file://")
	if e.BaseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(e.BaseDir, path)
	}

	readFile := e.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}

	data, err := readFile(path) // #nosec G304 -- notebook-referenced image
	if err != nil {
		if e.OnReadError != nil {
			e.OnReadError(path, err)
		}
		return nil
	}
	return data
}

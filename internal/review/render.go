package review

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// renderHTML converts a markdown body to HTML. On a conversion failure the
// review still works with the raw markdown, so the error collapses to "".
func renderHTML(body string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return ""
	}
	return buf.String()
}

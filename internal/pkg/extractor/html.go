package extractor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
)

var hiddenElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Hr: true,
	atom.Li: true, atom.Ul: true, atom.Ol: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Table: true, atom.Tr: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Nav: true, atom.Aside: true, atom.Main: true,
	atom.Blockquote: true, atom.Pre: true, atom.Figure: true, atom.Figcaption: true,
	atom.Title: true, atom.Body: true,
}

var cellElements = map[atom.Atom]bool{atom.Td: true, atom.Th: true}

// headElements may appear inside <head>; any other start tag implies <body>.
var headElements = map[atom.Atom]bool{
	atom.Head: true, atom.Html: true, atom.Title: true, atom.Meta: true, atom.Link: true,
	atom.Base: true, atom.Style: true, atom.Script: true, atom.Noscript: true, atom.Template: true,
}

// extractHTML keeps visible text only. <title> is kept, the rest of <head> is not.
func extractHTML(_ context.Context, in input) (output, error) {
	z := html.NewTokenizer(bytes.NewReader(in.data))

	var b strings.Builder
	hidden := 0
	inHead, inTitle := false, false

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return output{}, apperrors.NewCorruptedSourceError(err, "failed to read HTML from %s", in.filename)
			}
			return output{text: normalizeLines(b.String())}, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := atom.Lookup(name)
			if inHead && !headElements[tag] {
				inHead = false
			}
			switch {
			case tag == atom.Head:
				inHead = true
			case tag == atom.Body:
				inHead = false
			case tag == atom.Title && tt == html.StartTagToken:
				inTitle = true
			case hiddenElements[tag] && tt == html.StartTagToken:
				hidden++
			}
			if blockElements[tag] {
				b.WriteByte('\n')
			} else if cellElements[tag] {
				b.WriteByte(' ')
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := atom.Lookup(name)
			switch {
			case tag == atom.Head:
				inHead = false
			case tag == atom.Title:
				inTitle = false
			case hiddenElements[tag] && hidden > 0:
				hidden--
			}
			if blockElements[tag] {
				b.WriteByte('\n')
			}

		case html.TextToken:
			if hidden > 0 {
				continue
			}
			text := string(z.Text())
			if inHead && !inTitle {
				if strings.TrimSpace(text) == "" {
					continue
				}
				inHead = false
			}
			b.WriteString(collapseSpace(text))
		}
	}
}

// collapseSpace turns every whitespace run into a single space.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// normalizeLines trims every line and drops empty ones.
func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

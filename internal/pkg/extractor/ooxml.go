package extractor

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
)

// maxPartBytes bounds a single decompressed OOXML part.
const maxPartBytes = 64 << 20

func openPackage(in input) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(in.data), int64(len(in.data)))
	if err != nil {
		return nil, apperrors.NewCorruptedSourceError(err, "%s is not a valid Office document", in.filename)
	}
	return zr, nil
}

func readPart(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, maxPartBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxPartBytes {
		return nil, fmt.Errorf("part %s exceeds %d bytes", f.Name, maxPartBytes)
	}
	return data, nil
}

// paragraphs collects the text runs of every <p> element in a part.
// Word and DrawingML share the local names p, t, tab and br.
func paragraphs(data []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var out []string
	var current strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if line := strings.TrimSpace(current.String()); line != "" {
					out = append(out, line)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	if line := strings.TrimSpace(current.String()); line != "" {
		out = append(out, line)
	}
	return out, nil
}

func extractDOCX(_ context.Context, in input) (output, error) {
	zr, err := openPackage(in)
	if err != nil {
		return output{}, err
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return output{}, apperrors.NewCorruptedSourceError(nil, "%s has no document body", in.filename)
	}

	data, err := readPart(body)
	if err != nil {
		return output{}, apperrors.NewCorruptedSourceError(err, "failed to read %s", in.filename)
	}
	paras, err := paragraphs(data)
	if err != nil {
		return output{}, apperrors.NewCorruptedSourceError(err, "malformed document XML in %s", in.filename)
	}

	return output{text: strings.Join(paras, "\n"), sections: len(paras)}, nil
}

func extractPPTX(_ context.Context, in input) (output, error) {
	zr, err := openPackage(in)
	if err != nil {
		return output{}, err
	}

	type slide struct {
		num  int
		file *zip.File
	}
	var slides []slide
	hasPresentation := false
	for _, f := range zr.File {
		if f.Name == "ppt/presentation.xml" {
			hasPresentation = true
			continue
		}
		if n, ok := slideNumber(f.Name); ok {
			slides = append(slides, slide{num: n, file: f})
		}
	}
	if !hasPresentation && len(slides) == 0 {
		return output{}, apperrors.NewCorruptedSourceError(nil, "%s has no slides", in.filename)
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	var b strings.Builder
	for i, s := range slides {
		data, err := readPart(s.file)
		if err != nil {
			return output{}, apperrors.NewCorruptedSourceError(err, "failed to read slide %d of %s", s.num, in.filename)
		}
		paras, err := paragraphs(data)
		if err != nil {
			return output{}, apperrors.NewCorruptedSourceError(err, "malformed slide %d in %s", s.num, in.filename)
		}
		if len(paras) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Slide %d\n%s", i+1, strings.Join(paras, "\n"))
	}

	return output{text: b.String(), pages: len(slides), sections: len(slides)}, nil
}

// slideNumber parses ppt/slides/slideN.xml.
func slideNumber(name string) (int, bool) {
	if path.Dir(name) != "ppt/slides" {
		return 0, false
	}
	base := path.Base(name)
	if !strings.HasPrefix(base, "slide") || !strings.HasSuffix(base, ".xml") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(base, "slide"), ".xml"))
	if err != nil {
		return 0, false
	}
	return n, true
}

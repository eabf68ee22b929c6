package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
)

func extractPDF(_ context.Context, in input) (out output, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			out = output{}
			err = apperrors.NewCorruptedSourceError(fmt.Errorf("%v", r), "%s is not a readable PDF", in.filename)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(in.data), int64(len(in.data)))
	if err != nil {
		return output{}, apperrors.NewCorruptedSourceError(err, "%s is not a readable PDF", in.filename)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return output{}, apperrors.NewCorruptedSourceError(err, "failed to read text from %s", in.filename)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return output{}, apperrors.NewCorruptedSourceError(err, "failed to read text from %s", in.filename)
	}

	return output{
		text:  strings.TrimSpace(builder.String()),
		pages: reader.NumPage(),
	}, nil
}

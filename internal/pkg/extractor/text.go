package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func extractPlain(_ context.Context, in input) (output, error) {
	data := bytes.TrimPrefix(in.data, utf8BOM)
	return output{text: strings.ToValidUTF8(string(data), "\uFFFD")}, nil
}

// extractJSON re-indents without decoding, so key order and number
// formatting survive.
func extractJSON(_ context.Context, in input) (output, error) {
	data := bytes.TrimPrefix(in.data, utf8BOM)
	if !json.Valid(data) {
		var decoded interface{}
		err := json.Unmarshal(data, &decoded)
		return output{}, apperrors.NewParseError(err, "invalid JSON in %s: %v", in.filename, err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return output{}, apperrors.NewParseError(err, "invalid JSON in %s: %v", in.filename, err)
	}
	return output{text: buf.String()}, nil
}

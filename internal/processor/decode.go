package processor

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// ErrNotUTF8 is returned for input holding invalid UTF-8 sequences
var ErrNotUTF8 = errors.New("invalid UTF-8 sequence")

// DecodeBytes strips one leading byte order mark and decodes UTF-8. The
// decoder would replace invalid sequences with U+FFFD, so they are rejected
// up front.
func DecodeBytes(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("decode UTF-8: %w", ErrNotUTF8)
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode UTF-8: %w", err)
	}
	return string(out), nil
}

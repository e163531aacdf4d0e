package processor

import (
	"bytes"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Format represents the detected input format
type Format int

const (
	FormatUnknown Format = iota
	FormatXML
	FormatPDF
	FormatImage
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatPDF:
		return "pdf"
	case FormatImage:
		return "image"
	default:
		return "unknown"
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFormat sniffs the content type of data. XML without a declaration
// is recognized by its leading '<'.
func DetectFormat(data []byte) Format {
	if len(data) == 0 {
		return FormatUnknown
	}

	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		switch {
		case m.Is("text/xml"), m.Is("application/xml"):
			return FormatXML
		case m.Is("application/pdf"):
			return FormatPDF
		case strings.HasPrefix(m.String(), "image/"):
			return FormatImage
		}
	}

	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(trimmed) > 0 && trimmed[0] == '<' {
		return FormatXML
	}
	return FormatUnknown
}

// DetectMimeType returns the sniffed MIME type of data, e.g. "text/xml; charset=utf-8"
func DetectMimeType(data []byte) string {
	return mimetype.Detect(data).String()
}

package normalize

import (
	"strings"
	"unicode"

	"github.com/rezonia/ubl-processor/internal/model"
)

// DecodedSize returns the byte length of a base64 payload without decoding
// it: floor(len*3/4) minus one per trailing pad character. Whitespace is
// ignored.
func DecodedSize(content string) int {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, content)

	size := len(stripped) * 3 / 4
	switch {
	case strings.HasSuffix(stripped, "=="):
		size -= 2
	case strings.HasSuffix(stripped, "="):
		size--
	}
	if size < 0 {
		return 0
	}
	return size
}

// SanitizeAttachment drops the payload and keeps its decoded size
func SanitizeAttachment(a model.Attachment) model.AttachmentInfo {
	return model.AttachmentInfo{
		ID:          a.ID,
		Description: a.Description,
		TypeCode:    a.TypeCode,
		Filename:    a.Filename,
		MimeCode:    a.MimeCode,
		SizeBytes:   DecodedSize(a.Content),
	}
}

// SanitizeAttachments maps SanitizeAttachment over list. The result is never nil.
func SanitizeAttachments(list []model.Attachment) []model.AttachmentInfo {
	out := make([]model.AttachmentInfo, 0, len(list))
	for _, a := range list {
		out = append(out, SanitizeAttachment(a))
	}
	return out
}

// Sanitize copies doc with every attachment payload replaced by metadata.
// doc itself is not modified.
func Sanitize(doc *model.Document) model.SanitizedDocument {
	clean := *doc
	clean.Attachments = nil
	return model.SanitizedDocument{
		Document:    clean,
		Attachments: SanitizeAttachments(doc.Attachments),
	}
}

package server

import (
	"github.com/rezonia/ubl-processor/internal/validate"
)

// ValidationResponse is the response for validate endpoint
type ValidationResponse validate.Report

// InfoResponse is the response for info endpoint. The document fields are
// empty when the body is not a parseable UBL document.
type InfoResponse struct {
	Format       string `json:"format"`
	MimeType     string `json:"mime_type"`
	Size         int    `json:"size"`
	DocumentKind string `json:"document_kind,omitempty"`
	DocumentID   string `json:"document_id,omitempty"`
	Lines        int    `json:"lines"`
	Attachments  int    `json:"attachments"`
	Signed       bool   `json:"signed"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

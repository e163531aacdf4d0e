// Package processor wires byte decoding, UBL parsing and normalization into
// the entry points used by the CLI, the HTTP server and the public library.
package processor

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/rezonia/ubl-processor/internal/model"
	"github.com/rezonia/ubl-processor/internal/normalize"
	"github.com/rezonia/ubl-processor/internal/parser/ubl"
)

// DefaultMimeType is echoed when a caller normalizes without naming one
const DefaultMimeType = "application/xml"

// Result is the outcome of normalizing one document
type Result struct {
	Record model.ExtractionRecord `json:"record"`
	Raw    model.RawEcho          `json:"raw"`
	// ProviderJobID is always nil; UBL extraction is synchronous.
	ProviderJobID *string `json:"provider_job_id"`
}

// Pipeline orchestrates decode, parse and normalize. It holds no per-call
// state and is safe for concurrent use.
type Pipeline struct {
	log *logrus.Entry
}

// Option configures the pipeline
type Option func(*Pipeline)

// WithLogger sets the logger for parse failures
func WithLogger(log *logrus.Entry) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPipeline creates a new processing pipeline
func NewPipeline(opts ...Option) *Pipeline {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Pipeline{
		log: logrus.NewEntry(discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes data and parses it into the document model. On failure the
// document is nil and the error is a *model.ParseError.
func (p *Pipeline) Parse(data []byte) (*model.Document, error) {
	text, err := DecodeBytes(data)
	if err != nil {
		return nil, model.NewParseError(model.ProviderUBL, "encoding", "input is not UTF-8", err)
	}
	return p.ParseText(text)
}

// ParseText parses XML text into the document model
func (p *Pipeline) ParseText(xmlText string) (*model.Document, error) {
	// Each call gets its own parser and tree.
	return ubl.NewParser().Parse([]byte(xmlText))
}

// Normalize builds the record and raw echo for an already parsed document
func (p *Pipeline) Normalize(doc *model.Document, documentID string) (*Result, error) {
	return p.Build(doc, documentID, DefaultMimeType)
}

// NormalizeText parses xmlText and normalizes it. A document that cannot be
// parsed fails with model.ErrInvalidUBL.
func (p *Pipeline) NormalizeText(xmlText, documentID string) (*Result, error) {
	doc, err := p.ParseText(xmlText)
	if err != nil {
		p.logParseFailure(documentID, err)
		return nil, model.ErrInvalidUBL
	}
	return p.Build(doc, documentID, DefaultMimeType)
}

// Extract runs the whole pipeline over raw bytes. mimeType is echoed in the
// raw block untouched. Unparseable input fails with model.ErrInvalidUBL.
func (p *Pipeline) Extract(ctx context.Context, data []byte, documentID, mimeType string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := p.Parse(data)
	if err != nil {
		p.logParseFailure(documentID, err)
		return nil, model.ErrInvalidUBL
	}
	return p.Build(doc, documentID, mimeType)
}

// Build normalizes an already parsed document and echoes mimeType in the
// raw block
func (p *Pipeline) Build(doc *model.Document, documentID, mimeType string) (*Result, error) {
	if doc == nil {
		return nil, model.ErrInvalidUBL
	}

	result := &Result{
		Record: normalize.Normalize(doc, documentID),
		Raw:    normalize.RawEcho(doc, mimeType),
	}

	p.log.WithFields(logrus.Fields{
		"document_id":   documentID,
		"document_kind": doc.Kind,
		"invoice_id":    doc.ID,
		"line_items":    len(result.Record.LineItems),
	}).Debug("document normalized")

	return result, nil
}

func (p *Pipeline) logParseFailure(documentID string, err error) {
	p.log.WithError(err).WithField("document_id", documentID).Debug("UBL parse failed")
}

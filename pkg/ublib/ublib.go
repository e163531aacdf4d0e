// Package ublib provides a public API for reading UBL 2.1 Invoice and
// CreditNote documents.
//
// It exposes the document model, the normalized extraction record and a
// Processor that parses, normalizes and validates documents one at a time
// or in bounded parallel batches.
//
// Example usage:
//
//	proc := ublib.NewDefaultProcessor()
//	result, err := proc.Extract(ctx, data, "doc-1", "application/xml")
//	if errors.Is(err, ublib.ErrInvalidUBL) {
//	    log.Fatal(err)
//	}
//	fmt.Println(*result.Record.Invoice.TotalAmount)
package ublib

import (
	"github.com/rezonia/ubl-processor/internal/model"
	"github.com/rezonia/ubl-processor/internal/processor"
	"github.com/rezonia/ubl-processor/internal/validate"
)

// Re-export the document model
type (
	Document        = model.Document
	DocumentKind    = model.DocumentKind
	Party           = model.Party
	Address         = model.Address
	Line            = model.Line
	TaxSubtotal     = model.TaxSubtotal
	AllowanceCharge = model.AllowanceCharge
	MonetaryTotal   = model.MonetaryTotal
	PaymentMeans    = model.PaymentMeans
	Attachment      = model.Attachment
)

// Re-export the normalized output
type (
	Result           = processor.Result
	ExtractionRecord = model.ExtractionRecord
	InvoiceFields    = model.InvoiceFields
	LineItem         = model.LineItem
	RawEcho          = model.RawEcho
	Report           = validate.Report
)

// Re-export document kinds
const (
	KindInvoice    = model.KindInvoice
	KindCreditNote = model.KindCreditNote
)

// Re-export error types
type (
	ParseError      = model.ParseError
	ValidationError = model.ValidationError
)

// ErrInvalidUBL is returned for input that is not a parseable UBL document
var ErrInvalidUBL = model.ErrInvalidUBL

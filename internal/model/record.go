package model

import (
	"github.com/shopspring/decimal"
)

// Provider tags the source format of an extraction record
type Provider string

const (
	ProviderUBL     Provider = "ubl"
	ProviderUnknown Provider = "UNKNOWN"
)

// RawFormatUBL is the format tag of the raw echo
const RawFormatUBL = "ubl_xml"

// ExtractionRecord is the flat, normalized output for one document.
// Every monetary, date and textual field is nullable.
type ExtractionRecord struct {
	Provider   Provider      `json:"provider"`
	DocumentID string        `json:"document_id"`
	Invoice    InvoiceFields `json:"invoice"`
	LineItems  []LineItem    `json:"line_items"`
	Confidence Confidence    `json:"confidence"`
}

// InvoiceFields are the header-level business fields
type InvoiceFields struct {
	InvoiceNumber *string `json:"invoice_number"`
	InvoiceDate   *string `json:"invoice_date"`
	DueDate       *string `json:"due_date"`
	Currency      *string `json:"currency"`

	VendorName              *string            `json:"vendor_name"`
	VendorTaxID             *string            `json:"vendor_tax_id"`
	VendorAddress           *string            `json:"vendor_address"`
	VendorAddressStructured *StructuredAddress `json:"vendor_address_structured"`
	VendorEmail             *string            `json:"vendor_email"`
	VendorPhone             *string            `json:"vendor_phone"`

	CustomerName              *string            `json:"customer_name"`
	CustomerTaxID             *string            `json:"customer_tax_id"`
	CustomerAddress           *string            `json:"customer_address"`
	CustomerAddressStructured *StructuredAddress `json:"customer_address_structured"`
	CustomerEmail             *string            `json:"customer_email"`
	CustomerPhone             *string            `json:"customer_phone"`

	PONumber     *string `json:"po_number"`
	PaymentTerms *string `json:"payment_terms"`
	Notes        *string `json:"notes"`

	Subtotal      decimal.NullDecimal `json:"subtotal"`
	TaxTotal      decimal.NullDecimal `json:"tax_total"`
	DiscountTotal decimal.NullDecimal `json:"discount_total"`
	ShippingTotal decimal.NullDecimal `json:"shipping_total"`
	Total         decimal.NullDecimal `json:"total"`
	AmountDue     decimal.NullDecimal `json:"amount_due"`
	AmountPaid    decimal.NullDecimal `json:"amount_paid"`

	Extra map[string]any `json:"extra"`
}

// LineItem is one normalized document line
type LineItem struct {
	Description    *string             `json:"description"`
	Quantity       decimal.NullDecimal `json:"quantity"`
	Unit           *string             `json:"unit"`
	UnitPrice      decimal.NullDecimal `json:"unit_price"`
	Amount         decimal.NullDecimal `json:"amount"`
	TaxRate        decimal.NullDecimal `json:"tax_rate"`
	TaxAmount      decimal.NullDecimal `json:"tax_amount"`
	DiscountAmount decimal.NullDecimal `json:"discount_amount"`
	Extra          map[string]any      `json:"extra"`
}

// StructuredAddress is an address split into fields. Line2 is reserved and
// always nil.
type StructuredAddress struct {
	Line1      *string `json:"line1"`
	Line2      *string `json:"line2"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

// Confidence is a static affirmation; structured UBL has no uncertainty model
type Confidence struct {
	Overall float64            `json:"overall"`
	Fields  map[string]float64 `json:"fields"`
}

// AttachmentInfo is attachment metadata with the payload replaced by its
// decoded size
type AttachmentInfo struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	TypeCode    string `json:"type_code,omitempty"`
	Filename    string `json:"filename,omitempty"`
	MimeCode    string `json:"mime_code,omitempty"`
	SizeBytes   int    `json:"size_bytes"`
}

// SanitizedDocument is a Document whose attachment payloads were removed.
// The embedded Document never carries attachments.
type SanitizedDocument struct {
	Document
	Attachments []AttachmentInfo `json:"attachments"`
}

// RawEcho is returned next to the record
type RawEcho struct {
	Format   string            `json:"format"`
	Invoice  SanitizedDocument `json:"invoice"`
	MimeType string            `json:"mime_type"`
}

package model

import (
	"github.com/shopspring/decimal"
)

// DocumentKind identifies which UBL root document was parsed
type DocumentKind string

const (
	KindInvoice    DocumentKind = "Invoice"
	KindCreditNote DocumentKind = "CreditNote"
)

// Valid reports whether k is one of the two recognized kinds
func (k DocumentKind) Valid() bool {
	return k == KindInvoice || k == KindCreditNote
}

// LineTag returns the line aggregate tag for this kind
func (k DocumentKind) LineTag() string {
	if k == KindCreditNote {
		return "CreditNoteLine"
	}
	return "InvoiceLine"
}

// QuantityTag returns the line quantity tag for this kind
func (k DocumentKind) QuantityTag() string {
	if k == KindCreditNote {
		return "CreditedQuantity"
	}
	return "InvoicedQuantity"
}

// TypeCodeTag returns the document type code tag for this kind
func (k DocumentKind) TypeCodeTag() string {
	if k == KindCreditNote {
		return "CreditNoteTypeCode"
	}
	return "InvoiceTypeCode"
}

// Document is the typed model of one UBL Invoice or CreditNote.
//
// Required numerics default to zero so arithmetic over the model is always
// defined. Optional numerics use decimal.NullDecimal. Dates are kept as the
// schema strings found in the document.
type Document struct {
	Kind            DocumentKind `json:"document_kind"`
	ID              string       `json:"id"`
	CustomizationID string       `json:"customization_id,omitempty"`
	ProfileID       string       `json:"profile_id,omitempty"`
	TypeCode        string       `json:"type_code,omitempty"`

	IssueDate    string `json:"issue_date,omitempty"`
	DueDate      string `json:"due_date,omitempty"`
	TaxPointDate string `json:"tax_point_date,omitempty"`

	CurrencyCode string `json:"currency_code,omitempty"`

	BuyerReference    string `json:"buyer_reference,omitempty"`
	OrderReference    string `json:"order_reference,omitempty"`
	SalesOrderID      string `json:"sales_order_id,omitempty"`
	ContractReference string `json:"contract_reference,omitempty"`
	ProjectReference  string `json:"project_reference,omitempty"`
	BillingReference  string `json:"billing_reference,omitempty"`
	AccountingCost    string `json:"accounting_cost,omitempty"`

	Seller   Party     `json:"seller"`
	Buyer    Party     `json:"buyer"`
	Delivery *Delivery `json:"delivery,omitempty"`

	Lines        []Line        `json:"lines"`
	TaxSubtotals []TaxSubtotal `json:"tax_subtotals"`
	Totals       MonetaryTotal `json:"monetary_total"`

	// PaymentMeansList holds every PaymentMeans in document order.
	PaymentMeansList []PaymentMeans `json:"payment_means_list"`
	// PaymentMeans is a copy of the first entry of PaymentMeansList.
	PaymentMeans *PaymentMeans `json:"payment_means,omitempty"`

	InvoicePeriod *InvoicePeriod `json:"invoice_period,omitempty"`
	Note          string         `json:"note,omitempty"`
	PaymentTerms  string         `json:"payment_terms,omitempty"`

	Attachments      []Attachment      `json:"attachments"`
	AllowanceCharges []AllowanceCharge `json:"allowance_charges"`
	Signed           bool              `json:"signed"`
}

// Party is a seller or buyer. Name is empty when unresolved, never absent.
type Party struct {
	Name             string   `json:"name"`
	RegistrationName string   `json:"registration_name,omitempty"`
	LegalForm        string   `json:"legal_form,omitempty"`
	VatID            string   `json:"vat_id,omitempty"`
	TaxSchemeID      string   `json:"tax_scheme_id,omitempty"`
	CompanyID        string   `json:"company_id,omitempty"`
	EndpointID       string   `json:"endpoint_id,omitempty"`
	EndpointSchemeID string   `json:"endpoint_scheme_id,omitempty"`
	Address          *Address `json:"address,omitempty"`
	Contact          *Contact `json:"contact,omitempty"`
}

// UnknownParty is used when a party wrapper or its inner Party is missing
func UnknownParty() Party {
	return Party{Name: "Unknown"}
}

// Address is a UBL PostalAddress or delivery location address
type Address struct {
	Street           string `json:"street"`
	AdditionalStreet string `json:"additional_street,omitempty"`
	City             string `json:"city"`
	PostalZone       string `json:"postal_zone"`
	CountrySubentity string `json:"country_subentity,omitempty"`
	CountryCode      string `json:"country_code"`
}

// Contact is absent when name, phone and email are all empty
type Contact struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Line is an InvoiceLine or CreditNoteLine
type Line struct {
	ID                  string          `json:"id"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitCode            string          `json:"unit_code,omitempty"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	LineExtensionAmount decimal.Decimal `json:"line_extension_amount"`

	TaxPercent    decimal.NullDecimal `json:"tax_percent"`
	TaxAmount     decimal.NullDecimal `json:"tax_amount"`
	TaxCategoryID string              `json:"tax_category_id,omitempty"`
	TaxSchemeID   string              `json:"tax_scheme_id,omitempty"`
	TaxSubtotals  []TaxSubtotal       `json:"tax_subtotals,omitempty"`

	AllowanceCharges []AllowanceCharge   `json:"allowance_charges,omitempty"`
	DiscountAmount   decimal.NullDecimal `json:"discount_amount"`
	ChargeAmount     decimal.NullDecimal `json:"charge_amount"`

	ItemName     string `json:"item_name,omitempty"`
	SellerItemID string `json:"seller_item_id,omitempty"`
	BuyerItemID  string `json:"buyer_item_id,omitempty"`
}

// TaxSubtotal binds a taxable base, a tax amount and a rate
type TaxSubtotal struct {
	TaxableAmount   decimal.Decimal `json:"taxable_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Percent         decimal.Decimal `json:"percent"`
	CategoryID      string          `json:"category_id,omitempty"`
	SchemeID        string          `json:"scheme_id,omitempty"`
	ExemptionReason string          `json:"exemption_reason,omitempty"`
}

// AllowanceCharge is a discount (ChargeIndicator false) or surcharge (true).
// Amount keeps the document's sign; aggregations take the absolute value.
type AllowanceCharge struct {
	ChargeIndicator  bool                `json:"charge_indicator"`
	Amount           decimal.Decimal     `json:"amount"`
	BaseAmount       decimal.NullDecimal `json:"base_amount"`
	MultiplierFactor decimal.NullDecimal `json:"multiplier_factor"`
	Reason           string              `json:"reason,omitempty"`
	ReasonCode       string              `json:"reason_code,omitempty"`
	TaxPercent       decimal.NullDecimal `json:"tax_percent"`
	TaxCategoryID    string              `json:"tax_category_id,omitempty"`
	TaxSchemeID      string              `json:"tax_scheme_id,omitempty"`
}

// MonetaryTotal is the LegalMonetaryTotal aggregate
type MonetaryTotal struct {
	LineExtensionAmount decimal.Decimal     `json:"line_extension_amount"`
	TaxExclusiveAmount  decimal.Decimal     `json:"tax_exclusive_amount"`
	TaxInclusiveAmount  decimal.Decimal     `json:"tax_inclusive_amount"`
	PayableAmount       decimal.Decimal     `json:"payable_amount"`
	AllowanceTotal      decimal.NullDecimal `json:"allowance_total_amount"`
	ChargeTotal         decimal.NullDecimal `json:"charge_total_amount"`
	PrepaidAmount       decimal.NullDecimal `json:"prepaid_amount"`
	RoundingAmount      decimal.NullDecimal `json:"payable_rounding_amount"`
}

// PaymentMeans describes one way the buyer can pay
type PaymentMeans struct {
	Code        string `json:"code"`
	CodeName    string `json:"code_name,omitempty"`
	PaymentID   string `json:"payment_id,omitempty"`
	DueDate     string `json:"payment_due_date,omitempty"`
	IBAN        string `json:"iban,omitempty"`
	BIC         string `json:"bic,omitempty"`
	AccountName string `json:"account_name,omitempty"`
}

// InvoicePeriod is the billing period covered by the document
type InvoicePeriod struct {
	StartDate       string `json:"start_date,omitempty"`
	EndDate         string `json:"end_date,omitempty"`
	DescriptionCode string `json:"description_code,omitempty"`
}

// Delivery is where and when goods were delivered
type Delivery struct {
	ActualDeliveryDate string   `json:"actual_delivery_date,omitempty"`
	LocationID         string   `json:"location_id,omitempty"`
	PartyName          string   `json:"party_name,omitempty"`
	Address            *Address `json:"address,omitempty"`
}

// Attachment is an AdditionalDocumentReference with an embedded binary.
// Content is the base64 payload exactly as found in the document.
type Attachment struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	TypeCode    string `json:"type_code,omitempty"`
	Filename    string `json:"filename,omitempty"`
	MimeCode    string `json:"mime_code,omitempty"`
	Content     string `json:"content"`
}

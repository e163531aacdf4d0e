// Package normalize turns a parsed UBL document into the flat extraction
// record. Every function here is pure: no I/O, no logging, no shared state.
package normalize

import (
	"github.com/shopspring/decimal"

	dec "github.com/rezonia/ubl-processor/internal/decimal"
	"github.com/rezonia/ubl-processor/internal/model"
)

// confidenceFields are the fields the static confidence block affirms
var confidenceFields = []string{
	"invoice_number",
	"invoice_date",
	"due_date",
	"currency",
	"vendor_name",
	"customer_name",
	"subtotal",
	"tax_total",
	"total",
	"amount_due",
	"line_items",
}

// Normalize builds the extraction record for doc
func Normalize(doc *model.Document, documentID string) model.ExtractionRecord {
	return model.ExtractionRecord{
		Provider:   model.ProviderUBL,
		DocumentID: documentID,
		Invoice:    invoiceFields(doc),
		LineItems:  lineItems(doc.Lines),
		Confidence: confidence(),
	}
}

// RawEcho wraps the sanitized document with the caller's MIME type, which is
// passed through as given
func RawEcho(doc *model.Document, mimeType string) model.RawEcho {
	return model.RawEcho{
		Format:   model.RawFormatUBL,
		Invoice:  Sanitize(doc),
		MimeType: mimeType,
	}
}

func invoiceFields(doc *model.Document) model.InvoiceFields {
	totals := doc.Totals
	total := totalAmount(totals)
	amountDue := dec.Known(totals.PayableAmount)
	discount, shipping := allowanceChargeTotals(doc)

	fields := model.InvoiceFields{
		InvoiceNumber: Text(doc.ID),
		InvoiceDate:   Date(doc.IssueDate),
		DueDate:       Date(doc.DueDate),
		Currency:      Currency(doc.CurrencyCode),

		PONumber:     FirstText(doc.OrderReference, doc.SalesOrderID),
		PaymentTerms: Text(doc.PaymentTerms),
		Notes:        Text(doc.Note),

		Subtotal:      subtotal(totals),
		TaxTotal:      taxTotal(doc),
		DiscountTotal: discount,
		ShippingTotal: shipping,
		Total:         total,
		AmountDue:     amountDue,
		AmountPaid:    amountPaid(totals, total, amountDue),

		Extra: invoiceExtra(doc),
	}

	seller := partyFields(doc.Seller)
	fields.VendorName = seller.name
	fields.VendorTaxID = seller.taxID
	fields.VendorAddress = seller.address
	fields.VendorAddressStructured = seller.structured
	fields.VendorEmail = seller.email
	fields.VendorPhone = seller.phone

	buyer := partyFields(doc.Buyer)
	fields.CustomerName = buyer.name
	fields.CustomerTaxID = buyer.taxID
	fields.CustomerAddress = buyer.address
	fields.CustomerAddressStructured = buyer.structured
	fields.CustomerEmail = buyer.email
	fields.CustomerPhone = buyer.phone

	return fields
}

type normalizedParty struct {
	name       *string
	taxID      *string
	address    *string
	structured *model.StructuredAddress
	email      *string
	phone      *string
}

func partyFields(p model.Party) normalizedParty {
	out := normalizedParty{
		name:       FirstText(p.Name, p.RegistrationName),
		taxID:      FirstText(p.VatID, p.CompanyID),
		address:    AddressText(p.Address),
		structured: AddressStructured(p.Address),
	}
	if p.Contact != nil {
		out.email = Text(p.Contact.Email)
		out.phone = Text(p.Contact.Phone)
	}
	return out
}

// subtotal is the tax-exclusive amount. The line extension fallback only
// applies to a non-finite figure, which a decimal never is, so an explicit or
// defaulted zero is reported as zero.
func subtotal(t model.MonetaryTotal) decimal.NullDecimal {
	return dec.Known(t.TaxExclusiveAmount)
}

// totalAmount is the tax-inclusive amount, on the same terms as subtotal
func totalAmount(t model.MonetaryTotal) decimal.NullDecimal {
	return dec.Known(t.TaxInclusiveAmount)
}

// amountPaid is the prepaid amount, else what total exceeds the amount due by
func amountPaid(t model.MonetaryTotal, total, due decimal.NullDecimal) decimal.NullDecimal {
	if t.PrepaidAmount.Valid {
		return t.PrepaidAmount
	}
	if total.Valid && due.Valid && total.Decimal.GreaterThan(due.Decimal) {
		return dec.Known(total.Decimal.Sub(due.Decimal))
	}
	return dec.Null
}

// taxTotal sums the header tax subtotals, or derives inclusive minus
// exclusive when there are none
func taxTotal(doc *model.Document) decimal.NullDecimal {
	if len(doc.TaxSubtotals) > 0 {
		amounts := make([]decimal.Decimal, 0, len(doc.TaxSubtotals))
		for _, st := range doc.TaxSubtotals {
			amounts = append(amounts, st.TaxAmount)
		}
		return dec.Known(dec.Sum(amounts))
	}
	return dec.Known(doc.Totals.TaxInclusiveAmount.Sub(doc.Totals.TaxExclusiveAmount))
}

// allowanceChargeTotals prefers the explicit monetary totals and otherwise
// sums the header allowance/charges by indicator. Without header
// allowance/charges both are unknown.
func allowanceChargeTotals(doc *model.Document) (discount, charge decimal.NullDecimal) {
	var summed [2]decimal.NullDecimal
	if len(doc.AllowanceCharges) > 0 {
		var allowances, charges []decimal.Decimal
		for _, ac := range doc.AllowanceCharges {
			if ac.ChargeIndicator {
				charges = append(charges, ac.Amount)
			} else {
				allowances = append(allowances, ac.Amount)
			}
		}
		summed[0] = dec.Known(dec.SumAbs(allowances))
		summed[1] = dec.Known(dec.SumAbs(charges))
	}
	return dec.First(doc.Totals.AllowanceTotal, summed[0]), dec.First(doc.Totals.ChargeTotal, summed[1])
}

func lineItems(lines []model.Line) []model.LineItem {
	items := make([]model.LineItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, model.LineItem{
			Description:    Text(l.Description),
			Quantity:       dec.Known(l.Quantity),
			Unit:           Text(l.UnitCode),
			UnitPrice:      dec.Known(l.UnitPrice),
			Amount:         dec.Known(l.LineExtensionAmount),
			TaxRate:        l.TaxPercent,
			TaxAmount:      l.TaxAmount,
			DiscountAmount: l.DiscountAmount,
			Extra:          lineExtra(l),
		})
	}
	return items
}

func confidence() model.Confidence {
	fields := make(map[string]float64, len(confidenceFields))
	for _, f := range confidenceFields {
		fields[f] = 1
	}
	return model.Confidence{Overall: 1, Fields: fields}
}

// Package ubl reads UBL 2.1 Invoice and CreditNote XML into the typed
// document model.
//
// Every lookup goes through Child (direct children only) or Descendant
// (whole subtree). UBL reuses tag names at different levels, so the mode is
// chosen per field: picking Descendant where Child is meant makes a line's
// TaxTotal, AllowanceCharge or Note bleed into the header.
package ubl

import (
	"bytes"
	"errors"
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/ubl-processor/internal/model"
)

// Parser parses UBL Invoice and CreditNote documents. A Parser holds no
// state; every Parse call builds its own XML tree.
type Parser struct{}

// NewParser creates a new UBL parser
func NewParser() *Parser {
	return &Parser{}
}

// Provider returns the provider type
func (p *Parser) Provider() model.Provider {
	return model.ProviderUBL
}

// CanParse reports whether content looks like a UBL Invoice or CreditNote
func (p *Parser) CanParse(content []byte) bool {
	return bytes.Contains(content, []byte(NamespaceInvoice)) ||
		bytes.Contains(content, []byte(NamespaceCreditNote))
}

// Parse is NewParser().Parse(data)
func Parse(data []byte) (*model.Document, error) {
	return NewParser().Parse(data)
}

// Parse builds the document model. It fails only when the XML is not well
// formed, the root is neither Invoice nor CreditNote, or the root has no ID;
// the returned *model.ParseError matches model.ErrInvalidUBL. Anything else
// missing degrades to empty, zero or absent values.
func (p *Parser) Parse(data []byte) (*model.Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, model.NewParseError(model.ProviderUBL, "xml", "failed to parse XML", err)
	}

	root := tree.Root()
	if root == nil {
		return nil, model.NewParseError(model.ProviderUBL, "xml", "failed to parse XML", errors.New("no root element"))
	}

	kind := model.DocumentKind(root.Tag)
	if !kind.Valid() || root.NamespaceURI() != rootNamespace(kind) {
		return nil, model.NewParseError(model.ProviderUBL, "root", "unsupported root element "+root.FullTag(), nil)
	}

	id := ChildText(root, CBC("ID"))
	if id == "" {
		return nil, model.NewParseError(model.ProviderUBL, "id", "document has no ID", nil)
	}

	doc := &model.Document{
		Kind:            kind,
		ID:              id,
		CustomizationID: ChildText(root, CBC("CustomizationID")),
		ProfileID:       ChildText(root, CBC("ProfileID")),
		TypeCode:        ChildText(root, CBC(kind.TypeCodeTag())),
		IssueDate:       ChildText(root, CBC("IssueDate")),
		TaxPointDate:    ChildText(root, CBC("TaxPointDate")),
		CurrencyCode:    ChildText(root, CBC("DocumentCurrencyCode")),
		BuyerReference:  ChildText(root, CBC("BuyerReference")),
		AccountingCost:  ChildText(root, CBC("AccountingCost")),
		Note:            parseNotes(root),
		PaymentTerms:    ChildText(Child(root, CAC("PaymentTerms")), CBC("Note")),
		Signed:          hasSignature(root),
	}

	order := Child(root, CAC("OrderReference"))
	doc.OrderReference = ChildText(order, CBC("ID"))
	doc.SalesOrderID = ChildText(order, CBC("SalesOrderID"))
	doc.ContractReference = ChildText(Child(root, CAC("ContractDocumentReference")), CBC("ID"))
	doc.ProjectReference = ChildText(Child(root, CAC("ProjectReference")), CBC("ID"))
	doc.BillingReference = ChildText(ChildPath(root, CAC("BillingReference"), CAC("InvoiceDocumentReference")), CBC("ID"))

	doc.Seller = parseParty(Child(root, CAC("AccountingSupplierParty")))
	doc.Buyer = parseParty(Child(root, CAC("AccountingCustomerParty")))
	doc.Delivery = parseDelivery(Child(root, CAC("Delivery")))
	doc.InvoicePeriod = parseInvoicePeriod(Child(root, CAC("InvoicePeriod")))

	doc.Lines = parseLines(root, kind)
	doc.TaxSubtotals = parseTaxSubtotals(root)
	doc.AllowanceCharges = parseAllowanceCharges(root)
	doc.Totals = parseMonetaryTotal(Child(root, CAC("LegalMonetaryTotal")))

	doc.PaymentMeansList = parsePaymentMeansList(root)
	if len(doc.PaymentMeansList) > 0 {
		first := doc.PaymentMeansList[0]
		doc.PaymentMeans = &first
	}

	doc.DueDate = ChildText(root, CBC("DueDate"))
	if doc.DueDate == "" {
		for _, pm := range doc.PaymentMeansList {
			if pm.DueDate != "" {
				doc.DueDate = pm.DueDate
				break
			}
		}
	}

	doc.Attachments = parseAttachments(root)

	return doc, nil
}

func rootNamespace(kind model.DocumentKind) string {
	if kind == model.KindCreditNote {
		return NamespaceCreditNote
	}
	return NamespaceInvoice
}

// parseNotes joins the root's own Note children; notes of nested aggregates
// are not part of the document note
func parseNotes(root *etree.Element) string {
	var notes []string
	for _, n := range Children(root, CBC("Note")) {
		if text := Text(n); text != "" {
			notes = append(notes, text)
		}
	}
	return strings.Join(notes, "\n")
}

func parseInvoicePeriod(e *etree.Element) *model.InvoicePeriod {
	if e == nil {
		return nil
	}
	return &model.InvoicePeriod{
		StartDate:       ChildText(e, CBC("StartDate")),
		EndDate:         ChildText(e, CBC("EndDate")),
		DescriptionCode: ChildText(e, CBC("DescriptionCode")),
	}
}

// hasSignature reports a UBL Signature aggregate or an XMLDSig signature
// inside the extension block
func hasSignature(root *etree.Element) bool {
	if Child(root, CAC("Signature")) != nil {
		return true
	}
	ext := Child(root, Name{Space: NamespaceExt, Local: "UBLExtensions"})
	return Descendant(ext, Name{Space: NamespaceXMLDSig, Local: "Signature"}) != nil
}

package ubl

import (
	"github.com/beevik/etree"

	"github.com/rezonia/ubl-processor/internal/model"
)

// parseMonetaryTotal reads LegalMonetaryTotal. A missing aggregate gives
// zero required amounts and unknown optional ones.
func parseMonetaryTotal(e *etree.Element) model.MonetaryTotal {
	return model.MonetaryTotal{
		LineExtensionAmount: ChildNumber(e, CBC("LineExtensionAmount")),
		TaxExclusiveAmount:  ChildNumber(e, CBC("TaxExclusiveAmount")),
		TaxInclusiveAmount:  ChildNumber(e, CBC("TaxInclusiveAmount")),
		PayableAmount:       ChildNumber(e, CBC("PayableAmount")),
		AllowanceTotal:      ChildOptionalNumber(e, CBC("AllowanceTotalAmount")),
		ChargeTotal:         ChildOptionalNumber(e, CBC("ChargeTotalAmount")),
		PrepaidAmount:       ChildOptionalNumber(e, CBC("PrepaidAmount")),
		RoundingAmount:      ChildOptionalNumber(e, CBC("PayableRoundingAmount")),
	}
}

func parsePaymentMeansList(root *etree.Element) []model.PaymentMeans {
	var out []model.PaymentMeans
	for _, e := range Children(root, CAC("PaymentMeans")) {
		code := Child(e, CBC("PaymentMeansCode"))
		account := Child(e, CAC("PayeeFinancialAccount"))
		out = append(out, model.PaymentMeans{
			Code:        Text(code),
			CodeName:    Attr(code, "name"),
			PaymentID:   ChildText(e, CBC("PaymentID")),
			DueDate:     ChildText(e, CBC("PaymentDueDate")),
			IBAN:        ChildText(account, CBC("ID")),
			BIC:         ChildText(Child(account, CAC("FinancialInstitutionBranch")), CBC("ID")),
			AccountName: ChildText(account, CBC("Name")),
		})
	}
	return out
}

// parseAttachments keeps AdditionalDocumentReferences whose Attachment
// carries a non-empty EmbeddedDocumentBinaryObject
func parseAttachments(root *etree.Element) []model.Attachment {
	out := []model.Attachment{}
	for _, ref := range Children(root, CAC("AdditionalDocumentReference")) {
		binary := ChildPath(ref, CAC("Attachment"), CBC("EmbeddedDocumentBinaryObject"))
		content := Text(binary)
		if content == "" {
			continue
		}
		out = append(out, model.Attachment{
			ID:          ChildText(ref, CBC("ID")),
			Description: ChildText(ref, CBC("DocumentDescription")),
			TypeCode:    ChildText(ref, CBC("DocumentTypeCode")),
			Filename:    Attr(binary, "filename"),
			MimeCode:    Attr(binary, "mimeCode"),
			Content:     content,
		})
	}
	return out
}

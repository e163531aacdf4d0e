package ubl

import (
	"github.com/beevik/etree"

	dec "github.com/rezonia/ubl-processor/internal/decimal"
	"github.com/rezonia/ubl-processor/internal/model"
)

// parseTaxSubtotals flattens the TaxSubtotals of every TaxTotal that is a
// direct child of parent. Called on the root it never sees line TaxTotals.
func parseTaxSubtotals(parent *etree.Element) []model.TaxSubtotal {
	var out []model.TaxSubtotal
	for _, total := range Children(parent, CAC("TaxTotal")) {
		for _, sub := range Children(total, CAC("TaxSubtotal")) {
			out = append(out, parseTaxSubtotal(sub))
		}
	}
	return out
}

func parseTaxSubtotal(e *etree.Element) model.TaxSubtotal {
	category := Child(e, CAC("TaxCategory"))

	percent, ok := dec.Parse(ChildText(category, CBC("Percent")))
	if !ok {
		percent = ChildNumber(e, CBC("Percent"))
	}

	return model.TaxSubtotal{
		TaxableAmount:   ChildNumber(e, CBC("TaxableAmount")),
		TaxAmount:       ChildNumber(e, CBC("TaxAmount")),
		Percent:         percent,
		CategoryID:      ChildText(category, CBC("ID")),
		SchemeID:        ChildText(Child(category, CAC("TaxScheme")), CBC("ID")),
		ExemptionReason: ChildText(category, CBC("TaxExemptionReason")),
	}
}

// parseAllowanceCharges reads only parent's own AllowanceCharge children so
// header and line allowances are never counted twice
func parseAllowanceCharges(parent *etree.Element) []model.AllowanceCharge {
	var out []model.AllowanceCharge
	for _, e := range Children(parent, CAC("AllowanceCharge")) {
		category := Child(e, CAC("TaxCategory"))
		out = append(out, model.AllowanceCharge{
			ChargeIndicator:  ChildBool(e, CBC("ChargeIndicator")),
			Amount:           ChildNumber(e, CBC("Amount")),
			BaseAmount:       ChildOptionalNumber(e, CBC("BaseAmount")),
			MultiplierFactor: ChildOptionalNumber(e, CBC("MultiplierFactorNumeric")),
			Reason:           ChildText(e, CBC("AllowanceChargeReason")),
			ReasonCode:       ChildText(e, CBC("AllowanceChargeReasonCode")),
			TaxPercent:       ChildOptionalNumber(category, CBC("Percent")),
			TaxCategoryID:    ChildText(category, CBC("ID")),
			TaxSchemeID:      ChildText(Child(category, CAC("TaxScheme")), CBC("ID")),
		})
	}
	return out
}

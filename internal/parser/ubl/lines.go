package ubl

import (
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	dec "github.com/rezonia/ubl-processor/internal/decimal"
	"github.com/rezonia/ubl-processor/internal/model"
)

// parseLines reads the root's InvoiceLine or CreditNoteLine children
func parseLines(root *etree.Element, kind model.DocumentKind) []model.Line {
	lines := []model.Line{}
	for _, e := range Children(root, CAC(kind.LineTag())) {
		lines = append(lines, parseLine(e, kind))
	}
	return lines
}

func parseLine(e *etree.Element, kind model.DocumentKind) model.Line {
	item := Child(e, CAC("Item"))
	quantity := Child(e, CBC(kind.QuantityTag()))
	classified := Child(item, CAC("ClassifiedTaxCategory"))

	line := model.Line{
		ID:                  ChildText(e, CBC("ID")),
		Quantity:            dec.OrZero(Text(quantity)),
		UnitCode:            Attr(quantity, "unitCode"),
		UnitPrice:           ChildNumber(Child(e, CAC("Price")), CBC("PriceAmount")),
		LineExtensionAmount: ChildNumber(e, CBC("LineExtensionAmount")),
		TaxSubtotals:        parseTaxSubtotals(e),
		AllowanceCharges:    parseAllowanceCharges(e),
		ItemName:            ChildText(item, CBC("Name")),
		SellerItemID:        ChildText(Child(item, CAC("SellersItemIdentification")), CBC("ID")),
		BuyerItemID:         ChildText(Child(item, CAC("BuyersItemIdentification")), CBC("ID")),
	}

	line.Description = ChildText(item, CBC("Description"))
	if line.Description == "" {
		line.Description = line.ItemName
	}

	// Category and percent: first line subtotal, then the item's classified category.
	classifiedPercent := ChildOptionalNumber(classified, CBC("Percent"))
	line.TaxCategoryID = ChildText(classified, CBC("ID"))
	line.TaxSchemeID = ChildText(Child(classified, CAC("TaxScheme")), CBC("ID"))
	if len(line.TaxSubtotals) > 0 {
		first := line.TaxSubtotals[0]
		line.TaxPercent = dec.Known(first.Percent)
		if first.CategoryID != "" {
			line.TaxCategoryID = first.CategoryID
		}
		if first.SchemeID != "" {
			line.TaxSchemeID = first.SchemeID
		}
	} else {
		line.TaxPercent = classifiedPercent
	}

	line.TaxAmount = lineTaxAmount(e, line)

	var discounts, charges []decimal.Decimal
	for _, ac := range line.AllowanceCharges {
		if ac.ChargeIndicator {
			charges = append(charges, ac.Amount)
		} else {
			discounts = append(discounts, ac.Amount)
		}
	}
	line.DiscountAmount = dec.NonZero(dec.SumAbs(discounts))
	line.ChargeAmount = dec.NonZero(dec.SumAbs(charges))

	return line
}

// lineTaxAmount resolves, first match wins: the explicit TaxAmount of the
// line's own TaxTotal, the sum of line subtotals, the line extension amount
// times the tax percent rounded to two decimals, unknown.
func lineTaxAmount(e *etree.Element, line model.Line) decimal.NullDecimal {
	if explicit := ChildOptionalNumber(Child(e, CAC("TaxTotal")), CBC("TaxAmount")); explicit.Valid {
		return explicit
	}

	if len(line.TaxSubtotals) > 0 {
		amounts := make([]decimal.Decimal, 0, len(line.TaxSubtotals))
		for _, st := range line.TaxSubtotals {
			amounts = append(amounts, st.TaxAmount)
		}
		return dec.Known(dec.Sum(amounts))
	}

	if line.TaxPercent.Valid {
		// TODO: use the currency's minor-unit precision instead of a fixed two decimals.
		return dec.Known(dec.PercentOf(line.LineExtensionAmount, line.TaxPercent.Decimal))
	}

	return dec.Null
}

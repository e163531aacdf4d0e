package normalize

import (
	"github.com/rezonia/ubl-processor/internal/model"
)

// Keys of the invoice-level extra map
const (
	ExtraDocumentKind      = "document_kind"
	ExtraCustomizationID   = "customization_id"
	ExtraProfileID         = "profile_id"
	ExtraTypeCode          = "type_code"
	ExtraTaxPointDate      = "tax_point_date"
	ExtraBuyerReference    = "buyer_reference"
	ExtraContractReference = "contract_reference"
	ExtraProjectReference  = "project_reference"
	ExtraBillingReference  = "billing_reference"
	ExtraSalesOrderID      = "sales_order_id"
	ExtraAccountingCost    = "accounting_cost"
	ExtraVendor            = "vendor"
	ExtraCustomer          = "customer"
	ExtraInvoicePeriod     = "invoice_period"
	ExtraDelivery          = "delivery"
	ExtraPaymentMeans      = "payment_means"
	ExtraTaxSubtotals      = "tax_subtotals"
	ExtraAllowanceCharges  = "allowance_charges"
	ExtraAllowanceTotal    = "allowance_total_amount"
	ExtraChargeTotal       = "charge_total_amount"
	ExtraPrepaidAmount     = "prepaid_amount"
	ExtraRoundingAmount    = "payable_rounding_amount"
	ExtraAttachments       = "attachments"
	ExtraSigned            = "signed"
)

// Keys of the line-level extra map
const (
	ExtraLineID           = "line_id"
	ExtraItemName         = "item_name"
	ExtraSellerItemID     = "seller_item_id"
	ExtraBuyerItemID      = "buyer_item_id"
	ExtraTaxCategoryID    = "tax_category_id"
	ExtraTaxSchemeID      = "tax_scheme_id"
	ExtraChargeAmount     = "charge_amount"
	ExtraLineTaxSubtotals = "tax_subtotals"
	ExtraLineAllowances   = "allowance_charges"
)

func invoiceExtra(doc *model.Document) map[string]any {
	return map[string]any{
		ExtraDocumentKind:      string(doc.Kind),
		ExtraCustomizationID:   Text(doc.CustomizationID),
		ExtraProfileID:         Text(doc.ProfileID),
		ExtraTypeCode:          Text(doc.TypeCode),
		ExtraTaxPointDate:      Date(doc.TaxPointDate),
		ExtraBuyerReference:    Text(doc.BuyerReference),
		ExtraContractReference: Text(doc.ContractReference),
		ExtraProjectReference:  Text(doc.ProjectReference),
		ExtraBillingReference:  Text(doc.BillingReference),
		ExtraSalesOrderID:      Text(doc.SalesOrderID),
		ExtraAccountingCost:    Text(doc.AccountingCost),
		ExtraVendor:            partyExtra(doc.Seller),
		ExtraCustomer:          partyExtra(doc.Buyer),
		ExtraInvoicePeriod:     invoicePeriodExtra(doc.InvoicePeriod),
		ExtraDelivery:          deliveryExtra(doc.Delivery),
		ExtraPaymentMeans:      append([]model.PaymentMeans{}, doc.PaymentMeansList...),
		ExtraTaxSubtotals:      append([]model.TaxSubtotal{}, doc.TaxSubtotals...),
		ExtraAllowanceCharges:  append([]model.AllowanceCharge{}, doc.AllowanceCharges...),
		ExtraAllowanceTotal:    doc.Totals.AllowanceTotal,
		ExtraChargeTotal:       doc.Totals.ChargeTotal,
		ExtraPrepaidAmount:     doc.Totals.PrepaidAmount,
		ExtraRoundingAmount:    doc.Totals.RoundingAmount,
		ExtraAttachments:       SanitizeAttachments(doc.Attachments),
		ExtraSigned:            doc.Signed,
	}
}

func partyExtra(p model.Party) map[string]any {
	return map[string]any{
		"registration_name":  Text(p.RegistrationName),
		"legal_form":         Text(p.LegalForm),
		"vat_id":             Text(p.VatID),
		"company_id":         Text(p.CompanyID),
		"tax_scheme_id":      Text(p.TaxSchemeID),
		"endpoint_id":        Text(p.EndpointID),
		"endpoint_scheme_id": Text(p.EndpointSchemeID),
	}
}

func invoicePeriodExtra(p *model.InvoicePeriod) map[string]any {
	if p == nil {
		return nil
	}
	return map[string]any{
		"start_date":       Date(p.StartDate),
		"end_date":         Date(p.EndDate),
		"description_code": Text(p.DescriptionCode),
	}
}

func deliveryExtra(d *model.Delivery) map[string]any {
	if d == nil {
		return nil
	}
	return map[string]any{
		"actual_delivery_date": Date(d.ActualDeliveryDate),
		"location_id":          Text(d.LocationID),
		"party_name":           Text(d.PartyName),
		"address":              AddressText(d.Address),
	}
}

func lineExtra(l model.Line) map[string]any {
	return map[string]any{
		ExtraLineID:           Text(l.ID),
		ExtraItemName:         Text(l.ItemName),
		ExtraSellerItemID:     Text(l.SellerItemID),
		ExtraBuyerItemID:      Text(l.BuyerItemID),
		ExtraTaxCategoryID:    Text(l.TaxCategoryID),
		ExtraTaxSchemeID:      Text(l.TaxSchemeID),
		ExtraChargeAmount:     l.ChargeAmount,
		ExtraLineTaxSubtotals: append([]model.TaxSubtotal{}, l.TaxSubtotals...),
		ExtraLineAllowances:   append([]model.AllowanceCharge{}, l.AllowanceCharges...),
	}
}

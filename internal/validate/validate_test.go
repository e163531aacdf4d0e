package validate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/ubl-processor/internal/model"
	"github.com/rezonia/ubl-processor/internal/parser/ubl"
	"github.com/rezonia/ubl-processor/internal/validate"
)

const (
	invoiceOpen = `<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">`
	invoiceClose = `</Invoice>`

	parties = `
	<cac:AccountingSupplierParty><cac:Party><cac:PartyName><cbc:Name>Seller</cbc:Name></cac:PartyName></cac:Party></cac:AccountingSupplierParty>
	<cac:AccountingCustomerParty><cac:Party><cac:PartyName><cbc:Name>Buyer</cbc:Name></cac:PartyName></cac:Party></cac:AccountingCustomerParty>`

	header = `<cbc:ID>V-1</cbc:ID><cbc:IssueDate>2024-05-01</cbc:IssueDate><cbc:DocumentCurrencyCode>EUR</cbc:DocumentCurrencyCode>` + parties
)

func parseBody(t *testing.T, body string) *model.Document {
	t.Helper()
	doc, err := ubl.Parse([]byte(invoiceOpen + body + invoiceClose))
	require.NoError(t, err)
	return doc
}

func line(qty, price, amount string) string {
	return `<cac:InvoiceLine><cbc:ID>1</cbc:ID>
		<cbc:InvoicedQuantity unitCode="EA">` + qty + `</cbc:InvoicedQuantity>
		<cbc:LineExtensionAmount>` + amount + `</cbc:LineExtensionAmount>
		<cac:Price><cbc:PriceAmount>` + price + `</cbc:PriceAmount></cac:Price>
	</cac:InvoiceLine>`
}

func totals(lineExt, exclusive, inclusive, payable string) string {
	return `<cac:LegalMonetaryTotal>
		<cbc:LineExtensionAmount>` + lineExt + `</cbc:LineExtensionAmount>
		<cbc:TaxExclusiveAmount>` + exclusive + `</cbc:TaxExclusiveAmount>
		<cbc:TaxInclusiveAmount>` + inclusive + `</cbc:TaxInclusiveAmount>
		<cbc:PayableAmount>` + payable + `</cbc:PayableAmount>
	</cac:LegalMonetaryTotal>`
}

func rules(findings []*model.ValidationError) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Rule)
	}
	return out
}

func TestCheck_Fixtures(t *testing.T) {
	for _, name := range []string{"invoice_full.xml", "creditnote.xml"} {
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join("..", "parser", "ubl", "testdata", name))
			require.NoError(t, err)
			doc, err := ubl.Parse(data)
			require.NoError(t, err)

			report := validate.Check(doc)
			assert.True(t, report.Valid)
			assert.Empty(t, report.Errors)
			assert.Empty(t, report.Warnings)
			assert.Equal(t, doc.ID, report.DocumentID)
		})
	}
}

func TestCheck_Reconciliation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		rules []string
	}{
		{
			name:  "balanced",
			body:  header + totals("100", "100", "100", "100") + line("2", "50", "100"),
			rules: []string{},
		},
		{
			name:  "within tolerance",
			body:  header + totals("100", "100.01", "100.01", "100") + line("2", "50", "100"),
			rules: []string{},
		},
		{
			name:  "line sum mismatch",
			body:  header + totals("120", "120", "120", "120") + line("2", "50", "100"),
			rules: []string{validate.RuleLineExtensionSum},
		},
		{
			name:  "payable mismatch",
			body:  header + totals("100", "100", "100", "90") + line("2", "50", "100"),
			rules: []string{validate.RulePayable},
		},
		{
			name: "tax inclusive mismatch",
			body: header + `<cac:TaxTotal><cac:TaxSubtotal><cbc:TaxAmount>21</cbc:TaxAmount></cac:TaxSubtotal></cac:TaxTotal>` +
				totals("100", "100", "120", "120") + line("2", "50", "100"),
			rules: []string{validate.RuleTaxInclusive},
		},
		{
			name: "header allowance reduces tax exclusive",
			body: header + `<cac:AllowanceCharge><cbc:ChargeIndicator>false</cbc:ChargeIndicator><cbc:Amount>10</cbc:Amount></cac:AllowanceCharge>` +
				totals("100", "90", "90", "90") + line("2", "50", "100"),
			rules: []string{},
		},
		{
			name:  "missing allowance breaks tax exclusive",
			body:  header + totals("100", "90", "90", "90") + line("2", "50", "100"),
			rules: []string{validate.RuleTaxExclusive},
		},
		{
			name: "prepaid and rounding",
			body: header + `<cac:LegalMonetaryTotal>
				<cbc:LineExtensionAmount>100</cbc:LineExtensionAmount>
				<cbc:TaxExclusiveAmount>100</cbc:TaxExclusiveAmount>
				<cbc:TaxInclusiveAmount>100.4</cbc:TaxInclusiveAmount>
				<cbc:PrepaidAmount>50</cbc:PrepaidAmount>
				<cbc:PayableRoundingAmount>-0.4</cbc:PayableRoundingAmount>
				<cbc:PayableAmount>50</cbc:PayableAmount>
			</cac:LegalMonetaryTotal>` + line("2", "50", "100"),
			rules: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := validate.Check(parseBody(t, tt.body))
			assert.ElementsMatch(t, tt.rules, rules(report.Errors))
			assert.Equal(t, len(tt.rules) == 0, report.Valid)
		})
	}
}

func TestCheck_LineAmountIsWarning(t *testing.T) {
	report := validate.Check(parseBody(t, header+totals("90", "90", "90", "90")+line("2", "50", "90")))

	assert.True(t, report.Valid)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, validate.RuleLineAmount, report.Warnings[0].Rule)
	assert.Equal(t, "lines[0].line_extension_amount", report.Warnings[0].Field)
	assert.Equal(t, model.SeverityWarning, report.Warnings[0].Severity)
}

func TestCheck_StrictPromotesWarnings(t *testing.T) {
	doc := parseBody(t, header+totals("90", "90", "90", "90")+line("2", "50", "90"))

	report := validate.Check(doc, validate.Strict())
	assert.False(t, report.Valid)
	assert.Empty(t, report.Warnings)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, validate.RuleLineAmount, report.Errors[0].Rule)
	assert.Equal(t, model.SeverityError, report.Errors[0].Severity)
}

func TestCheck_Tolerance(t *testing.T) {
	doc := parseBody(t, header+totals("100", "100", "100", "99.95")+line("2", "50", "100"))

	assert.False(t, validate.Check(doc).Valid)
	assert.True(t, validate.Check(doc, validate.WithTolerance(decimal.RequireFromString("0.05"))).Valid)
}

func TestCheck_HeaderCompleteness(t *testing.T) {
	doc := parseBody(t, `<cbc:ID>H-1</cbc:ID>`)

	report := validate.Check(doc)
	assert.False(t, report.Valid)
	assert.Equal(t, []string{validate.RuleRequired}, rules(report.Errors))
	assert.Equal(t, "issue_date", report.Errors[0].Field)
	assert.ElementsMatch(t,
		[]string{validate.RuleRequired, validate.RuleParty, validate.RuleParty, validate.RuleLines},
		rules(report.Warnings))
}

func TestCheck_BadDateIsWarning(t *testing.T) {
	doc := parseBody(t, `<cbc:ID>H-2</cbc:ID><cbc:IssueDate>yesterday</cbc:IssueDate><cbc:DocumentCurrencyCode>EUR</cbc:DocumentCurrencyCode>`+
		parties+totals("100", "100", "100", "100")+line("2", "50", "100"))

	report := validate.Check(doc)
	assert.True(t, report.Valid)
	assert.Equal(t, []string{validate.RuleDateFormat}, rules(report.Warnings))
}

func TestCheck_NilDocument(t *testing.T) {
	report := validate.Check(nil)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "document", report.Errors[0].Field)
}
